package waitfor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUntilReadyAfterRetries(t *testing.T) {
	calls := 0
	err := Until(context.Background(), func(context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	}, WithInterval(5*time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestUntilImmediatelyReady(t *testing.T) {
	err := Until(context.Background(), func(context.Context) (bool, error) {
		return true, nil
	})
	require.NoError(t, err)
}

func TestUntilCheckErrorStopsWait(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Until(context.Background(), func(context.Context) (bool, error) {
		calls++
		return false, boom
	}, WithInterval(5*time.Millisecond))
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

func TestUntilTimeout(t *testing.T) {
	err := Until(context.Background(), func(context.Context) (bool, error) {
		return false, nil
	}, WithInterval(5*time.Millisecond), WithTimeout(30*time.Millisecond))
	require.ErrorIs(t, err, ErrTimeout)
}

func TestUntilCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Until(ctx, func(context.Context) (bool, error) {
		return false, nil
	}, WithInterval(5*time.Millisecond), WithTimeout(0))
	require.ErrorIs(t, err, context.Canceled)
}

func TestUntilGraceDelaysFirstCheck(t *testing.T) {
	start := time.Now()
	err := Until(context.Background(), func(context.Context) (bool, error) {
		return true, nil
	}, WithGrace(20*time.Millisecond))
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
