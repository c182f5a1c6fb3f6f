package waitfor

// Package waitfor polls a condition until it is ready, it fails, or a
// deadline passes.

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when the condition does not become ready within the
// configured timeout.
var ErrTimeout = errors.New("waitfor: timed out")

const (
	defaultInterval = time.Second
	defaultTimeout  = 2 * time.Minute
)

type options struct {
	interval time.Duration
	grace    time.Duration
	timeout  time.Duration
}

// Option configures a wait.
type Option func(*options)

// WithInterval sets the delay between checks. The default is one second.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// WithGrace delays the first check, for conditions that are known not to be
// ready immediately.
func WithGrace(d time.Duration) Option {
	return func(o *options) {
		o.grace = d
	}
}

// WithTimeout bounds the whole wait. The default is two minutes; zero
// disables the bound, leaving only the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// Until polls check until it reports done, returns an error, or the deadline
// passes. The context handed to check carries the deadline. A timeout
// surfaces as an error wrapping ErrTimeout; any error from check stops the
// wait immediately.
func Until(ctx context.Context, check func(context.Context) (bool, error), opts ...Option) error {
	o := options{interval: defaultInterval, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	if o.grace > 0 {
		select {
		case <-ctx.Done():
			return waitErr(ctx, o.timeout)
		case <-time.After(o.grace):
		}
	}

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return waitErr(ctx, o.timeout)
		case <-ticker.C:
		}
	}
}

func waitErr(ctx context.Context, timeout time.Duration) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	return ctx.Err()
}
