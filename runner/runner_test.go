package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	result, err := Run(context.Background(), []string{"sh", "-c", "echo out; echo err 1>&2"})
	require.NoError(t, err)
	require.True(t, result.Ok())
	require.Equal(t, 0, result.ExitCode)
	require.Equal(t, "out\n", result.Stdout)
	require.Equal(t, "err\n", result.Stderr)
	require.Greater(t, result.Duration, time.Duration(0))
	require.False(t, result.Start.IsZero())
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	result, err := Run(context.Background(), []string{"sh", "-c", "exit 3"})
	require.NoError(t, err)
	require.Equal(t, 3, result.ExitCode)
	require.False(t, result.Ok())
}

func TestRunLaunchFailure(t *testing.T) {
	result, err := Run(context.Background(), []string{"runkit-no-such-binary-a8f2"})
	require.Nil(t, result)
	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
}

func TestRunEmptyCommand(t *testing.T) {
	result, err := Run(context.Background(), nil)
	require.Nil(t, result)
	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
}

func TestRunTimeout(t *testing.T) {
	result, err := Run(context.Background(), []string{"sleep", "10"},
		WithTimeout(100*time.Millisecond))
	require.Nil(t, result)
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	require.Equal(t, 100*time.Millisecond, timeoutErr.Timeout)
}

func TestRunShell(t *testing.T) {
	result, err := RunShell(context.Background(), "echo hello | tr a-z A-Z")
	require.NoError(t, err)
	require.Equal(t, "HELLO\n", result.Stdout)
	require.Equal(t, "echo hello | tr a-z A-Z", result.Command)
}

func TestRunWithDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0o644))

	result, err := Run(context.Background(), []string{"ls"}, WithDir(dir))
	require.NoError(t, err)
	require.True(t, result.StdoutContains("marker.txt"))
}

func TestRunWithEnv(t *testing.T) {
	result, err := Run(context.Background(), []string{"sh", "-c", "echo $RUNKIT_TEST_VAR"},
		WithEnv("RUNKIT_TEST_VAR=hello"))
	require.NoError(t, err)
	require.Equal(t, "hello\n", result.Stdout)
}

func TestRunWithStdin(t *testing.T) {
	result, err := Run(context.Background(), []string{"cat"},
		WithStdin(bytes.NewReader([]byte("abc"))))
	require.NoError(t, err)
	require.Equal(t, "abc", result.Stdout)
}

func TestRunMirrorsOutput(t *testing.T) {
	var mirror bytes.Buffer
	result, err := Run(context.Background(), []string{"echo", "hello"}, WithStdout(&mirror))
	require.NoError(t, err)
	require.Equal(t, "hello\n", result.Stdout)
	require.Equal(t, "hello\n", mirror.String())
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{
			name: "plain words",
			in:   []string{"echo", "hello"},
			want: "echo hello",
		},
		{
			name: "argument with spaces",
			in:   []string{"echo", "hello world"},
			want: "echo 'hello world'",
		},
		{
			name: "empty argv",
			in:   nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CommandLine(tt.in)
			if got != tt.want {
				t.Errorf("CommandLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
