package runner

// Package runner executes external commands synchronously and captures the
// full outcome of each run as an immutable Result. Runs block the caller
// until the command exits or its deadline passes; a deadline kills the child
// process before the run returns.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"
)

type options struct {
	timeout time.Duration
	dir     string
	env     []string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  zerolog.Logger
}

// Option configures a single run.
type Option func(*options)

// WithTimeout sets a deadline for the run. When exceeded the child process
// is killed and the run fails with a TimeoutError.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithDir sets the working directory of the command.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) Option {
	return func(o *options) {
		o.env = append(o.env, env...)
	}
}

// WithStdin connects the command's standard input to r.
func WithStdin(r io.Reader) Option {
	return func(o *options) {
		o.stdin = r
	}
}

// WithStdout mirrors the command's standard output to w while it is being
// captured.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// WithStderr mirrors the command's standard error to w while it is being
// captured.
func WithStderr(w io.Writer) Option {
	return func(o *options) {
		o.stderr = w
	}
}

// WithLogger sets the logger used for run lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Run executes argv[0] with the remaining elements as arguments and blocks
// until the command exits or its deadline passes. A non-zero exit is not an
// error; it is recorded on the Result.
func Run(ctx context.Context, argv []string, opts ...Option) (*Result, error) {
	if len(argv) == 0 {
		return nil, &LaunchError{Err: errors.New("empty command")}
	}
	return run(ctx, argv[0], argv[1:], CommandLine(argv), opts)
}

// RunShell executes a command line through "sh -c", for commands that need
// shell features such as pipes or globbing.
func RunShell(ctx context.Context, cmdline string, opts ...Option) (*Result, error) {
	return run(ctx, "sh", []string{"-c", cmdline}, cmdline, opts)
}

func run(ctx context.Context, name string, args []string, display string, opts []Option) (*Result, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	cancel := func() {}
	if o.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
	}
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = o.dir
	cmd.Stdin = o.stdin
	if len(o.env) > 0 {
		cmd.Env = append(os.Environ(), o.env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	if o.stdout != nil {
		cmd.Stdout = io.MultiWriter(o.stdout, &stdoutBuf)
	}
	if o.stderr != nil {
		cmd.Stderr = io.MultiWriter(o.stderr, &stderrBuf)
	}

	o.logger.Debug().Str("cmd", display).Msg("Executing command")

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Command: display, Err: err}
	}
	waitErr := cmd.Wait()
	elapsed := time.Since(start)

	if waitErr != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		o.logger.Warn().Str("cmd", display).Dur("timeout", o.timeout).Msg("Command timed out")
		return nil, &TimeoutError{Command: display, Timeout: o.timeout}
	}
	if waitErr != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("command canceled: %w", ctx.Err())
	}

	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("wait for command: %w", waitErr)
		}
		exitCode = exitErr.ExitCode()
	}

	result := &Result{
		Command:  display,
		Args:     append([]string{name}, args...),
		ExitCode: exitCode,
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Start:    start,
		Duration: elapsed,
		Timeout:  o.timeout,
	}

	o.logger.Debug().
		Str("cmd", display).
		Int("exit_code", exitCode).
		Dur("elapsed", elapsed).
		Msg("Command finished")

	return result, nil
}

// CommandLine renders argv as a single shell-safe command string.
func CommandLine(argv []string) string {
	parts := make([]string, 0, len(argv))
	for _, arg := range argv {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}
