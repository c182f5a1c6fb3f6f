package cli

// This file contains the run command: execute a command, capture its
// outcome, and record it in the history.

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/runkit/runkit/history"
	"github.com/runkit/runkit/model"
	"github.com/runkit/runkit/runner"
)

func removeFirstDashDash(in []string) []string {
	if len(in) > 0 && in[0] == "--" {
		return in[1:]
	}
	return in
}

func (a *App) run(ctx *cli.Context) error {
	argv := removeFirstDashDash(ctx.Args().Slice())
	if len(argv) == 0 {
		return fmt.Errorf("no command specified: runkit run -- CMD [ARGS...]")
	}

	timeout := ctx.Duration("timeout")
	if timeout == 0 {
		timeout = a.cfg.Timeout
	}
	quiet := ctx.Bool("quiet") || a.cfg.Quiet

	opts := []runner.Option{runner.WithLogger(a.logger)}
	if timeout > 0 {
		opts = append(opts, runner.WithTimeout(timeout))
	}
	if dir := ctx.String("dir"); dir != "" {
		opts = append(opts, runner.WithDir(dir))
	}
	if env := ctx.StringSlice("env"); len(env) > 0 {
		opts = append(opts, runner.WithEnv(env...))
	}
	if !quiet {
		opts = append(opts, runner.WithStdout(os.Stdout), runner.WithStderr(os.Stderr))
	}

	var result *runner.Result
	var err error
	if ctx.Bool("shell") || a.cfg.Shell {
		result, err = runner.RunShell(ctx.Context, strings.Join(argv, " "), opts...)
	} else {
		result, err = runner.Run(ctx.Context, argv, opts...)
	}
	if err != nil {
		var timeoutErr *runner.TimeoutError
		if errors.As(err, &timeoutErr) {
			// Mirror the shell convention for killed-by-timeout commands.
			return cli.Exit(err.Error(), 124)
		}
		return err
	}

	if dump := ctx.String("dump"); dump != "" {
		if path, err := result.DumpTo(dump); err != nil {
			a.logger.Warn().Err(err).Str("path", dump).Msg("Failed to write dump file")
		} else {
			a.logger.Debug().Str("path", path).Msg("Wrote dump file")
		}
	}

	if ctx.Bool("verbose") {
		fmt.Println(result.DebugOutput())
	}

	if !ctx.Bool("no-record") {
		a.recordRun(result)
	}

	if !result.Ok() {
		return cli.Exit("", result.ExitCode)
	}
	return nil
}

// recordRun persists the run in the history. Failures are logged, never
// fatal: the command's own outcome always wins.
func (a *App) recordRun(result *runner.Result) {
	root, err := history.Root(a.cfg.HistoryDir)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Failed to resolve history directory")
		return
	}

	run := &model.Run{
		ID:       uuid.NewString(),
		Command:  result.Command,
		Args:     result.Args,
		ExitCode: result.ExitCode,
		Start:    result.Start,
		Duration: result.Duration,
		Timeout:  result.Timeout,
	}
	if cwd, err := os.Getwd(); err == nil {
		run.WorkDir = cwd
	}

	if _, err := history.Record(a.logger, root, run, result.Stdout, result.Stderr); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to record run")
	}
}
