package runner

// This file contains the Result snapshot and its read-only projections.

import (
	"fmt"
	"strings"
	"time"

	"github.com/runkit/runkit/fileio"
)

const startTimeFormat = "2006-01-02 15:04:05"

// Result is an immutable snapshot of one finished command execution. It is
// only ever returned for a command that ran to completion; launch failures
// and timeouts surface as errors instead.
type Result struct {
	// Rendered, shell-quoted command line
	Command string
	// Argv as executed (including the program name)
	Args []string
	// Exit code of the command
	ExitCode int
	// Captured standard output and standard error
	Stdout string
	Stderr string
	// Timestamp when the command was launched
	Start time.Time
	// Wall-clock duration of the execution
	Duration time.Duration
	// Configured deadline, zero when none
	Timeout time.Duration
}

// Ok reports whether the command exited with code 0.
func (r *Result) Ok() bool { return r.ExitCode == 0 }

// Output returns the captured output, stdout first then stderr.
func (r *Result) Output() string {
	switch {
	case r.Stderr == "":
		return r.Stdout
	case r.Stdout == "":
		return r.Stderr
	default:
		return r.Stdout + "\n" + r.Stderr
	}
}

// StdoutContains reports whether the captured stdout contains s.
func (r *Result) StdoutContains(s string) bool { return strings.Contains(r.Stdout, s) }

// StderrContains reports whether the captured stderr contains s.
func (r *Result) StderrContains(s string) bool { return strings.Contains(r.Stderr, s) }

// Contains reports whether either captured stream contains s.
func (r *Result) Contains(s string) bool {
	return r.StdoutContains(s) || r.StderrContains(s)
}

// DebugOutput returns a formatted multi-line summary of the execution,
// ready for printing or writing: a labeled header (command, exit code,
// start time, elapsed time) followed by the captured output.
func (r *Result) DebugOutput() string {
	return r.header() + "\n\n" + r.Output()
}

func (r *Result) header() string {
	lines := []string{
		"cmd: " + r.Command,
		fmt.Sprintf("rc: %d", r.ExitCode),
		fmt.Sprintf("start: %d", r.Start.Unix()),
		"start_time: " + r.Start.Format(startTimeFormat),
		fmt.Sprintf("elapsed: %.3fs", r.Duration.Seconds()),
	}
	return strings.Join(lines, "\n")
}

// DumpTo writes the debug output to path, creating missing parent
// directories, and returns the path written.
func (r *Result) DumpTo(path string, opts ...fileio.Option) (string, error) {
	return fileio.Write(path, r.DebugOutput()+"\n", opts...)
}

func (r *Result) String() string {
	return fmt.Sprintf("Result(cmd=%q rc=%d start=%d elapsed=%s)",
		r.Command, r.ExitCode, r.Start.Unix(), r.Duration)
}
