package runner

// This file contains the error kinds a run can fail with. A command that
// starts and exits non-zero is not an error; its exit code is recorded on
// the Result instead.

import (
	"fmt"
	"time"
)

// LaunchError reports a command that could not be started at all, e.g. the
// binary was not found or could not be executed.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("launch command: %v", e.Err)
	}
	return fmt.Sprintf("launch %s: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// TimeoutError reports a command that exceeded its configured deadline and
// was killed.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command timed out after %s: %s", e.Timeout, e.Command)
}
