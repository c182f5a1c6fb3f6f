package model

import "time"

// Run represents a single recorded command execution.
type Run struct {
	// Unique ID for this run (UUID)
	ID string `json:"id"`
	// Rendered command line that was executed
	Command string `json:"command"`
	// Argv as executed (including the program name)
	Args []string `json:"args"`
	// Working directory the command ran in
	WorkDir string `json:"workdir,omitempty"`
	// Exit code of the execution
	ExitCode int `json:"exit_code"`
	// Timestamp when the execution started
	Start time.Time `json:"start"`
	// Wall-clock duration of the execution
	Duration time.Duration `json:"duration"`
	// Configured timeout, zero when none
	Timeout time.Duration `json:"timeout,omitempty"`
	// Standard output file name (relative to run dir)
	StdoutFile string `json:"stdout_file,omitempty"`
	// Standard error file name (relative to run dir)
	StderrFile string `json:"stderr_file,omitempty"`
}
