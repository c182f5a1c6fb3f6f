package history

// This file contains shared history utilities for recording, loading and
// parsing command run history.

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/runkit/runkit/fileio"
	"github.com/runkit/runkit/model"
)

const (
	runFileName    = "run.json"
	stdoutFileName = "stdout.txt"
	stderrFileName = "stderr.txt"
)

// Entry is one recorded run together with the directory it lives in.
type Entry struct {
	Run      model.Run
	FullPath string
}

// Root returns the history directory: the override when non-empty, else
// $RUNKIT_HISTORY, else $HOME/.runkit/history.
func Root(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv("RUNKIT_HISTORY"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".runkit", "history"), nil
}

// Record writes the run metadata and captured output into a fresh directory
// under root and returns that directory. The run's stdout/stderr file names
// are filled in when output is present.
func Record(logger zerolog.Logger, root string, run *model.Run, stdout, stderr string) (string, error) {
	runName := fmt.Sprintf("%s-%s", run.Start.Format("20060102-150405"), shortID(run.ID))
	runDir := filepath.Join(root, runName)

	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("create run directory: %w", err)
	}

	if stdout != "" {
		if _, err := fileio.Write(filepath.Join(runDir, stdoutFileName), stdout); err != nil {
			return "", fmt.Errorf("write stdout: %w", err)
		}
		run.StdoutFile = stdoutFileName
	}
	if stderr != "" {
		if _, err := fileio.Write(filepath.Join(runDir, stderrFileName), stderr); err != nil {
			return "", fmt.Errorf("write stderr: %w", err)
		}
		run.StderrFile = stderrFileName
	}

	if _, err := fileio.WriteJSON(filepath.Join(runDir, runFileName), run); err != nil {
		return "", fmt.Errorf("write run metadata: %w", err)
	}

	logger.Debug().Str("dir", runDir).Str("id", run.ID).Msg("Recorded run")
	return runDir, nil
}

// LoadEntries loads all history entries under root. A missing root yields no
// entries; a corrupt run.json is skipped with a warning.
func LoadEntries(logger zerolog.Logger, root string) ([]Entry, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		runPath := filepath.Join(path, runFileName)
		if _, err := os.Stat(runPath); err != nil {
			return nil
		}
		run, err := parseRunJSON(runPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", runPath).Msg("Failed to parse run.json")
			return nil
		}
		entries = append(entries, Entry{Run: run, FullPath: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk history directory: %w", err)
	}
	return entries, nil
}

func parseRunJSON(path string) (model.Run, error) {
	var run model.Run
	if err := fileio.ReadJSON(path, &run); err != nil {
		return model.Run{}, err
	}
	return run, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
