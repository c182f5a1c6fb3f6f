package cli

// This file contains the view command for displaying a recorded run from
// history.

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/runkit/runkit/fileio"
	"github.com/runkit/runkit/history"
)

// resolveEntry finds the target entry in a newest-first sorted slice. The
// argument is either a non-positive index (0 = last run, -1 = second to
// last, ...) or an ID prefix.
func resolveEntry(entries []history.Entry, arg string) (*history.Entry, error) {
	if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if parsed > 0 {
			return nil, fmt.Errorf("invalid index: %s (use 0 for last, -1 for second-to-last, etc.)", arg)
		}
		index := int(-parsed)
		if index >= len(entries) {
			return nil, fmt.Errorf("index %s out of range (only %d history entries)", arg, len(entries))
		}
		return &entries[index], nil
	}

	prefix := strings.ToLower(arg)
	for i := range entries {
		if strings.HasPrefix(strings.ToLower(entries[i].Run.ID), prefix) {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("no history entry found matching ID: %s", arg)
}

func (a *App) view(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg == "" {
		arg = "0"
	}

	root, err := history.Root(a.cfg.HistoryDir)
	if err != nil {
		return err
	}

	entries, err := history.LoadEntries(a.logger, root)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no history entries found")
	}

	// Sort by start time (newest first)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Run.Start.After(entries[j].Run.Start)
	})

	entry, err := resolveEntry(entries, arg)
	if err != nil {
		return err
	}

	return a.displayEntry(entry)
}

func (a *App) displayEntry(entry *history.Entry) error {
	run := entry.Run

	shortID := run.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	fmt.Printf("=== Run: %s ===\n", shortID)
	fmt.Printf("Time: %s\n", run.Start.Format("2006-01-02 15:04:05"))
	fmt.Printf("Duration: %s\n", run.Duration)
	fmt.Printf("Exit Code: %d\n", run.ExitCode)
	if run.Command != "" {
		fmt.Printf("Command: %s\n", run.Command)
	}
	if run.WorkDir != "" {
		fmt.Printf("Working Dir: %s\n", run.WorkDir)
	}
	if run.Timeout > 0 {
		fmt.Printf("Timeout: %s\n", run.Timeout)
	}

	if run.StdoutFile != "" {
		contents, err := fileio.Read(filepath.Join(entry.FullPath, run.StdoutFile))
		if err != nil {
			a.logger.Warn().Err(err).Str("file", run.StdoutFile).Msg("Failed to read stdout artifact")
		} else {
			fmt.Printf("\n--- stdout ---\n%s", contents)
		}
	}
	if run.StderrFile != "" {
		contents, err := fileio.Read(filepath.Join(entry.FullPath, run.StderrFile))
		if err != nil {
			a.logger.Warn().Err(err).Str("file", run.StderrFile).Msg("Failed to read stderr artifact")
		} else {
			fmt.Printf("\n--- stderr ---\n%s", contents)
		}
	}

	return nil
}
