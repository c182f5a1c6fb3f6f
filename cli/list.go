package cli

// This file contains run history functionality for listing previous runs.

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/runkit/runkit/history"
)

func (a *App) list(ctx *cli.Context) error {
	match := ctx.String("match")
	limit := ctx.Int("limit")

	root, err := history.Root(a.cfg.HistoryDir)
	if err != nil {
		return err
	}

	entries, err := history.LoadEntries(a.logger, root)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	// Apply command filter if specified
	if match != "" {
		filtered := entries[:0]
		for _, entry := range entries {
			if strings.Contains(entry.Run.Command, match) {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	if len(entries) == 0 {
		if match != "" {
			fmt.Printf("No runs found matching: %s\n", match)
		} else {
			fmt.Println("No runs found")
			fmt.Printf("Runs are saved to %s/<timestamp>-<id>/\n", root)
		}
		return nil
	}

	// Sort by start time (newest first)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Run.Start.After(entries[j].Run.Start)
	})

	displayRuns := entries
	if limit > 0 && limit < len(displayRuns) {
		displayRuns = displayRuns[:limit]
	}

	fmt.Printf("\n=== Runs (%d total) ===\n\n", len(entries))

	for _, entry := range displayRuns {
		run := entry.Run
		timestamp := run.Start.Format("2006-01-02 15:04:05")
		duration := run.Duration.Round(time.Millisecond)

		status := "✓"
		if run.ExitCode != 0 {
			status = "✗"
		}

		shortID := run.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		fmt.Printf("%s  %s  [%s]  exit=%d  id=%s\n", status, timestamp, duration, run.ExitCode, shortID)
		if run.Command != "" {
			fmt.Printf("   Cmd: %s\n", run.Command)
		}
		if run.WorkDir != "" {
			fmt.Printf("   Path: %s\n", run.WorkDir)
		}
		if run.Timeout > 0 {
			fmt.Printf("   Timeout: %s\n", run.Timeout)
		}
		fmt.Printf("   %s\n", entry.FullPath)
		fmt.Println()
	}

	fmt.Println("\nView a run: runkit view <id>")
	fmt.Println("View raw output: cat <path>/stdout.txt")

	return nil
}
