package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/runkit/runkit/logging"
)

const AppName = "runkit"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
	cfg    Config
}

func New() *App {
	app := &App{}
	app.cli = &cli.App{
		Name:  AppName,
		Usage: "Run commands, capture everything about them, keep the receipts",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose (debug) logging",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a runkit.toml config file",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write log events to this file",
			},
		},
		Before: func(ctx *cli.Context) error {
			level := "info"
			if ctx.Bool("verbose") {
				level = "debug"
			}
			logger, err := logging.Setup(logging.Options{
				Level:      level,
				File:       ctx.String("log-file"),
				TimeFormat: time.RFC3339Nano,
			})
			if err != nil {
				return err
			}
			app.logger = logger

			cfg, err := LoadConfig(ctx.String("config"))
			if err != nil {
				return err
			}
			app.cfg = cfg
			return nil
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Execute a command and record its outcome",
		ArgsUsage: "[flags] -- CMD [ARGS...]",
		Action:    app.run,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Kill the command after this duration (e.g. 30s, 5m)",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Working directory for the command",
			},
			&cli.BoolFlag{
				Name:  "shell",
				Usage: "Run the command through 'sh -c' (enables pipes and globbing)",
			},
			&cli.StringSliceFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Extra KEY=VALUE environment entries (can be specified multiple times)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Capture output without mirroring it to the terminal",
			},
			&cli.BoolFlag{
				Name:  "no-record",
				Usage: "Skip recording this run in the history",
			},
			&cli.StringFlag{
				Name:  "dump",
				Usage: "Write the debug summary of the run to this file",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List previous runs",
		Action: app.list,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "match",
				Aliases: []string{"m"},
				Usage:   "Only show runs whose command contains this substring",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "view",
		Usage:     "View a recorded run",
		ArgsUsage: "[ID|INDEX]",
		Action:    app.view,
		Description: `View a recorded run from history.

Arguments:
  0           View last run (default)
  -1          View 2nd last run
  -2          View 3rd last run
  <id>        View the run matching the ID prefix

Examples:
  runkit view           # View last run
  runkit view -1        # View 2nd last run
  runkit view 7c1b      # View run with ID starting with 7c1b`,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:  "csv",
		Usage: "Work with delimited files",
		Subcommands: []*cli.Command{
			{
				Name:   "convert",
				Usage:  "Rewrite a delimited file with a different field delimiter",
				Action: app.csvConvert,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "in",
						Usage:    "Input file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "out",
						Usage:    "Output file (parent directories are created)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "in-delimiter",
						Usage: "Input field delimiter (single character or 'tab')",
						Value: ",",
					},
					&cli.StringFlag{
						Name:  "out-delimiter",
						Usage: "Output field delimiter (single character or 'tab')",
						Value: ",",
					},
				},
			},
		},
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}
