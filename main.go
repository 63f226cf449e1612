package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/averros/tidydesk/internal/captures"
	"github.com/averros/tidydesk/internal/organize"
	"github.com/averros/tidydesk/internal/patch"
)

func main() {
	app := &cli.App{
		Name:  "tidydesk",
		Usage: "personal automation for the Downloads folder and web captures",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to config.yaml",
				Value: "config.yaml",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "organize",
				Usage:  "sort the Downloads folder into category subfolders",
				Action: organize.OrganizeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "directory to organize (default: ~/Downloads)",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "show planned moves without touching files",
					},
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "skip the interactive menu and organize immediately",
					},
				},
			},
			{
				Name:  "captures",
				Usage: "process screenshot captures into a categorized markdown report",
				Subcommands: []*cli.Command{
					{
						Name:   "process",
						Usage:  "run OCR + categorization over new captures once",
						Action: captures.ProcessAction,
						Flags:  capturesFlags(),
					},
					{
						Name:   "watch",
						Usage:  "watch the input folder and process new captures automatically",
						Action: captures.WatchAction,
						Flags: append(capturesFlags(),
							&cli.BoolFlag{
								Name:  "poll",
								Usage: "poll on an interval instead of using filesystem events",
							},
							&cli.DurationFlag{
								Name:  "interval",
								Usage: "polling interval (with --poll)",
							},
						),
					},
					{
						Name:   "stats",
						Usage:  "show input folder and cache state",
						Action: captures.StatsAction,
						Flags:  capturesFlags(),
					},
					{
						Name:   "history",
						Usage:  "list recent capture runs",
						Action: captures.HistoryAction,
						Flags: append(capturesFlags(),
							&cli.IntFlag{
								Name:  "limit",
								Usage: "maximum runs to show",
								Value: 20,
							},
						),
					},
					{
						Name:   "clear-cache",
						Usage:  "forget all processed captures",
						Action: captures.ClearCacheAction,
						Flags:  capturesFlags(),
					},
				},
			},
			{
				Name:      "patch",
				Usage:     "apply exact-text replacements from a YAML rule file",
				ArgsUsage: "<rules.yaml>",
				Action:    patch.PatchAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// capturesFlags are shared by every captures subcommand.
func capturesFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "input",
			Usage: "captures input directory",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "markdown report path",
		},
	}
}
