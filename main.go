package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/dtnitsch/wordcount-bench/internal/count"
	"github.com/dtnitsch/wordcount-bench/internal/history"
	"github.com/dtnitsch/wordcount-bench/models"
	"github.com/dtnitsch/wordcount-bench/pkg/help"
	"github.com/urfave/cli/v2"
)

func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "folder",
			Aliases: []string{"d"},
			Value:   models.DefaultFolder,
			Usage:   "Folder containing the text files to count",
		},
		&cli.StringFlag{
			Name:  "ext",
			Value: models.DefaultExtension,
			Usage: "Only count files with this extension",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "Output format: text, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Only log errors",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log per-worker progress",
		},
	}
}

func parallelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Value:   runtime.NumCPU(),
			Usage:   "Number of parallel workers (defaults to logical CPU count)",
		},
		&cli.StringFlag{
			Name:  "strategy",
			Value: models.DefaultStrategy,
			Usage: "How files are split across workers: block, round-robin",
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "db",
		Usage: "History database path (defaults to wordcount-bench.db next to the binary)",
	}
}

func main() {
	compareFlags := append(inputFlags(), parallelFlags()...)
	compareFlags = append(compareFlags,
		&cli.BoolFlag{
			Name:  "record",
			Usage: "Store the run and its per-file results in the history database",
		},
		dbFlag(),
		&cli.StringFlag{
			Name:  "manifest-dir",
			Usage: "Also write a YAML summary manifest of the run into this folder",
		},
	)

	app := &cli.App{
		Name:  "wcb",
		Usage: "Compare sequential and parallel word counting over a folder of text files",
		Commands: []*cli.Command{
			{
				Name:   "compare",
				Usage:  "Count words sequentially and in parallel, then report times and speedup",
				Flags:  compareFlags,
				Action: count.CompareAction,
			},
			{
				Name:    "sequential",
				Aliases: []string{"seq"},
				Usage:   "Count words on a single goroutine",
				Flags:   inputFlags(),
				Action:  count.SequentialAction,
			},
			{
				Name:    "parallel",
				Aliases: []string{"par"},
				Usage:   "Count words with a pool of workers",
				Flags:   append(inputFlags(), parallelFlags()...),
				Action:  count.ParallelAction,
			},
			{
				Name:  "history",
				Usage: "Inspect recorded runs",
				Subcommands: []*cli.Command{
					{
						Name:  "runs",
						Usage: "List recorded runs",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum number of runs to show (0 = all)"},
							&cli.StringFlag{Name: "file-set", Usage: "Only runs over this file set hash"},
							dbFlag(),
						},
						Action: history.RunsAction,
					},
					{
						Name:      "show",
						Usage:     "Show one run with per-file results (latest when no ID is given)",
						ArgsUsage: "[run-id]",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "format", Value: "text", Usage: "Output format: text, json, yaml"},
							dbFlag(),
						},
						Action: history.ShowAction,
					},
					{
						Name:      "delete",
						Usage:     "Delete a recorded run",
						ArgsUsage: "<run-id>",
						Flags:     []cli.Flag{dbFlag()},
						Action:    history.DeleteAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print example commands and exit codes",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
		DefaultCommand: "compare",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
