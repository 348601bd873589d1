package count

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/wordcount-bench/models"
	"github.com/dtnitsch/wordcount-bench/pkg/bench"
	"github.com/dtnitsch/wordcount-bench/pkg/db"
	"github.com/dtnitsch/wordcount-bench/pkg/manifest"
	"github.com/dtnitsch/wordcount-bench/pkg/mapreduce"
	"github.com/dtnitsch/wordcount-bench/pkg/storage"
	"github.com/urfave/cli/v2"
)

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// configFromFlags builds and validates the run configuration from CLI flags.
func configFromFlags(c *cli.Context) (*models.RunConfig, error) {
	config := &models.RunConfig{
		Folder:      c.String("folder"),
		Extension:   c.String("ext"),
		WorkerCount: c.Int("workers"),
		Strategy:    c.String("strategy"),
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if _, err := mapreduce.ParseStrategy(config.Strategy); err != nil {
		return nil, err
	}
	return config, nil
}

// CompareAction runs the sequential and parallel counts over the same folder and reports both.
func CompareAction(c *cli.Context) error {
	logger := newLogger(c)

	config, err := configFromFlags(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	outputFormat := strings.ToLower(c.String("format"))
	if outputFormat != "text" && outputFormat != "json" && outputFormat != "yaml" {
		logger.Error("invalid output format", "format", outputFormat)
		os.Exit(2)
	}

	runner := bench.NewRunner(logger)
	report, err := runner.Compare(config)
	if err != nil {
		logger.Error("comparison failed", "folder", config.Folder, "error", err)
		os.Exit(2)
	}

	var runID int64
	if c.Bool("record") {
		runID, err = recordRun(c.String("db"), report)
		if err != nil {
			// Recording is best effort; the comparison itself succeeded.
			logger.Warn("Failed to record run", "run_uuid", report.RunUUID, "error", err)
		} else {
			logger.Info("Recorded run", "run_id", runID, "run_uuid", report.RunUUID)
		}
	}

	if dir := c.String("manifest-dir"); dir != "" {
		manifestPath, err := manifest.GenerateSummary(report, dir, &storage.Storage{})
		if err != nil {
			logger.Warn("Failed to write summary manifest", "dir", dir, "error", err)
		} else {
			logger.Info("Summary manifest saved", "path", manifestPath)
		}
	}

	if outputFormat == "text" {
		WriteText(os.Stdout, report)
		if runID > 0 {
			fmt.Printf("\nRecorded as run %d. Details: wcb history show %d\n", runID, runID)
		}
	} else {
		outputData, marshalErr := Marshal(outputFormat, BuildFinalOutput(report, runID))
		if marshalErr != nil {
			logger.Error("failed to marshal final output", "error", marshalErr)
			os.Exit(2)
		}
		fmt.Println(string(outputData))
	}

	if !report.Equivalent {
		return cli.Exit("sequential and parallel results differ", 1)
	}
	return nil
}

// SequentialAction counts the folder on a single goroutine.
func SequentialAction(c *cli.Context) error {
	return passAction(c, false)
}

// ParallelAction counts the folder with the worker pool.
func ParallelAction(c *cli.Context) error {
	return passAction(c, true)
}

func passAction(c *cli.Context, parallel bool) error {
	logger := newLogger(c)

	config, err := configFromFlags(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	runner := bench.NewRunner(logger)
	files, err := runner.ListFiles(config)
	if err != nil {
		logger.Error("failed to enumerate files", "error", err)
		os.Exit(2)
	}

	out := PassOutput{Mode: "sequential", Folder: config.Folder}
	var counts mapreduce.WordCounts
	if parallel {
		strategy, _ := mapreduce.ParseStrategy(config.Strategy) // validated in configFromFlags
		result, elapsed, runErr := runner.Parallel(files, config.WorkerCount, strategy)
		if runErr != nil {
			logger.Error("parallel count failed", "error", runErr)
			os.Exit(2)
		}
		counts = result
		out.Mode = "parallel"
		out.Workers = config.WorkerCount
		out.Strategy = strategy.Name()
		out.Seconds = elapsed.Seconds()
	} else {
		result, elapsed := runner.Sequential(files)
		counts = result
		out.Seconds = elapsed.Seconds()
	}

	out.TotalWords = counts.Total()
	out.Failed = len(counts.Failures())
	out.Files = BuildFileOutputs(counts)

	outputFormat := strings.ToLower(c.String("format"))
	if outputFormat == "" || outputFormat == "text" {
		WritePassText(os.Stdout, out)
		return nil
	}

	outputData, err := Marshal(outputFormat, out)
	if err != nil {
		logger.Error("failed to marshal output", "error", err)
		os.Exit(2)
	}
	fmt.Println(string(outputData))
	return nil
}

// recordRun stores the report and its per-file results in the history database.
func recordRun(dbPath string, report *bench.Report) (int64, error) {
	database, err := db.Open(dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := database.InsertRun(ToRunRecord(report))
	if err != nil {
		return 0, err
	}
	if err := database.InsertRunFiles(runID, report.ParallelCounts); err != nil {
		return runID, err
	}
	return runID, nil
}

// ToRunRecord maps a report onto its database row.
func ToRunRecord(report *bench.Report) db.RunRecord {
	return db.RunRecord{
		RunUUID:           report.RunUUID,
		Folder:            report.Folder,
		Extension:         report.Extension,
		FileSetHash:       report.FileSetHash,
		FileCount:         report.Files,
		TotalBytes:        report.TotalBytes,
		Workers:           report.Workers,
		Strategy:          report.Strategy,
		SequentialSeconds: report.SequentialTime.Seconds(),
		ParallelSeconds:   report.ParallelTime.Seconds(),
		Speedup:           report.Speedup,
		SequentialWords:   report.SequentialWords,
		ParallelWords:     report.ParallelWords,
		FailedCount:       report.Failed,
		Equivalent:        report.Equivalent,
	}
}
