package history

import (
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/wordcount-bench/internal/common"
	"github.com/dtnitsch/wordcount-bench/internal/count"
	dbpkg "github.com/dtnitsch/wordcount-bench/pkg/db"
	"github.com/urfave/cli/v2"
)

// RunsAction lists recorded comparison runs, most recent first.
func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	var runs []dbpkg.Run
	if hash := c.String("file-set"); hash != "" {
		runs, err = database.ListRunsByFileSet(hash)
	} else {
		runs, err = database.ListRuns(c.Int("limit"))
	}
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-7s %-8s %-12s %-10s %-10s %-8s %-12s %-14s\n",
		"ID", "Created", "Files", "Workers", "Strategy", "Seq (s)", "Par (s)", "Speedup", "Words", "File Set")
	fmt.Println(strings.Repeat("-", 120))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-7d %-8d %-12s %-10.4f %-10.4f %-8.2f %-12d %-14s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.FileCount,
			r.Workers,
			r.Strategy,
			r.SequentialSeconds,
			r.ParallelSeconds,
			r.Speedup,
			r.ParallelWords,
			common.ShortHash(r.FileSetHash),
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'wcb history show <id>' to see details\n")

	return nil
}

// ShowAction prints one run (the latest when no ID is given) with its per-file results.
func ShowAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return err
	}

	counts, err := database.GetRunCounts(runID)
	if err != nil {
		return err
	}

	if format := strings.ToLower(c.String("format")); format == "json" || format == "yaml" {
		out := struct {
			Run   dbpkg.Run          `json:"run" yaml:"run"`
			Files []count.FileOutput `json:"files" yaml:"files"`
		}{Run: *run, Files: count.BuildFileOutputs(counts)}

		data, err := count.Marshal(format, out)
		if err != nil {
			return fmt.Errorf("failed to marshal run: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	fmt.Printf("Run %d (%s)\n", run.RunID, run.RunUUID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Folder:      %s (*%s)\n", run.Folder, run.Extension)
	fmt.Printf("Files:       %d total (%d failed, %d bytes)\n", run.FileCount, run.FailedCount, run.TotalBytes)
	fmt.Printf("File set:    %s\n", run.FileSetHash)
	fmt.Printf("Workers:     %d (%s)\n", run.Workers, run.Strategy)
	fmt.Printf("Sequential:  %.4f sec, %d words\n", run.SequentialSeconds, run.SequentialWords)
	fmt.Printf("Parallel:    %.4f sec, %d words\n", run.ParallelSeconds, run.ParallelWords)
	fmt.Printf("Speedup:     %.2f\n", run.Speedup)
	fmt.Printf("Equivalent:  %t\n", run.Equivalent)

	files := count.BuildFileOutputs(counts)
	if len(files) > 0 {
		fmt.Printf("\nFiles (%d):\n", len(files))
		fmt.Println(strings.Repeat("-", 60))
		for i, f := range files {
			if f.Status == "failed" {
				fmt.Printf("%3d. [failed] %s\n     Error: %s\n", i+1, f.Path, f.Error)
				continue
			}
			fmt.Printf("%3d. %s: %d\n", i+1, f.Path, f.Words)
		}
	}

	return nil
}

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		return database.LatestRunID()
	}

	var runID int64
	_, err := fmt.Sscanf(c.Args().First(), "%d", &runID)
	if err != nil {
		return 0, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return runID, nil
}

// DeleteAction removes a recorded run.
func DeleteAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("run ID required. Usage: wcb history delete <id>")
	}

	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}
	if err := database.DeleteRun(runID); err != nil {
		return err
	}

	fmt.Printf("Deleted run %d\n", runID)
	return nil
}
