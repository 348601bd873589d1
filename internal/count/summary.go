package count

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/wordcount-bench/internal/common"
	"github.com/dtnitsch/wordcount-bench/pkg/bench"
	"github.com/dtnitsch/wordcount-bench/pkg/mapreduce"
	"gopkg.in/yaml.v3"
)

const topFilesLimit = 5

// BuildFileOutputs converts a mapping into per-file output rows ordered by path.
func BuildFileOutputs(counts mapreduce.WordCounts) []FileOutput {
	paths := mapreduce.SortedPaths(counts)
	files := make([]FileOutput, 0, len(paths))
	for _, path := range paths {
		c := counts[path]
		out := FileOutput{Path: path}
		if c.IsError() {
			out.Status = "failed"
			out.Error = c.Err()
		} else {
			out.Status = "success"
			out.Words = c.Words()
		}
		files = append(files, out)
	}
	return files
}

// BuildStats flattens a report into its serializable stats.
func BuildStats(report *bench.Report, runID int64) Stats {
	return Stats{
		RunUUID:           report.RunUUID,
		RunID:             runID,
		Folder:            report.Folder,
		TotalFiles:        report.Files,
		Failed:            report.Failed,
		TotalBytes:        report.TotalBytes,
		Workers:           report.Workers,
		Strategy:          report.Strategy,
		SequentialSeconds: report.SequentialTime.Seconds(),
		ParallelSeconds:   report.ParallelTime.Seconds(),
		Speedup:           report.Speedup,
		SequentialWords:   report.SequentialWords,
		ParallelWords:     report.ParallelWords,
		Equivalent:        report.Equivalent,
		TopFiles:          mapreduce.TopFiles(report.ParallelCounts, topFilesLimit),
	}
}

// BuildFinalOutput assembles the structured output of a comparison.
func BuildFinalOutput(report *bench.Report, runID int64) FinalOutput {
	status := "success"
	switch {
	case !report.Equivalent:
		status = "mismatch"
	case report.Failed > 0:
		status = "partial_failure"
	}

	return FinalOutput{
		Status: status,
		Files:  BuildFileOutputs(report.ParallelCounts),
		Stats:  BuildStats(report, runID),
	}
}

// formatSpeedup prints "n/a" when the parallel pass took no measurable time.
func formatSpeedup(speedup float64) string {
	if speedup <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", speedup)
}

// WriteText renders the human-readable comparison report.
func WriteText(w io.Writer, report *bench.Report) {
	fmt.Fprintf(w, "Folder: %s (%d files, %d failed)\n", report.Folder, report.Files, report.Failed)
	fmt.Fprintf(w, "Workers: %d (%s)\n", report.Workers, report.Strategy)

	fmt.Fprintln(w, "\nExecution time:")
	fmt.Fprintf(w, "Sequential: %s\n", common.FormatSeconds(report.SequentialTime))
	fmt.Fprintf(w, "Parallel: %s\n", common.FormatSeconds(report.ParallelTime))
	fmt.Fprintf(w, "Speedup: %s\n", formatSpeedup(report.Speedup))

	fmt.Fprintln(w, "\nTotal words:")
	fmt.Fprintf(w, "Sequential: %d\n", report.SequentialWords)
	fmt.Fprintf(w, "Parallel: %d\n", report.ParallelWords)

	if !report.Equivalent {
		fmt.Fprintln(w, "\nWARNING: sequential and parallel results differ")
	}

	writeFailures(w, report.ParallelCounts)
}

// WritePassText renders the per-file listing of a single counting pass.
func WritePassText(w io.Writer, out PassOutput) {
	for _, f := range out.Files {
		if f.Status == "failed" {
			fmt.Fprintf(w, "%s: Error: %s\n", f.Path, f.Error)
			continue
		}
		fmt.Fprintf(w, "%s: %d\n", f.Path, f.Words)
	}

	fmt.Fprintln(w, strings.Repeat("-", 40))
	label := out.Mode
	if out.Workers > 0 {
		label = fmt.Sprintf("%s, %d workers, %s", out.Mode, out.Workers, out.Strategy)
	}
	fmt.Fprintf(w, "Total words: %d (%d files, %d failed)\n", out.TotalWords, len(out.Files), out.Failed)
	fmt.Fprintf(w, "Elapsed (%s): %.4f sec\n", label, out.Seconds)
}

func writeFailures(w io.Writer, counts mapreduce.WordCounts) {
	failed := counts.Failures()
	if len(failed) == 0 {
		return
	}
	fmt.Fprintf(w, "\nErrors (%d, excluded from totals):\n", len(failed))
	for _, path := range failed {
		fmt.Fprintf(w, "  %s: %s\n", path, counts[path])
	}
}

// Marshal encodes v as json or yaml.
func Marshal(format string, v any) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(v)
	case "json":
		return json.MarshalIndent(v, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
