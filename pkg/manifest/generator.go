package manifest

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dtnitsch/wordcount-bench/pkg/bench"
	"github.com/dtnitsch/wordcount-bench/pkg/mapreduce"
	"github.com/dtnitsch/wordcount-bench/pkg/storage"
	"gopkg.in/yaml.v3"
)

// Build assembles the manifest for a comparison report.
func Build(report *bench.Report, s *storage.Storage, now time.Time) SummaryManifest {
	manifest := SummaryManifest{
		GeneratedAt:       now.Format(time.RFC3339),
		RunUUID:           report.RunUUID,
		Folder:            report.Folder,
		FileSetHash:       report.FileSetHash,
		TotalFiles:        report.Files,
		Workers:           report.Workers,
		Strategy:          report.Strategy,
		SequentialSeconds: report.SequentialTime.Seconds(),
		ParallelSeconds:   report.ParallelTime.Seconds(),
		Speedup:           report.Speedup,
		TotalWords:        report.ParallelWords,
		TopFiles:          mapreduce.TopFiles(report.ParallelCounts, 10),
	}

	for _, path := range mapreduce.SortedPaths(report.ParallelCounts) {
		c := report.ParallelCounts[path]
		summary := FileSummary{Path: path}

		if c.IsError() {
			manifest.Failed++
			summary.Status = "error"
			summary.ErrorMessage = c.Err()
		} else {
			manifest.Successful++
			summary.Status = "success"
			summary.WordCount = c.Words()

			// Size comes from os.Stat; the file is not read again
			if stats, err := s.GetFileStats(path); err == nil {
				summary.SizeBytes = stats.SizeBytes
			}
		}

		manifest.Results = append(manifest.Results, summary)
	}

	return manifest
}

// GenerateSummary writes the manifest for report into dir and returns its path.
func GenerateSummary(report *bench.Report, dir string, s *storage.Storage) (string, error) {
	now := time.Now()
	manifest := Build(report, s, now)

	if err := s.EnsureDir(dir); err != nil {
		return "", err
	}

	id := report.RunUUID
	if len(id) > 8 {
		id = id[:8]
	}
	manifestPath := filepath.Join(dir, fmt.Sprintf("summary-%s-%s.yaml", now.Format("2006-01-02"), id))

	manifestData, err := yaml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	if err := s.SaveFile(manifestPath, manifestData); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}

	return manifestPath, nil
}
