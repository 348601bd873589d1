package bench

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/wordcount-bench/internal/common"
	"github.com/dtnitsch/wordcount-bench/models"
	"github.com/dtnitsch/wordcount-bench/pkg/analytics"
	"github.com/dtnitsch/wordcount-bench/pkg/mapreduce"
	"github.com/dtnitsch/wordcount-bench/pkg/storage"
	"github.com/google/uuid"
)

// Report holds the outcome of timing the sequential and parallel counts over one folder.
type Report struct {
	RunUUID     string
	Folder      string
	Extension   string
	FileSetHash string
	Files       int
	TotalBytes  int64
	Workers     int
	Strategy    string

	SequentialTime  time.Duration
	ParallelTime    time.Duration
	Speedup         float64
	SequentialWords int
	ParallelWords   int
	Failed          int
	Equivalent      bool

	SequentialCounts mapreduce.WordCounts
	ParallelCounts   mapreduce.WordCounts
}

// Speedup returns sequential/parallel, or 0 when the parallel time is not positive.
func Speedup(sequential, parallel time.Duration) float64 {
	if parallel <= 0 {
		return 0
	}
	return sequential.Seconds() / parallel.Seconds()
}

// Runner wires the enumerator and counter used by a benchmark.
type Runner struct {
	logger  *slog.Logger
	storage *storage.Storage
	counter mapreduce.Counter
}

// NewRunner creates a Runner that counts with analytics.Analytics.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger:  logger,
		storage: &storage.Storage{},
		counter: &analytics.Analytics{},
	}
}

// ListFiles enumerates the folder configured in cfg.
func (r *Runner) ListFiles(cfg *models.RunConfig) ([]string, error) {
	files, err := r.storage.ListFiles(cfg.Folder, cfg.Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files in %s: %w", cfg.Extension, cfg.Folder, err)
	}
	r.logger.Info("Enumerated input files", "folder", cfg.Folder, "extension", cfg.Extension, "files", len(files))
	return files, nil
}

// Sequential times a single-goroutine count of files.
func (r *Runner) Sequential(files []string) (mapreduce.WordCounts, time.Duration) {
	start := time.Now()
	counts := mapreduce.Sequential(r.counter, files)
	elapsed := time.Since(start)
	r.logger.Info("Sequential count finished", "files", len(files), "elapsed", elapsed)
	return counts, elapsed
}

// Parallel times a count of files spread across workers goroutines.
func (r *Runner) Parallel(files []string, workers int, strategy mapreduce.Strategy) (mapreduce.WordCounts, time.Duration, error) {
	start := time.Now()
	counts, err := mapreduce.Run(r.logger, r.counter, files, workers, strategy)
	elapsed := time.Since(start)
	if err != nil {
		return counts, elapsed, fmt.Errorf("parallel count failed: %w", err)
	}
	r.logger.Info("Parallel count finished", "files", len(files), "workers", workers, "elapsed", elapsed)
	return counts, elapsed, nil
}

// Compare enumerates the folder once, then runs and times both counting paths over the same file list.
func (r *Runner) Compare(cfg *models.RunConfig) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strategy, err := mapreduce.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	files, err := r.ListFiles(cfg)
	if err != nil {
		return nil, err
	}

	seqCounts, seqTime := r.Sequential(files)
	parCounts, parTime, err := r.Parallel(files, cfg.WorkerCount, strategy)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunUUID:          uuid.NewString(),
		Folder:           cfg.Folder,
		Extension:        cfg.Extension,
		FileSetHash:      common.FileSetHash(files),
		Files:            len(files),
		TotalBytes:       r.storage.TotalSize(files),
		Workers:          cfg.WorkerCount,
		Strategy:         strategy.Name(),
		SequentialTime:   seqTime,
		ParallelTime:     parTime,
		Speedup:          Speedup(seqTime, parTime),
		SequentialWords:  seqCounts.Total(),
		ParallelWords:    parCounts.Total(),
		Failed:           len(parCounts.Failures()),
		Equivalent:       seqCounts.Equal(parCounts),
		SequentialCounts: seqCounts,
		ParallelCounts:   parCounts,
	}

	if !report.Equivalent {
		r.logger.Error("Sequential and parallel results differ", "sequential_words", report.SequentialWords, "parallel_words", report.ParallelWords)
	}
	return report, nil
}
