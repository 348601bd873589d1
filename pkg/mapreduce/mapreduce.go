package mapreduce

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/dtnitsch/wordcount-bench/pkg/analytics"
)

var (
	// ErrInvalidWorkers is returned when fewer than one worker is requested.
	ErrInvalidWorkers = errors.New("worker count must be at least 1")
	// ErrDuplicateKey means a file showed up in more than one partial result.
	ErrDuplicateKey = errors.New("file counted by more than one worker")
)

// Counter counts the words of a single file.
type Counter interface {
	CountFile(path string) analytics.Count
}

// WordCounts maps a file path to its count or failure.
type WordCounts map[string]analytics.Count

// Total sums the successful counts. Failed files contribute nothing.
func (w WordCounts) Total() int {
	total := 0
	for _, c := range w {
		if !c.IsError() {
			total += c.Words()
		}
	}
	return total
}

// Failures returns the paths that could not be counted, sorted.
func (w WordCounts) Failures() []string {
	var failed []string
	for path, c := range w {
		if c.IsError() {
			failed = append(failed, path)
		}
	}
	sort.Strings(failed)
	return failed
}

// Equal reports whether both mappings hold the same keys with the same values.
// Failures compare by message.
func (w WordCounts) Equal(other WordCounts) bool {
	if len(w) != len(other) {
		return false
	}
	for path, c := range w {
		o, ok := other[path]
		if !ok || o != c {
			return false
		}
	}
	return true
}

// Partial is the result a single worker hands to the aggregator.
type Partial struct {
	WorkerID int
	Counts   WordCounts
}

// Map counts every file of one chunk, in order, into a fresh mapping.
func Map(counter Counter, chunk []string) WordCounts {
	counts := make(WordCounts, len(chunk))
	for _, path := range chunk {
		counts[path] = counter.CountFile(path)
	}
	return counts
}

// Reduce merges partial mappings by key union.
// A key seen twice is reported as ErrDuplicateKey; the first value is kept and
// the remaining partials are still merged.
func Reduce(partials ...WordCounts) (WordCounts, error) {
	size := 0
	for _, p := range partials {
		size += len(p)
	}

	final := make(WordCounts, size)
	var dupes []string
	for _, p := range partials {
		for path, c := range p {
			if _, exists := final[path]; exists {
				dupes = append(dupes, path)
				continue
			}
			final[path] = c
		}
	}

	if len(dupes) > 0 {
		sort.Strings(dupes)
		return final, fmt.Errorf("%w: %v", ErrDuplicateKey, dupes)
	}
	return final, nil
}

// Sequential counts every file in order on the calling goroutine.
func Sequential(counter Counter, files []string) WordCounts {
	return Map(counter, files)
}

// worker counts one chunk and sends exactly one Partial, even for an empty chunk.
func worker(id int, logger *slog.Logger, counter Counter, chunk []string, wg *sync.WaitGroup, results chan<- Partial) {
	defer wg.Done()
	logger.Debug("Worker started chunk", "worker_id", id, "files", len(chunk))

	counts := Map(counter, chunk)
	results <- Partial{WorkerID: id, Counts: counts}

	logger.Debug("Worker finished chunk", "worker_id", id, "files", len(chunk), "words", counts.Total())
}

// Run partitions files across workers goroutines, collects one partial mapping
// per worker from a shared channel, and merges them into one mapping.
// It returns only after every worker goroutine has exited.
func Run(logger *slog.Logger, counter Counter, files []string, workers int, strategy Strategy) (WordCounts, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
	}
	if strategy == nil {
		strategy = Block{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	chunks := strategy.Partition(files, workers)
	logger.Info("Starting parallel count", "files", len(files), "workers", len(chunks), "strategy", strategy.Name())

	var wg sync.WaitGroup
	results := make(chan Partial, len(chunks))

	for i, chunk := range chunks {
		wg.Add(1)
		go worker(i+1, logger, counter, chunk, &wg, results)
	}

	// One receive per started worker; a missing send would block here forever.
	partials := make([]WordCounts, 0, len(chunks))
	for range chunks {
		p := <-results
		partials = append(partials, p.Counts)
	}

	wg.Wait()
	close(results)
	logger.Info("All count workers finished", "workers", len(chunks))

	final, err := Reduce(partials...)
	if err != nil {
		logger.Error("Partition produced overlapping chunks", "strategy", strategy.Name(), "error", err)
		return final, err
	}
	return final, nil
}
