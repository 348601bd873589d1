package mapreduce

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
var ErrUnknownStrategy = errors.New("unknown partition strategy")

// Strategy splits a file list into one chunk per worker.
// Every file lands in exactly one chunk and exactly workers chunks are returned,
// some of them empty when there are fewer files than workers.
type Strategy interface {
	Name() string
	Partition(files []string, workers int) [][]string
}

// Block assigns contiguous runs of files. The first len(files)%workers chunks
// take one extra file so nothing is dropped when workers does not divide the list.
type Block struct{}

func (Block) Name() string { return "block" }

func (Block) Partition(files []string, workers int) [][]string {
	if workers < 1 {
		return nil
	}

	size, rem := len(files)/workers, len(files)%workers
	chunks := make([][]string, workers)
	start := 0
	for i := range chunks {
		end := start + size
		if i < rem {
			end++
		}
		chunks[i] = files[start:end:end]
		start = end
	}
	return chunks
}

// RoundRobin deals files out like cards: chunk i gets every file whose index mod workers is i.
type RoundRobin struct{}

func (RoundRobin) Name() string { return "round-robin" }

func (RoundRobin) Partition(files []string, workers int) [][]string {
	if workers < 1 {
		return nil
	}

	chunks := make([][]string, workers)
	for i := range chunks {
		chunks[i] = make([]string, 0, (len(files)+workers-1)/workers)
	}
	for j, f := range files {
		chunks[j%workers] = append(chunks[j%workers], f)
	}
	return chunks
}

// Strategies lists the available partitioning policies by name.
var Strategies = []Strategy{Block{}, RoundRobin{}}

// ParseStrategy resolves a strategy by name. An empty name selects Block.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return Block{}, nil
	}

	for _, s := range Strategies {
		if s.Name() == name {
			return s, nil
		}
	}

	switch name {
	case "contiguous":
		return Block{}, nil
	case "roundrobin", "interleave", "rr":
		return RoundRobin{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
