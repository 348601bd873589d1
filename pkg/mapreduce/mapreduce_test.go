package mapreduce

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dtnitsch/wordcount-bench/pkg/analytics"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFolder(t *testing.T, files map[string][]byte) (string, []string) {
	t.Helper()

	dir := t.TempDir()
	var paths []string
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return dir, SortedPaths(pathSet(paths))
}

func pathSet(paths []string) WordCounts {
	w := make(WordCounts, len(paths))
	for _, p := range paths {
		w[p] = analytics.Ok(0)
	}
	return w
}

// countingCounter records how many files were counted.
type countingCounter struct {
	inner analytics.Analytics
	calls atomic.Int64
}

func (c *countingCounter) CountFile(path string) analytics.Count {
	c.calls.Add(1)
	return c.inner.CountFile(path)
}

func TestRun_MatchesSequential(t *testing.T) {
	_, files := writeFolder(t, map[string][]byte{
		"a.txt": []byte("hello world"),
		"b.txt": []byte("foo"),
	})
	counter := &analytics.Analytics{}

	seq := Sequential(counter, files)
	if seq[files[0]] != analytics.Ok(2) || seq[files[1]] != analytics.Ok(1) {
		t.Fatalf("Sequential() = %v, want a.txt:2 b.txt:1", seq)
	}

	for _, s := range Strategies {
		t.Run(s.Name(), func(t *testing.T) {
			par, err := Run(testLogger(), counter, files, 2, s)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !par.Equal(seq) {
				t.Errorf("Run() = %v, want %v", par, seq)
			}
			if par.Total() != 3 {
				t.Errorf("Total() = %d, want 3", par.Total())
			}
		})
	}
}

func TestRun_Equivalence(t *testing.T) {
	contents := make(map[string][]byte)
	for i := 0; i < 13; i++ {
		contents[fmt.Sprintf("doc-%02d.txt", i)] = []byte(strings.Repeat("word ", i*7+1))
	}
	contents["broken.txt"] = []byte{0xc3, 0x28}
	_, files := writeFolder(t, contents)
	files = append(files, filepath.Join(t.TempDir(), "vanished.txt"))

	counter := &analytics.Analytics{}
	seq := Sequential(counter, files)

	for _, s := range Strategies {
		for _, w := range []int{1, 2, 3, 5, 14, 15, 32} {
			t.Run(fmt.Sprintf("%s/W=%d", s.Name(), w), func(t *testing.T) {
				par, err := Run(testLogger(), counter, files, w, s)
				if err != nil {
					t.Fatalf("Run() error = %v", err)
				}
				if !par.Equal(seq) {
					t.Errorf("parallel and sequential results differ\npar=%v\nseq=%v", par, seq)
				}
				if par.Total() != seq.Total() {
					t.Errorf("Total() = %d, want %d", par.Total(), seq.Total())
				}
				if len(par.Failures()) != 2 {
					t.Errorf("Failures() = %v, want 2 entries", par.Failures())
				}
			})
		}
	}
}

func TestRun_UnreadableFile(t *testing.T) {
	_, files := writeFolder(t, map[string][]byte{
		"a.txt": []byte("hello world"),
		"c.txt": {0xff, 0xfe, 0xfd},
	})
	counter := &analytics.Analytics{}

	par, err := Run(testLogger(), counter, files, 4, RoundRobin{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	c, ok := par[files[1]]
	if !ok {
		t.Fatalf("result is missing c.txt: %v", par)
	}
	if !c.IsError() {
		t.Errorf("c.txt = %v, want error entry", c)
	}
	if par.Total() != 2 {
		t.Errorf("Total() = %d, want 2 (error excluded)", par.Total())
	}
	if got := par.Failures(); len(got) != 1 || got[0] != files[1] {
		t.Errorf("Failures() = %v, want [%s]", got, files[1])
	}
}

func TestRun_EmptyFileList(t *testing.T) {
	counter := &countingCounter{}
	for _, w := range []int{1, 4} {
		par, err := Run(testLogger(), counter, nil, w, Block{})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(par) != 0 || par.Total() != 0 {
			t.Errorf("Run(empty) = %v, want empty mapping", par)
		}
	}
	seq := Sequential(counter, nil)
	if len(seq) != 0 || seq.Total() != 0 {
		t.Errorf("Sequential(empty) = %v, want empty mapping", seq)
	}
	if counter.calls.Load() != 0 {
		t.Errorf("counter called %d times for an empty list", counter.calls.Load())
	}
}

func TestRun_CountsEachFileOnce(t *testing.T) {
	_, files := writeFolder(t, map[string][]byte{
		"1.txt": []byte("a"), "2.txt": []byte("b b"), "3.txt": []byte("c c c"),
		"4.txt": []byte("d"), "5.txt": []byte("e"),
	})
	counter := &countingCounter{}

	par, err := Run(testLogger(), counter, files, 3, Block{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := counter.calls.Load(); got != int64(len(files)) {
		t.Errorf("counter called %d times, want %d", got, len(files))
	}
	if par.Total() != 8 {
		t.Errorf("Total() = %d, want 8", par.Total())
	}
}

func TestRun_InvalidWorkers(t *testing.T) {
	_, err := Run(testLogger(), &analytics.Analytics{}, []string{"a.txt"}, 0, Block{})
	if !errors.Is(err, ErrInvalidWorkers) {
		t.Errorf("Run(workers=0) error = %v, want ErrInvalidWorkers", err)
	}
}

// overlapping is a broken strategy that hands every worker the whole list.
type overlapping struct{}

func (overlapping) Name() string { return "overlapping" }

func (overlapping) Partition(files []string, workers int) [][]string {
	chunks := make([][]string, workers)
	for i := range chunks {
		chunks[i] = files
	}
	return chunks
}

func TestRun_DetectsOverlappingChunks(t *testing.T) {
	_, files := writeFolder(t, map[string][]byte{"a.txt": []byte("x y")})

	par, err := Run(testLogger(), &analytics.Analytics{}, files, 3, overlapping{})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("Run() error = %v, want ErrDuplicateKey", err)
	}
	if par.Total() != 2 {
		t.Errorf("Total() = %d, want first value kept (2)", par.Total())
	}
}

func TestReduce(t *testing.T) {
	a := WordCounts{"a.txt": analytics.Ok(2)}
	b := WordCounts{"b.txt": analytics.Ok(1), "c.txt": analytics.Failed("boom")}
	empty := WordCounts{}

	got, err := Reduce(a, empty, b)
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	want := WordCounts{"a.txt": analytics.Ok(2), "b.txt": analytics.Ok(1), "c.txt": analytics.Failed("boom")}
	if !got.Equal(want) {
		t.Errorf("Reduce() = %v, want %v", got, want)
	}

	if _, err := Reduce(a, WordCounts{"a.txt": analytics.Ok(9)}); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("Reduce() with duplicate key error = %v, want ErrDuplicateKey", err)
	}
}

func TestWordCounts_Equal(t *testing.T) {
	base := WordCounts{"a": analytics.Ok(1), "b": analytics.Failed("x")}

	tests := []struct {
		name  string
		other WordCounts
		want  bool
	}{
		{name: "identical", other: WordCounts{"a": analytics.Ok(1), "b": analytics.Failed("x")}, want: true},
		{name: "different count", other: WordCounts{"a": analytics.Ok(2), "b": analytics.Failed("x")}, want: false},
		{name: "different message", other: WordCounts{"a": analytics.Ok(1), "b": analytics.Failed("y")}, want: false},
		{name: "error vs zero", other: WordCounts{"a": analytics.Ok(1), "b": analytics.Ok(0)}, want: false},
		{name: "missing key", other: WordCounts{"a": analytics.Ok(1)}, want: false},
		{name: "other key", other: WordCounts{"a": analytics.Ok(1), "c": analytics.Failed("x")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopFiles(t *testing.T) {
	counts := WordCounts{
		"/x/small.txt": analytics.Ok(3),
		"/x/big.txt":   analytics.Ok(300),
		"/x/mid.txt":   analytics.Ok(30),
		"/x/tie.txt":   analytics.Ok(30),
		"/x/bad.txt":   analytics.Failed("nope"),
	}

	got := TopFiles(counts, 3)
	want := []string{"big.txt:300", "mid.txt:30", "tie.txt:30"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("TopFiles() = %v, want %v", got, want)
	}

	if got := TopFiles(counts, 10); len(got) != 4 {
		t.Errorf("TopFiles(10) returned %d entries, want 4", len(got))
	}
	if got := TopFiles(counts, -1); len(got) != 0 {
		t.Errorf("TopFiles(-1) = %v, want empty", got)
	}
}
