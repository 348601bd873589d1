package bench

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dtnitsch/wordcount-bench/models"
	"github.com/google/uuid"
)

func newTestRunner() *Runner {
	return NewRunner(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSpeedup(t *testing.T) {
	tests := []struct {
		name       string
		sequential time.Duration
		parallel   time.Duration
		want       float64
	}{
		{name: "twice as fast", sequential: 2 * time.Second, parallel: time.Second, want: 2},
		{name: "slower", sequential: time.Second, parallel: 4 * time.Second, want: 0.25},
		{name: "zero parallel time", sequential: time.Second, parallel: 0, want: 0},
		{name: "both zero", sequential: 0, parallel: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Speedup(tt.sequential, tt.parallel); got != tt.want {
				t.Errorf("Speedup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string][]byte{
		"a.txt":    []byte("hello world"),
		"b.txt":    []byte("foo"),
		"c.txt":    {0xff, 0xfe},
		"skip.log": []byte("not counted at all"),
	} {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	for _, strategy := range []string{"block", "round-robin"} {
		t.Run(strategy, func(t *testing.T) {
			cfg := &models.RunConfig{Folder: dir, WorkerCount: 2, Strategy: strategy}
			report, err := newTestRunner().Compare(cfg)
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}

			if report.Files != 3 {
				t.Errorf("Files = %d, want 3", report.Files)
			}
			if report.SequentialWords != 3 || report.ParallelWords != 3 {
				t.Errorf("words = %d/%d, want 3/3", report.SequentialWords, report.ParallelWords)
			}
			if report.Failed != 1 {
				t.Errorf("Failed = %d, want 1", report.Failed)
			}
			if !report.Equivalent {
				t.Error("Equivalent = false, want true")
			}
			if report.Strategy != strategy {
				t.Errorf("Strategy = %s, want %s", report.Strategy, strategy)
			}
			if report.TotalBytes != 16 {
				t.Errorf("TotalBytes = %d, want 16", report.TotalBytes)
			}
			if _, err := uuid.Parse(report.RunUUID); err != nil {
				t.Errorf("RunUUID %q is not a UUID: %v", report.RunUUID, err)
			}
			if report.FileSetHash == "" {
				t.Error("FileSetHash is empty")
			}
		})
	}
}

func TestCompare_EmptyFolder(t *testing.T) {
	cfg := &models.RunConfig{Folder: t.TempDir(), WorkerCount: 4}
	report, err := newTestRunner().Compare(cfg)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(report.SequentialCounts) != 0 || len(report.ParallelCounts) != 0 {
		t.Errorf("expected empty mappings, got %v and %v", report.SequentialCounts, report.ParallelCounts)
	}
	if report.SequentialWords != 0 || report.ParallelWords != 0 {
		t.Errorf("words = %d/%d, want 0/0", report.SequentialWords, report.ParallelWords)
	}
	if report.Speedup < 0 {
		t.Errorf("Speedup = %v, want non-negative", report.Speedup)
	}
	if !report.Equivalent {
		t.Error("Equivalent = false, want true")
	}
}

func TestCompare_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.RunConfig
	}{
		{name: "missing folder", cfg: models.RunConfig{Folder: filepath.Join(t.TempDir(), "nope"), WorkerCount: 1}},
		{name: "unknown strategy", cfg: models.RunConfig{Folder: t.TempDir(), WorkerCount: 1, Strategy: "zigzag"}},
		{name: "negative workers", cfg: models.RunConfig{Folder: t.TempDir(), WorkerCount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if _, err := newTestRunner().Compare(&cfg); err == nil {
				t.Error("Compare() error = nil, want error")
			}
		})
	}
}
