package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultExtension is the file extension counted when none is configured.
const DefaultExtension = ".txt"

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// ListFiles returns the regular files directly inside folder whose names end in ext.
// Paths are joined with folder and returned in directory-listing order.
func (s *Storage) ListFiles(folder, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("error listing folder: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		files = append(files, filepath.Join(folder, entry.Name()))
	}

	return files, nil
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	err := os.WriteFile(filePath, content, 0644)
	if err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}

	return nil
}

// EnsureDir creates dir and any missing parents.
func (s *Storage) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func (s *Storage) HasFolder(folder string) bool {
	info, err := os.Stat(folder)
	return err == nil && info.IsDir()
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}

// TotalSize sums the size of every file that can be stat'ed.
func (s *Storage) TotalSize(files []string) int64 {
	var total int64
	for _, f := range files {
		stats, err := s.GetFileStats(f)
		if err != nil {
			continue
		}
		total += stats.SizeBytes
	}
	return total
}
