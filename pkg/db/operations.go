package db

import (
	"database/sql"
	"fmt"

	"github.com/dtnitsch/wordcount-bench/pkg/mapreduce"
)

// RunRecord is one recorded comparison run.
type RunRecord struct {
	RunUUID           string  `json:"run_uuid" yaml:"run_uuid"`
	Folder            string  `json:"folder" yaml:"folder"`
	Extension         string  `json:"extension" yaml:"extension"`
	FileSetHash       string  `json:"file_set_hash" yaml:"file_set_hash"`
	FileCount         int     `json:"file_count" yaml:"file_count"`
	TotalBytes        int64   `json:"total_bytes" yaml:"total_bytes"`
	Workers           int     `json:"workers" yaml:"workers"`
	Strategy          string  `json:"strategy" yaml:"strategy"`
	SequentialSeconds float64 `json:"sequential_seconds" yaml:"sequential_seconds"`
	ParallelSeconds   float64 `json:"parallel_seconds" yaml:"parallel_seconds"`
	Speedup           float64 `json:"speedup" yaml:"speedup"`
	SequentialWords   int     `json:"sequential_words" yaml:"sequential_words"`
	ParallelWords     int     `json:"parallel_words" yaml:"parallel_words"`
	FailedCount       int     `json:"failed_count" yaml:"failed_count"`
	Equivalent        bool    `json:"equivalent" yaml:"equivalent"`
}

// InsertRun stores a run and returns its run_id.
func (db *DB) InsertRun(r RunRecord) (int64, error) {
	if r.RunUUID == "" {
		return 0, fmt.Errorf("failed to insert run: run_uuid is required")
	}

	result, err := db.Exec(`
		INSERT INTO runs (run_uuid, folder, extension, file_set_hash, file_count, total_bytes,
		                  workers, strategy, sequential_seconds, parallel_seconds, speedup,
		                  sequential_words, parallel_words, failed_count, equivalent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.RunUUID, r.Folder, r.Extension, r.FileSetHash, r.FileCount, r.TotalBytes,
		r.Workers, r.Strategy, r.SequentialSeconds, r.ParallelSeconds, r.Speedup,
		r.SequentialWords, r.ParallelWords, r.FailedCount, r.Equivalent)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// InsertRunFiles stores the per-file outcome of a run in one transaction.
func (db *DB) InsertRunFiles(runID int64, counts mapreduce.WordCounts) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	stmt, err := tx.Prepare(`
		INSERT INTO run_files (run_id, file_path, word_count, error_message)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare run file insert: %w", err)
	}
	defer stmt.Close()

	for _, path := range mapreduce.SortedPaths(counts) {
		c := counts[path]
		wordCount := sql.NullInt64{Int64: int64(c.Words()), Valid: !c.IsError()}
		if _, err := stmt.Exec(runID, path, wordCount, NewNullString(c.Err())); err != nil {
			return fmt.Errorf("failed to insert run file %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run files: %w", err)
	}
	return nil
}

// DeleteRun removes a run and, through the foreign key cascade, its files.
func (db *DB) DeleteRun(runID int64) error {
	result, err := db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %d not found", runID)
	}
	return nil
}

// NewNullString creates a sql.NullString from a string value.
// Returns NULL if the string is empty.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
