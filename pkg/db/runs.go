package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dtnitsch/wordcount-bench/pkg/analytics"
	"github.com/dtnitsch/wordcount-bench/pkg/mapreduce"
)

// Run represents a stored comparison run
type Run struct {
	RunID     int64     `json:"run_id" yaml:"run_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	RunRecord `yaml:",inline"`
}

// RunFile is the stored outcome for one file of a run
type RunFile struct {
	FilePath     string
	WordCount    sql.NullInt64
	ErrorMessage sql.NullString
}

// Count converts the stored row back into an analytics.Count.
func (f RunFile) Count() analytics.Count {
	if f.ErrorMessage.Valid {
		return analytics.Failed(f.ErrorMessage.String)
	}
	return analytics.Ok(int(f.WordCount.Int64))
}

const runColumns = `
	run_id, created_at, run_uuid, folder, extension, file_set_hash, file_count, total_bytes,
	workers, strategy, sequential_seconds, parallel_seconds, speedup,
	sequential_words, parallel_words, failed_count, equivalent
`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	err := row.Scan(&r.RunID, &r.CreatedAt, &r.RunUUID, &r.Folder, &r.Extension, &r.FileSetHash,
		&r.FileCount, &r.TotalBytes, &r.Workers, &r.Strategy, &r.SequentialSeconds,
		&r.ParallelSeconds, &r.Speedup, &r.SequentialWords, &r.ParallelWords,
		&r.FailedCount, &r.Equivalent)
	return r, err
}

// ListRuns returns the most recent runs first. A limit of 0 returns all runs.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := "SELECT" + runColumns + "FROM runs ORDER BY created_at DESC, run_id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// ListRunsByFileSet returns runs over the same corpus, most recent first.
func (db *DB) ListRunsByFileSet(fileSetHash string) ([]Run, error) {
	rows, err := db.Query("SELECT"+runColumns+"FROM runs WHERE file_set_hash = ? ORDER BY created_at DESC, run_id DESC", fileSetHash)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs by file set: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// GetRunByID retrieves a run by ID
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	r, err := scanRun(db.QueryRow("SELECT"+runColumns+"FROM runs WHERE run_id = ?", runID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// LatestRunID returns the ID of the most recent run.
func (db *DB) LatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow("SELECT run_id FROM runs ORDER BY created_at DESC, run_id DESC LIMIT 1").Scan(&runID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no runs found. Run 'wcb compare --record' first")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

// GetRunFiles retrieves the per-file outcomes of a run, ordered by path
func (db *DB) GetRunFiles(runID int64) ([]RunFile, error) {
	rows, err := db.Query(`
		SELECT file_path, word_count, error_message
		FROM run_files
		WHERE run_id = ?
		ORDER BY file_path
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run files: %w", err)
	}
	defer rows.Close()

	var files []RunFile
	for rows.Next() {
		var f RunFile
		if err := rows.Scan(&f.FilePath, &f.WordCount, &f.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan run file: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// GetRunCounts rebuilds the stored mapping of a run.
func (db *DB) GetRunCounts(runID int64) (mapreduce.WordCounts, error) {
	files, err := db.GetRunFiles(runID)
	if err != nil {
		return nil, err
	}

	counts := make(mapreduce.WordCounts, len(files))
	for _, f := range files {
		counts[f.FilePath] = f.Count()
	}
	return counts, nil
}
