package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per recorded sequential-vs-parallel comparison
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

    -- Input
    folder TEXT NOT NULL,
    extension TEXT NOT NULL,
    file_set_hash TEXT NOT NULL,   -- sha256 over the sorted file list
    file_count INTEGER NOT NULL,
    total_bytes INTEGER DEFAULT 0,

    -- Parallel settings
    workers INTEGER NOT NULL,
    strategy TEXT NOT NULL,        -- block, round-robin

    -- Timings (seconds) and totals
    sequential_seconds REAL NOT NULL,
    parallel_seconds REAL NOT NULL,
    speedup REAL NOT NULL,
    sequential_words INTEGER NOT NULL,
    parallel_words INTEGER NOT NULL,
    failed_count INTEGER DEFAULT 0,
    equivalent BOOLEAN DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_file_set ON runs(file_set_hash);

-- Run files: per-file outcome of the parallel pass
CREATE TABLE IF NOT EXISTS run_files (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    file_path TEXT NOT NULL,
    word_count INTEGER,            -- NULL when the file failed
    error_message TEXT,            -- NULL when the file was counted
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, file_path)
);

CREATE INDEX IF NOT EXISTS idx_run_files_run ON run_files(run_id);
`
