package journal

import (
	"database/sql"
	"fmt"
)

const runsTableDDL = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    command TEXT NOT NULL,
    dir TEXT NOT NULL,
    start_time INTEGER NOT NULL,
    end_time INTEGER,
    file_count INTEGER DEFAULT 0,
    changed_count INTEGER DEFAULT 0,
    bytes_before INTEGER DEFAULT 0,
    bytes_after INTEGER DEFAULT 0
);
`

const runFilesTableDDL = `
CREATE TABLE IF NOT EXISTS run_files (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    path TEXT NOT NULL,
    bytes_before INTEGER NOT NULL,
    bytes_after INTEGER NOT NULL,
    changed INTEGER NOT NULL
);
`

const runFilesRunIndexDDL = `CREATE INDEX IF NOT EXISTS idx_run_files_run ON run_files(run_id);`
const runsStartIndexDDL = `CREATE INDEX IF NOT EXISTS idx_runs_start ON runs(start_time DESC);`

// InitSchema creates all tables and indexes in the journal database.
func InitSchema(db *sql.DB) error {
	ddls := []string{
		runsTableDDL,
		runFilesTableDDL,
		runFilesRunIndexDDL,
		runsStartIndexDDL,
	}

	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	return nil
}

// ApplyWritePragmas configures SQLite for journal writes.
func ApplyWritePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	return nil
}

// ApplyReadPragmas configures SQLite for read-only journal access.
func ApplyReadPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA query_only = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	return nil
}
