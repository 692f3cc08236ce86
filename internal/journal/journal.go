// Package journal persists normalization runs to a SQLite database so they
// can be inspected later with the history and tui commands.
package journal

import (
	"database/sql"
	"fmt"
	"time"
)

const insertRunSQL = `INSERT INTO runs (command, dir, start_time, end_time, file_count, changed_count, bytes_before, bytes_after) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
const insertFileSQL = `INSERT INTO run_files (run_id, path, bytes_before, bytes_after, changed) VALUES (?, ?, ?, ?, ?)`

// Run describes one recorded command invocation.
type Run struct {
	ID           int64
	Command      string
	Dir          string
	StartTime    time.Time
	EndTime      time.Time
	FileCount    int64
	ChangedCount int64
	BytesBefore  int64
	BytesAfter   int64
}

// FileRecord describes one file processed during a run.
type FileRecord struct {
	RunID       int64
	Path        string
	BytesBefore int64
	BytesAfter  int64
	Changed     bool
}

// RecordRun writes a run and its file records in a single transaction and
// returns the new run ID.
func RecordRun(db *sql.DB, run Run, files []FileRecord) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	res, err := tx.Exec(insertRunSQL,
		run.Command, run.Dir, run.StartTime.Unix(), run.EndTime.Unix(),
		run.FileCount, run.ChangedCount, run.BytesBefore, run.BytesAfter,
	)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.Prepare(insertFileSQL)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare file statement: %w", err)
	}
	defer stmt.Close()

	for _, f := range files {
		changed := 0
		if f.Changed {
			changed = 1
		}
		if _, err := stmt.Exec(runID, f.Path, f.BytesBefore, f.BytesAfter, changed); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert file record %q: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func ListRuns(db *sql.DB, limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, command, dir, start_time, COALESCE(end_time, 0), file_count, changed_count, bytes_before, bytes_after
		FROM runs ORDER BY start_time DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var start, end int64
		if err := rows.Scan(&r.ID, &r.Command, &r.Dir, &start, &end, &r.FileCount, &r.ChangedCount, &r.BytesBefore, &r.BytesAfter); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartTime = time.Unix(start, 0)
		if end > 0 {
			r.EndTime = time.Unix(end, 0)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// LoadRunFiles returns the file records for a run, ordered by path.
func LoadRunFiles(db *sql.DB, runID int64) ([]FileRecord, error) {
	rows, err := db.Query(`
		SELECT run_id, path, bytes_before, bytes_after, changed
		FROM run_files WHERE run_id = ? ORDER BY path ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		var changed int
		if err := rows.Scan(&f.RunID, &f.Path, &f.BytesBefore, &f.BytesAfter, &changed); err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}
		f.Changed = changed != 0
		files = append(files, f)
	}

	return files, rows.Err()
}

// PruneRuns removes runs beyond the newest retention count, along with their
// file records. Zero retention means unlimited.
func PruneRuns(db *sql.DB, retention int) error {
	if retention <= 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin prune transaction: %w", err)
	}

	keep := `SELECT id FROM runs ORDER BY start_time DESC, id DESC LIMIT ?`
	if _, err := tx.Exec(`DELETE FROM run_files WHERE run_id NOT IN (`+keep+`)`, retention); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prune file records: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM runs WHERE id NOT IN (`+keep+`)`, retention); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prune runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit prune transaction: %w", err)
	}

	return nil
}
