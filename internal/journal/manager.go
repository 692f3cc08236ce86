package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	_ "modernc.org/sqlite"
)

// Manager owns the journal lifecycle: directory creation, locking so
// concurrent invocations cannot interleave writes, and retention pruning.
type Manager struct {
	path      string
	retention int
	lockFile  *os.File
}

// NewManager creates a manager for the journal database at path.
func NewManager(path string, retention int) *Manager {
	return &Manager{
		path:      path,
		retention: retention,
	}
}

// Record writes one run and its file records, then prunes old runs. Prune
// failures are reported as warnings and do not fail the record.
func (m *Manager) Record(run Run, files []FileRecord) (int64, error) {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create journal directory: %w", err)
	}

	if err := m.acquireLock(dir); err != nil {
		return 0, fmt.Errorf("failed to acquire journal lock: %w", err)
	}
	defer m.releaseLock()

	db, err := sql.Open("sqlite", m.path)
	if err != nil {
		return 0, fmt.Errorf("failed to open journal: %w", err)
	}
	defer db.Close()

	if err := InitSchema(db); err != nil {
		return 0, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	if err := ApplyWritePragmas(db); err != nil {
		return 0, fmt.Errorf("failed to apply journal pragmas: %w", err)
	}

	runID, err := RecordRun(db, run, files)
	if err != nil {
		return 0, err
	}

	if err := PruneRuns(db, m.retention); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to prune journal: %v\n", err)
	}

	return runID, nil
}

func (m *Manager) acquireLock(dir string) error {
	lockPath := filepath.Join(dir, ".pricectl.lock")
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		return fmt.Errorf("another run is in progress")
	}

	m.lockFile = f
	return nil
}

func (m *Manager) releaseLock() {
	if m.lockFile != nil {
		syscall.Flock(int(m.lockFile.Fd()), syscall.LOCK_UN)
		m.lockFile.Close()
		m.lockFile = nil
	}
}
