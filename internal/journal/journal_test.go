package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestRecordRunRoundTrip(t *testing.T) {
	db := openTestDB(t)

	start := time.Unix(1700000000, 0)
	run := Run{
		Command:      "touch",
		Dir:          "/repo/pricing",
		StartTime:    start,
		EndTime:      start.Add(time.Second),
		FileCount:    2,
		ChangedCount: 1,
		BytesBefore:  20,
		BytesAfter:   18,
	}
	files := []FileRecord{
		{Path: "/repo/pricing/a.json", BytesBefore: 8, BytesAfter: 9, Changed: true},
		{Path: "/repo/pricing/b.json", BytesBefore: 12, BytesAfter: 9, Changed: false},
	}

	runID, err := RecordRun(db, run, files)
	if err != nil {
		t.Fatalf("record run: %v", err)
	}

	runs, err := ListRuns(db, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != runID || got.Command != "touch" || got.Dir != "/repo/pricing" {
		t.Fatalf("unexpected run: %+v", got)
	}
	if got.FileCount != 2 || got.ChangedCount != 1 || got.BytesBefore != 20 || got.BytesAfter != 18 {
		t.Fatalf("unexpected run stats: %+v", got)
	}
	if !got.StartTime.Equal(start) {
		t.Fatalf("unexpected start time: %v", got.StartTime)
	}

	loaded, err := LoadRunFiles(db, runID)
	if err != nil {
		t.Fatalf("load run files: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 file records, got %d", len(loaded))
	}
	if loaded[0].Path != "/repo/pricing/a.json" || !loaded[0].Changed {
		t.Fatalf("unexpected first record: %+v", loaded[0])
	}
	if loaded[1].Path != "/repo/pricing/b.json" || loaded[1].Changed {
		t.Fatalf("unexpected second record: %+v", loaded[1])
	}
}

func TestPruneRunsKeepsNewest(t *testing.T) {
	db := openTestDB(t)

	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(int64(1700000000+i), 0)
		id, err := RecordRun(db, Run{
			Command:   "touch",
			Dir:       "/repo/pricing",
			StartTime: start,
			EndTime:   start,
		}, []FileRecord{{Path: "/repo/pricing/a.json", Changed: true}})
		if err != nil {
			t.Fatalf("record run %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	if err := PruneRuns(db, 2); err != nil {
		t.Fatalf("prune: %v", err)
	}

	runs, err := ListRuns(db, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs after prune, got %d", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Fatalf("unexpected surviving runs: %+v", runs)
	}

	orphaned, err := LoadRunFiles(db, ids[0])
	if err != nil {
		t.Fatalf("load pruned files: %v", err)
	}
	if len(orphaned) != 0 {
		t.Fatalf("expected pruned run's files removed, got %d", len(orphaned))
	}
}

func TestPruneRunsZeroRetentionIsUnlimited(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		start := time.Unix(int64(1700000000+i), 0)
		if _, err := RecordRun(db, Run{Command: "touch", Dir: "d", StartTime: start, EndTime: start}, nil); err != nil {
			t.Fatalf("record run %d: %v", i, err)
		}
	}

	if err := PruneRuns(db, 0); err != nil {
		t.Fatalf("prune: %v", err)
	}
	runs, err := ListRuns(db, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected all runs retained, got %d", len(runs))
	}
}

func TestManagerRecordAppliesRetention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "journal.db")
	mgr := NewManager(path, 1)

	for i := 0; i < 2; i++ {
		start := time.Unix(int64(1700000000+i), 0)
		if _, err := mgr.Record(Run{
			Command:   "touch",
			Dir:       "/repo/pricing",
			StartTime: start,
			EndTime:   start,
		}, nil); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer db.Close()

	runs, err := ListRuns(db, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected retention to keep 1 run, got %d", len(runs))
	}
	if !runs[0].StartTime.Equal(time.Unix(1700000001, 0)) {
		t.Fatalf("expected newest run kept, got %v", runs[0].StartTime)
	}
}
