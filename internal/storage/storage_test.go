package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"jdisco/internal/inventory"
	"jdisco/internal/slogutil"
	"jdisco/internal/walker"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	root := t.TempDir()
	db, err := Open(root, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, root
}

func sampleModel(scanID string, finished time.Time) *inventory.Model {
	return &inventory.Model{
		ScanID:      scanID,
		Root:        "/app",
		Project:     "app",
		Fingerprint: "fp-" + scanID,
		StartedAt:   finished.Add(-2 * time.Second),
		FinishedAt:  finished,
		Entities: []inventory.Entry{
			{File: walker.FileRecord{RelativePath: "src/Customer.java", Extension: ".java", Size: 120}, Patterns: []string{"@Entity"}},
		},
		Summary: inventory.Summary{
			FilesScanned:        10,
			Entities:            1,
			BusinessComponents:  2,
			JSFPages:            3,
			DBConfigs:           1,
			BusinessRuleMethods: 4,
		},
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	db, root := openTestDB(t)

	want := filepath.Join(root, ".jdisco", "jdisco.db")
	if db.Path() != want {
		t.Errorf("Path = %q, want %q", db.Path(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("database file missing: %v", err)
	}
}

func TestExists(t *testing.T) {
	root := t.TempDir()

	if Exists(root) {
		t.Error("Exists = true before any database was created")
	}
	if _, err := os.Stat(filepath.Join(root, ".jdisco")); !os.IsNotExist(err) {
		t.Errorf("Exists created state under root: stat err = %v", err)
	}

	db, err := Open(root, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	db.Close()

	if !Exists(root) {
		t.Error("Exists = false after Open created the database")
	}
}

func TestSaveAndLoadScan(t *testing.T) {
	db, _ := openTestDB(t)

	m := sampleModel("scan-1", time.Now().UTC().Truncate(time.Second))
	if err := db.SaveScan(m); err != nil {
		t.Fatalf("SaveScan failed: %v", err)
	}

	loaded, err := db.LoadScan("scan-1")
	if err != nil {
		t.Fatalf("LoadScan failed: %v", err)
	}
	if loaded.ScanID != m.ScanID || loaded.Project != m.Project {
		t.Errorf("loaded = %s/%s, want %s/%s", loaded.ScanID, loaded.Project, m.ScanID, m.Project)
	}
	if loaded.Summary != m.Summary {
		t.Errorf("summary round-trip mismatch:\ngot  %+v\nwant %+v", loaded.Summary, m.Summary)
	}
	if len(loaded.Entities) != 1 || loaded.Entities[0].File.RelativePath != "src/Customer.java" {
		t.Errorf("entities round-trip mismatch: %+v", loaded.Entities)
	}
}

func TestLoadScanMissing(t *testing.T) {
	db, _ := openTestDB(t)
	if _, err := db.LoadScan("missing"); err == nil {
		t.Error("expected error for unknown scan ID")
	}
}

func TestListScansNewestFirst(t *testing.T) {
	db, _ := openTestDB(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"old", "mid", "new"} {
		m := sampleModel(id, base.Add(time.Duration(i)*time.Minute))
		if err := db.SaveScan(m); err != nil {
			t.Fatalf("SaveScan(%s) failed: %v", id, err)
		}
	}

	records, err := db.ListScans(0)
	if err != nil {
		t.Fatalf("ListScans failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	want := []string{"new", "mid", "old"}
	for i, r := range records {
		if r.ScanID != want[i] {
			t.Errorf("record %d = %s, want %s", i, r.ScanID, want[i])
		}
	}

	limited, err := db.ListScans(2)
	if err != nil {
		t.Fatalf("ListScans(2) failed: %v", err)
	}
	if len(limited) != 2 || limited[0].ScanID != "new" {
		t.Errorf("limited = %+v", limited)
	}
}

func TestSaveScanDuplicateID(t *testing.T) {
	db, _ := openTestDB(t)
	m := sampleModel("dup", time.Now().UTC())
	if err := db.SaveScan(m); err != nil {
		t.Fatalf("first SaveScan failed: %v", err)
	}
	if err := db.SaveScan(m); err == nil {
		t.Error("duplicate scan ID should fail")
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	root := t.TempDir()
	logger := slogutil.NewDiscardLogger()

	db, err := Open(root, logger)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.SaveScan(sampleModel("persist", time.Now().UTC())); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(root, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	records, err := db.ListScans(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ScanID != "persist" {
		t.Errorf("history lost across reopen: %+v", records)
	}
}
