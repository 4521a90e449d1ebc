package db

import (
	"path/filepath"
	"testing"
	"time"

	"jumpstat/internal/core/aggregate"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "scans.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}

func TestRecordScan(t *testing.T) {
	database := openTestDB(t)

	ds := aggregate.NewDataset("111")
	ds.Files = []string{"/base/P1/S1_x_DATACO-111.jump"}
	ds.ProcessedCount = 1
	ds.EventCount = 3
	ds.TagCounts["dog"] = 3
	ds.SessionDates["S1_250108_095047"] = time.Date(2025, 1, 8, 9, 50, 47, 0, time.UTC)

	if err := database.RecordScan(ds, "load", "/base"); err != nil {
		t.Fatalf("RecordScan() error = %v", err)
	}

	scans, err := database.ListScans(time.Time{})
	if err != nil {
		t.Fatalf("ListScans() error = %v", err)
	}
	if len(scans) != 1 {
		t.Fatalf("got %d scans, want 1", len(scans))
	}

	s := scans[0]
	if s.DatasetID != "111" || s.Action != "load" || s.BaseDir != "/base" {
		t.Errorf("unexpected scan row: %+v", s)
	}
	if s.TotalFiles != 1 || s.ProcessedFiles != 1 || s.EventCount != 3 || s.UniqueTags != 1 {
		t.Errorf("unexpected counters: %+v", s)
	}
}

func TestRecordScan_NoDates(t *testing.T) {
	database := openTestDB(t)

	// A dataset whose sessions carry no derivable dates
	ds := aggregate.NewDataset("222")

	if err := database.RecordScan(ds, "load", "/base"); err != nil {
		t.Fatal(err)
	}

	scans, err := database.ListScans(time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if scans[0].MinDate != nil || scans[0].MaxDate != nil {
		t.Errorf("dates should be null, got %v / %v", scans[0].MinDate, scans[0].MaxDate)
	}
}

func TestListScans_Since(t *testing.T) {
	database := openTestDB(t)

	if err := database.RecordScan(aggregate.NewDataset("1"), "load", "/base"); err != nil {
		t.Fatal(err)
	}

	scans, err := database.ListScans(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(scans) != 0 {
		t.Errorf("future cutoff should return nothing, got %d rows", len(scans))
	}
}
