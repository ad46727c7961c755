package storage

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"siprev/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "siprev.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestReplaceAndLoadSales(t *testing.T) {
	db := openTestDB(t)

	records := []internal.SalesRecord{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Product: "VELA PALITO", Quantity: 120},
		{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Product: "LIBRA", Quantity: 14.5},
	}
	if err := db.ReplaceSales(records); err != nil {
		t.Fatal(err)
	}

	loaded, err := db.LoadSales()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, records) {
		t.Fatalf("loaded %v, want %v", loaded, records)
	}

	// A second replace swaps the series wholesale, never appends.
	replacement := records[:1]
	if err := db.ReplaceSales(replacement); err != nil {
		t.Fatal(err)
	}
	loaded, err = db.LoadSales()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded %d rows after replace, want 1", len(loaded))
	}
}

func TestLoadSalesSortedByDate(t *testing.T) {
	db := openTestDB(t)

	records := []internal.SalesRecord{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Product: "A", Quantity: 1},
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Product: "B", Quantity: 2},
	}
	if err := db.ReplaceSales(records); err != nil {
		t.Fatal(err)
	}

	loaded, err := db.LoadSales()
	if err != nil {
		t.Fatal(err)
	}
	if !loaded[0].Date.Before(loaded[1].Date) {
		t.Fatalf("rows not date-sorted: %v", loaded)
	}
}

func TestRuns(t *testing.T) {
	db := openTestDB(t)

	if _, found, err := db.LastRun(); err != nil || found {
		t.Fatalf("LastRun on empty db: found=%v err=%v", found, err)
	}

	stats := internal.RunStats{
		FilesSeen:    5,
		FilesParsed:  4,
		FilesSkipped: 1,
		RowsKept:     230,
		StartedAt:    time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		FinishedAt:   time.Date(2026, 8, 30, 10, 0, 3, 0, time.UTC),
	}
	if err := db.InsertRun(stats); err != nil {
		t.Fatal(err)
	}

	got, found, err := db.LastRun()
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("run not found")
	}
	if !reflect.DeepEqual(got, stats) {
		t.Fatalf("got %+v, want %+v", got, stats)
	}
}
