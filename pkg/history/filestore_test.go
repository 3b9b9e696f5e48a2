package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cardioscope-ai/riskscore/pkg/common/models"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store, path
}

func record(name string, percent int) models.HistoryRecord {
	return models.HistoryRecord{
		Name:               name,
		AgeYears:           50,
		Gender:             "female",
		ProbabilityPercent: percent,
		RiskLevel:          "at_risk",
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	names := []string{"Alice", "Bob", "Carol"}
	for i, name := range names {
		stored, err := store.Append(ctx, record(name, 40+i), nil)
		if err != nil {
			t.Fatalf("append %s: %v", name, err)
		}
		if stored.ID == "" {
			t.Fatalf("append %s: expected assigned id", name)
		}
		if stored.Timestamp.IsZero() {
			t.Fatalf("append %s: expected assigned timestamp", name)
		}
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, name := range names {
		if records[i].Name != name {
			t.Fatalf("slot %d: expected %s, got %s (insertion order lost)", i, name, records[i].Name)
		}
		if records[i].ProbabilityPercent != 40+i {
			t.Fatalf("slot %d: probability not preserved: %d", i, records[i].ProbabilityPercent)
		}
		if records[i].Gender != "female" || records[i].AgeYears != 50 || records[i].RiskLevel != "at_risk" {
			t.Fatalf("slot %d: fields not preserved: %+v", i, records[i])
		}
	}
}

func TestFileStoreListAbsentIsEmpty(t *testing.T) {
	store, path := newTestStore(t)

	records, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty slice, got %d records", len(records))
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("list must not create the file")
	}
}

func TestFileStoreDeleteAtShiftsRows(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		if _, err := store.Append(ctx, record(name, 50), nil); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if err := store.DeleteAt(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "Alice" || records[1].Name != "Carol" {
		t.Fatalf("unexpected rows after delete: %s, %s", records[0].Name, records[1].Name)
	}
}

func TestFileStoreDeleteAtOutOfRange(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Append(ctx, record("Alice", 50), nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	for _, index := range []int{-1, 1, 99} {
		err := store.DeleteAt(ctx, index)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrIndexOutOfRange, got %v", index, err)
		}
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatal("failed delete must not mutate the store")
	}
}

func TestFileStoreDeleteByID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Append(ctx, record("Alice", 50), nil)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := store.Append(ctx, record("Bob", 60), nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Bob" {
		t.Fatalf("unexpected records after delete: %+v", records)
	}

	if err := store.Delete(ctx, first.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestFileStoreClear(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Append(ctx, record("Alice", 50), nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("clear must remove the file")
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list after clear: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d records", len(records))
	}

	// Clearing an absent store is a no-op, not an error.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStoreTimestampsSurviveRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	rec := record("Alice", 50)
	rec.Timestamp = ts
	if _, err := store.Append(ctx, rec, nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !records[0].Timestamp.Equal(ts) {
		t.Fatalf("timestamp changed: %v vs %v", records[0].Timestamp, ts)
	}
}
