package history

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"supernova/internal/errs"
	"supernova/internal/extract"
	"supernova/internal/repository/db"
	"supernova/internal/testutil"
)

// countingClock makes entry IDs deterministic and distinct
func countingClock() func() time.Time {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestRecordSignedInUsesCap(t *testing.T) {
	var gotKeep int
	mockDB := &testutil.MockDatabase{
		InsertHistoryEntryFunc: func(username string, entry *db.HistoryEntry, keep int) error {
			gotKeep = keep
			if entry.ID == "" {
				t.Error("Entry ID not assigned")
			}
			if entry.Query != "bone loss" {
				t.Errorf("Query: got %q", entry.Query)
			}
			return nil
		},
	}
	service := NewHistoryService(mockDB)
	service.now = countingClock()

	sources := []extract.Citation{{ID: "paper-0", Title: "Some Paper"}}
	entry, err := service.Record("alice", "bone loss", "researcher", "answer text", sources)
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	if gotKeep != MaxEntries {
		t.Errorf("keep: got %d, want %d", gotKeep, MaxEntries)
	}
	if entry.ModelType != "researcher" {
		t.Errorf("ModelType: got %q", entry.ModelType)
	}
	if len(entry.Sources) != 1 {
		t.Errorf("Sources: got %d, want 1", len(entry.Sources))
	}
}

func TestRecordTruncatesLongResponses(t *testing.T) {
	service := NewHistoryService(testutil.NewMemoryDatabase())
	service.now = countingClock()

	long := ""
	for i := 0; i < 600; i++ {
		long += "x"
	}

	entry, err := service.Record("alice", "q", "researcher", long, nil)
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if len(entry.Response) != responsePreviewLength+3 {
		t.Errorf("Response length: got %d, want %d plus ellipsis", len(entry.Response), responsePreviewLength)
	}
}

func TestAnonymousMutationsAreNoOps(t *testing.T) {
	mem := testutil.NewMemoryDatabase()
	service := NewHistoryService(mem)
	service.now = countingClock()

	entry, err := service.Record("", "private query", "researcher", "answer", nil)
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if entry != nil {
		t.Errorf("Anonymous Record stored an entry: %+v", entry)
	}

	// Nothing recorded anywhere: another anonymous client must never see it
	entries, err := service.List("")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Anonymous List: got %d entries, want 0", len(entries))
	}
	if len(mem.History) != 0 {
		t.Errorf("Anonymous Record reached the database: %+v", mem.History)
	}

	if err := service.Delete("", "any-id"); err != nil {
		t.Errorf("Anonymous Delete: got %v, want nil", err)
	}
	if err := service.Clear(""); err != nil {
		t.Errorf("Anonymous Clear: got %v, want nil", err)
	}
}

func TestSignedInHistoryCappedAtMaxEntries(t *testing.T) {
	mem := testutil.NewMemoryDatabase()
	service := NewHistoryService(mem)
	service.now = countingClock()

	for i := 0; i < MaxEntries+1; i++ {
		if _, err := service.Record("alice", fmt.Sprintf("query %d", i), "researcher", "answer", nil); err != nil {
			t.Fatalf("Record %d returned error: %v", i, err)
		}
	}

	entries, err := service.List("alice")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != MaxEntries {
		t.Fatalf("Expected %d entries, got %d", MaxEntries, len(entries))
	}

	// Newest first; the very first recording fell off the end
	if entries[0].Query != fmt.Sprintf("query %d", MaxEntries) {
		t.Errorf("Newest entry: got %q", entries[0].Query)
	}
	if entries[len(entries)-1].Query != "query 1" {
		t.Errorf("Oldest surviving entry: got %q, want query 1", entries[len(entries)-1].Query)
	}
}

func TestDeleteEntry(t *testing.T) {
	mem := testutil.NewMemoryDatabase()
	service := NewHistoryService(mem)
	service.now = countingClock()

	entry, _ := service.Record("alice", "to delete", "researcher", "answer", nil)
	service.Record("alice", "to keep", "researcher", "answer", nil)

	if err := service.Delete("alice", entry.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	entries, _ := service.List("alice")
	if len(entries) != 1 || entries[0].Query != "to keep" {
		t.Errorf("Entries after delete: %+v", entries)
	}
}

func TestDeleteUnknownEntry(t *testing.T) {
	service := NewHistoryService(testutil.NewMemoryDatabase())

	err := service.Delete("alice", "no-such-id")

	var notFoundErr *errs.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("Expected *errs.NotFoundError, got %T (%v)", err, err)
	}
}

func TestClear(t *testing.T) {
	mem := testutil.NewMemoryDatabase()
	service := NewHistoryService(mem)
	service.now = countingClock()

	service.Record("alice", "q1", "researcher", "a", nil)

	if err := service.Clear("alice"); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}

	if entries, _ := service.List("alice"); len(entries) != 0 {
		t.Error("Signed-in history not cleared")
	}
}
