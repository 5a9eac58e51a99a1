package history

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"supernova/internal/errs"
	"supernova/internal/extract"
	"supernova/internal/format"
	"supernova/internal/repository/db"
)

// MaxEntries caps how many searches are kept per identity. Older entries are
// dropped silently when the cap is exceeded.
const MaxEntries = 200

// responsePreviewLength is how much of the answer each entry stores
const responsePreviewLength = 500

// HistoryService records completed searches. History is tied to an account:
// with no identity active every mutation is a silent no-op and listing is
// empty.
type HistoryService struct {
	db  db.Database
	now func() time.Time
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(database db.Database) *HistoryService {
	return &HistoryService{db: database, now: time.Now}
}

// Record stores a completed search. Anonymous searches are not recorded.
func (s *HistoryService) Record(username, query, persona, response string, sources []extract.Citation) (*db.HistoryEntry, error) {
	if username == "" {
		return nil, nil
	}

	now := s.now()
	entry := db.HistoryEntry{
		ID:        strconv.FormatInt(now.UnixNano(), 10),
		Query:     query,
		ModelType: persona,
		Response:  format.Truncate(response, responsePreviewLength),
		Sources:   sources,
		Timestamp: now.UTC().Format(time.RFC3339),
	}

	if err := s.db.InsertHistoryEntry(username, &entry, MaxEntries); err != nil {
		return nil, fmt.Errorf("failed to record history entry: %w", err)
	}
	return &entry, nil
}

// List returns all stored entries, newest first. Empty when anonymous.
func (s *HistoryService) List(username string) ([]db.HistoryEntry, error) {
	if username == "" {
		return []db.HistoryEntry{}, nil
	}

	entries, err := s.db.ListHistory(username)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

// Delete removes one entry by id. No-op when anonymous.
func (s *HistoryService) Delete(username, id string) error {
	if username == "" {
		return nil
	}

	if err := s.db.DeleteHistoryEntry(username, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &errs.NotFoundError{Resource: "history entry"}
		}
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}

// Clear removes every entry for an identity. No-op when anonymous.
func (s *HistoryService) Clear(username string) error {
	if username == "" {
		return nil
	}

	if err := s.db.ClearHistory(username); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
