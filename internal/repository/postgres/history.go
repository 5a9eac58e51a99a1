package postgres

import (
	"encoding/json"
	"fmt"

	"supernova/internal/logger"
	"supernova/internal/repository/db"

	"github.com/sirupsen/logrus"
)

// InsertHistoryEntry prepends a search history entry for a username and
// trims the stored sequence to the keep most recent entries
func (p *PostgresDB) InsertHistoryEntry(username string, entry *db.HistoryEntry, keep int) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("error marshaling history entry: %w", err)
	}

	tx, err := p.conn.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `INSERT INTO search_history (id, username, entry) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(insert, entry.ID, username, data); err != nil {
		return fmt.Errorf("error inserting history entry: %w", err)
	}

	// Drop anything beyond the newest keep entries for this user
	trim := `
	DELETE FROM search_history
	WHERE username = $1 AND id NOT IN (
		SELECT id FROM search_history
		WHERE username = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	)
	`
	if _, err := tx.Exec(trim, username, keep); err != nil {
		return fmt.Errorf("error trimming history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing history insert: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"username": username, "entry_id": entry.ID}).Debug("Recorded history entry")
	return nil
}

// ListHistory returns a username's history entries, newest first
func (p *PostgresDB) ListHistory(username string) ([]db.HistoryEntry, error) {
	query := `
	SELECT entry FROM search_history
	WHERE username = $1
	ORDER BY created_at DESC, id DESC
	`

	rows, err := p.conn.Query(query, username)
	if err != nil {
		return nil, fmt.Errorf("error listing history: %w", err)
	}
	defer rows.Close()

	entries := []db.HistoryEntry{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("error scanning history row: %w", err)
		}
		var entry db.HistoryEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("error unmarshaling history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteHistoryEntry removes a single entry by id
func (p *PostgresDB) DeleteHistoryEntry(username, id string) error {
	result, err := p.conn.Exec(`DELETE FROM search_history WHERE username = $1 AND id = $2`, username, id)
	if err != nil {
		return fmt.Errorf("error deleting history entry: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return db.ErrNotFound
	}
	return nil
}

// ClearHistory removes all entries for a username
func (p *PostgresDB) ClearHistory(username string) error {
	if _, err := p.conn.Exec(`DELETE FROM search_history WHERE username = $1`, username); err != nil {
		return fmt.Errorf("error clearing history: %w", err)
	}
	return nil
}
