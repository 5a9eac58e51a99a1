package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"supernova/internal/logger"
	"supernova/internal/repository/db"

	"github.com/sirupsen/logrus"
)

// SaveConversation replaces a username's conversation blob wholesale
func (p *PostgresDB) SaveConversation(username string, conv *db.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("error marshaling conversation: %w", err)
	}

	query := `
	INSERT INTO conversations (username, data, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (username) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`

	if _, err := p.conn.Exec(query, username, data); err != nil {
		return fmt.Errorf("error saving conversation: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"username":      username,
		"message_count": len(conv.Messages),
	}).Debug("Saved conversation")

	return nil
}

// GetConversation loads the stored conversation blob for a username.
// Returns db.ErrNotFound when nothing has been persisted yet.
func (p *PostgresDB) GetConversation(username string) (*db.Conversation, error) {
	var data []byte
	query := `SELECT data FROM conversations WHERE username = $1`
	err := p.conn.QueryRow(query, username).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}

	var conv db.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("error unmarshaling conversation: %w", err)
	}
	return &conv, nil
}
