package db

import (
	"time"

	"supernova/internal/extract"
)

// User represents a registered identity in the database
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Message is a single chat exchange entry. Messages are immutable once
// created and only disappear when the whole conversation is cleared.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Model     string    `json:"model"`
}

// Conversation is the per-identity chat blob. It is always persisted and
// loaded as a whole, never merged.
type Conversation struct {
	Messages     []Message `json:"messages"`
	SessionStart time.Time `json:"sessionStart"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// HistoryEntry is one completed search recorded for an identity
type HistoryEntry struct {
	ID        string             `json:"id"`
	Query     string             `json:"query"`
	ModelType string             `json:"model_type"`
	Response  string             `json:"response"`
	Sources   []extract.Citation `json:"sources"`
	Timestamp string             `json:"timestamp"`
}
