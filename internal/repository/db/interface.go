package db

import "errors"

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken and ErrEmailTaken are returned by CreateUser when the
// case-insensitive uniqueness constraints reject the insert
var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

// Database defines the interface for all database operations.
// This allows for easier testing through mocking and decouples the services
// from the specific database implementation.
type Database interface {
	// Users. Username and email lookups are case-insensitive.
	GetUserByUsername(username string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	CreateUser(username, email, passwordHash string) (*User, error)

	// Conversations. One blob per username, replaced wholesale on save.
	SaveConversation(username string, conv *Conversation) error
	GetConversation(username string) (*Conversation, error)

	// Search history, newest first, capped to keep entries per username.
	InsertHistoryEntry(username string, entry *HistoryEntry, keep int) error
	ListHistory(username string) ([]HistoryEntry, error)
	DeleteHistoryEntry(username, id string) error
	ClearHistory(username string) error
}
