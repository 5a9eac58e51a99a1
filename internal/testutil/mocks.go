package testutil

import (
	"errors"

	"supernova/internal/repository/db"
)

// MockDatabase is a mock implementation of db.Database for testing
type MockDatabase struct {
	// User mocks
	GetUserByUsernameFunc func(username string) (*db.User, error)
	GetUserByEmailFunc    func(email string) (*db.User, error)
	CreateUserFunc        func(username, email, passwordHash string) (*db.User, error)

	// Conversation mocks
	SaveConversationFunc func(username string, conv *db.Conversation) error
	GetConversationFunc  func(username string) (*db.Conversation, error)

	// History mocks
	InsertHistoryEntryFunc func(username string, entry *db.HistoryEntry, keep int) error
	ListHistoryFunc        func(username string) ([]db.HistoryEntry, error)
	DeleteHistoryEntryFunc func(username, id string) error
	ClearHistoryFunc       func(username string) error
}

func (m *MockDatabase) GetUserByUsername(username string) (*db.User, error) {
	if m.GetUserByUsernameFunc != nil {
		return m.GetUserByUsernameFunc(username)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetUserByEmail(email string) (*db.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) CreateUser(username, email, passwordHash string) (*db.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(username, email, passwordHash)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) SaveConversation(username string, conv *db.Conversation) error {
	if m.SaveConversationFunc != nil {
		return m.SaveConversationFunc(username, conv)
	}
	return errors.New("not implemented")
}

func (m *MockDatabase) GetConversation(username string) (*db.Conversation, error) {
	if m.GetConversationFunc != nil {
		return m.GetConversationFunc(username)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) InsertHistoryEntry(username string, entry *db.HistoryEntry, keep int) error {
	if m.InsertHistoryEntryFunc != nil {
		return m.InsertHistoryEntryFunc(username, entry, keep)
	}
	return errors.New("not implemented")
}

func (m *MockDatabase) ListHistory(username string) ([]db.HistoryEntry, error) {
	if m.ListHistoryFunc != nil {
		return m.ListHistoryFunc(username)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) DeleteHistoryEntry(username, id string) error {
	if m.DeleteHistoryEntryFunc != nil {
		return m.DeleteHistoryEntryFunc(username, id)
	}
	return errors.New("not implemented")
}

func (m *MockDatabase) ClearHistory(username string) error {
	if m.ClearHistoryFunc != nil {
		return m.ClearHistoryFunc(username)
	}
	return errors.New("not implemented")
}

// MockProvider is a mock implementation of ai.Provider for testing
type MockProvider struct {
	SendFunc func(message, sessionID, persona string) (string, error)

	// Calls records every message sent, in order
	Calls []string
}

func (m *MockProvider) Send(message, sessionID, persona string) (string, error) {
	m.Calls = append(m.Calls, message)
	if m.SendFunc != nil {
		return m.SendFunc(message, sessionID, persona)
	}
	return "", errors.New("not implemented")
}

// MemoryDatabase is an in-memory db.Database for tests that need real
// persistence semantics rather than per-call stubs
type MemoryDatabase struct {
	Conversations map[string]*db.Conversation
	History       map[string][]db.HistoryEntry
}

// NewMemoryDatabase creates an empty MemoryDatabase
func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{
		Conversations: make(map[string]*db.Conversation),
		History:       make(map[string][]db.HistoryEntry),
	}
}

func (m *MemoryDatabase) GetUserByUsername(username string) (*db.User, error) {
	return nil, db.ErrNotFound
}

func (m *MemoryDatabase) GetUserByEmail(email string) (*db.User, error) {
	return nil, db.ErrNotFound
}

func (m *MemoryDatabase) CreateUser(username, email, passwordHash string) (*db.User, error) {
	return nil, errors.New("not implemented")
}

func (m *MemoryDatabase) SaveConversation(username string, conv *db.Conversation) error {
	saved := *conv
	saved.Messages = append([]db.Message(nil), conv.Messages...)
	m.Conversations[username] = &saved
	return nil
}

func (m *MemoryDatabase) GetConversation(username string) (*db.Conversation, error) {
	conv, ok := m.Conversations[username]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *conv
	copied.Messages = append([]db.Message(nil), conv.Messages...)
	return &copied, nil
}

func (m *MemoryDatabase) InsertHistoryEntry(username string, entry *db.HistoryEntry, keep int) error {
	entries := append([]db.HistoryEntry{*entry}, m.History[username]...)
	if len(entries) > keep {
		entries = entries[:keep]
	}
	m.History[username] = entries
	return nil
}

func (m *MemoryDatabase) ListHistory(username string) ([]db.HistoryEntry, error) {
	return append([]db.HistoryEntry(nil), m.History[username]...), nil
}

func (m *MemoryDatabase) DeleteHistoryEntry(username, id string) error {
	entries := m.History[username]
	for i, entry := range entries {
		if entry.ID == id {
			m.History[username] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *MemoryDatabase) ClearHistory(username string) error {
	delete(m.History, username)
	return nil
}
