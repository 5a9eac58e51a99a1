package conversation

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"supernova/internal/format"
	"supernova/internal/logger"
	"supernova/internal/repository/db"

	"github.com/google/uuid"
)

// ConversationService keeps the live chat transcript for every active
// identity. Anonymous sessions live only in memory; signed-in sessions are
// mirrored to the database as a single blob after every change.
type ConversationService struct {
	db   db.Database
	mu   sync.Mutex
	live map[string]*db.Conversation // keyed by username, "" = anonymous
	now  func() time.Time
}

// NewConversationService creates a new ConversationService
func NewConversationService(database db.Database) *ConversationService {
	return &ConversationService{
		db:   database,
		live: make(map[string]*db.Conversation),
		now:  time.Now,
	}
}

// current returns the live conversation for a username. Signed-in users with
// no live transcript get the stored blob loaded first, so an append right
// after login or a restart extends the persisted history instead of
// replacing it. Callers must hold s.mu.
func (s *ConversationService) current(username string) (*db.Conversation, error) {
	if conv, ok := s.live[username]; ok {
		return conv, nil
	}

	if username != "" {
		conv, err := s.db.GetConversation(username)
		if err == nil {
			s.live[username] = conv
			return conv, nil
		}
		if !errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("failed to load conversation: %w", err)
		}
	}

	conv := s.fresh()
	s.live[username] = conv
	return conv, nil
}

// fresh builds an empty conversation starting now. Callers must hold s.mu.
func (s *ConversationService) fresh() *db.Conversation {
	now := s.now()
	return &db.Conversation{
		Messages:     []db.Message{},
		SessionStart: now,
		LastUpdated:  now,
	}
}

// Append adds a message to the transcript and persists the updated blob for
// signed-in users
func (s *ConversationService) Append(username, role, content, model string) (*db.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.current(username)
	if err != nil {
		return nil, err
	}
	msg := db.Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
		Model:     model,
	}
	conv.Messages = append(conv.Messages, msg)
	conv.LastUpdated = msg.Timestamp

	if err := s.persist(username, conv); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Messages returns a copy of the current transcript
func (s *ConversationService) Messages(username string) ([]db.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.current(username)
	if err != nil {
		return nil, err
	}
	out := make([]db.Message, len(conv.Messages))
	copy(out, conv.Messages)
	return out, nil
}

// Clear discards the transcript and starts a fresh session. For signed-in
// users the empty blob replaces the stored one.
func (s *ConversationService) Clear(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.fresh()
	s.live[username] = conv

	return s.persist(username, conv)
}

// Restore loads the stored conversation into memory, replacing whatever was
// live. A user with no stored conversation gets a fresh empty one.
func (s *ConversationService) Restore(username string) (*db.Conversation, error) {
	if username == "" {
		return nil, fmt.Errorf("cannot restore an anonymous conversation")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.db.GetConversation(username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			conv = s.fresh()
			s.live[username] = conv
			return conv, nil
		}
		return nil, fmt.Errorf("failed to restore conversation: %w", err)
	}

	s.live[username] = conv
	logger.Log.WithField("username", username).WithField("message_count", len(conv.Messages)).Info("Restored conversation")
	return conv, nil
}

// Forget drops the in-memory transcript without touching the stored blob.
// Used on logout so the next session starts from the persisted state.
func (s *ConversationService) Forget(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, username)
}

// Stats summarizes the current session
type Stats struct {
	TotalMessages   int    `json:"total_messages"`
	QuestionsAsked  int    `json:"questions_asked"`
	SessionDuration string `json:"session_duration"`
}

// Stats computes counts and duration for the current session
func (s *ConversationService) Stats(username string) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.current(username)
	if err != nil {
		return Stats{}, err
	}
	questions := 0
	for _, msg := range conv.Messages {
		if msg.Role == "user" {
			questions++
		}
	}
	return Stats{
		TotalMessages:   len(conv.Messages),
		QuestionsAsked:  questions,
		SessionDuration: format.Duration(s.now().Sub(conv.SessionStart)),
	}, nil
}

// SessionInfo describes the session an export was taken from
type SessionInfo struct {
	Started       time.Time `json:"started"`
	Exported      time.Time `json:"exported"`
	TotalMessages int       `json:"total_messages"`
}

// ExportData is the downloadable transcript
type ExportData struct {
	SessionInfo SessionInfo  `json:"session_info"`
	Messages    []db.Message `json:"messages"`
}

// Export snapshots the current transcript for download
func (s *ConversationService) Export(username string) (ExportData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.current(username)
	if err != nil {
		return ExportData{}, err
	}
	messages := make([]db.Message, len(conv.Messages))
	copy(messages, conv.Messages)

	return ExportData{
		SessionInfo: SessionInfo{
			Started:       conv.SessionStart,
			Exported:      s.now(),
			TotalMessages: len(messages),
		},
		Messages: messages,
	}, nil
}

// persist writes the blob for signed-in users; anonymous sessions are
// memory-only. Callers must hold s.mu.
func (s *ConversationService) persist(username string, conv *db.Conversation) error {
	if username == "" {
		return nil
	}
	if err := s.db.SaveConversation(username, conv); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}
