package search

import (
	"errors"
	"strings"
	"sync"
	"time"

	"supernova/internal/ai"
	"supernova/internal/errs"
	"supernova/internal/extract"
	"supernova/internal/format"
	"supernova/internal/logger"
	"supernova/internal/service/conversation"
	"supernova/internal/service/history"
	"supernova/pkg/validation"

	"github.com/sirupsen/logrus"
)

// ErrSuperseded is returned when a newer search for the same identity
// started before this one finished. The late response is discarded.
var ErrSuperseded = errors.New("search superseded by a newer request")

// Result is one completed search
type Result struct {
	Query      string             `json:"query"`
	Persona    string             `json:"persona"`
	Answer     string             `json:"answer"`
	AnswerHTML string             `json:"answer_html"`
	Sources    []extract.Citation `json:"sources"`
	Timestamp  time.Time          `json:"timestamp"`
}

// SearchService runs the full ask-the-assistant pipeline: transcript update,
// prompt construction, webhook call, citation extraction, and history
// recording
type SearchService struct {
	provider      ai.Provider
	sessions      *ai.SessionRegistry
	conversations *conversation.ConversationService
	history       *history.HistoryService
	validator     *validation.SearchRequestValidator

	mu   sync.Mutex
	seq  map[string]uint64 // latest request number per identity
	last map[string]*Result
	now  func() time.Time
}

// NewSearchService creates a new SearchService
func NewSearchService(provider ai.Provider, sessions *ai.SessionRegistry, conversations *conversation.ConversationService, hist *history.HistoryService) *SearchService {
	return &SearchService{
		provider:      provider,
		sessions:      sessions,
		conversations: conversations,
		history:       hist,
		validator:     validation.NewSearchRequestValidator(),
		seq:           make(map[string]uint64),
		last:          make(map[string]*Result),
		now:           time.Now,
	}
}

// Search processes one query end to end. A webhook failure still produces a
// result carrying the connection apology so the transcript never goes blank.
// When another search for the same identity starts while this one is in
// flight, the older response is dropped and ErrSuperseded returned.
func (s *SearchService) Search(username, query, persona string, filters map[string]string) (*Result, error) {
	if err := s.validator.ValidateQuery(query); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)

	if !ai.IsValidPersona(persona) {
		persona = ai.PersonaResearcher
	}

	if _, err := s.conversations.Append(username, "user", query, persona); err != nil {
		logger.Log.WithError(err).Warn("Failed to persist user message, continuing")
	}

	s.mu.Lock()
	s.seq[username]++
	seq := s.seq[username]
	s.mu.Unlock()

	session := s.sessions.SessionFor(username)
	prompt := ai.WithFilterContext(ai.BuildPrompt(query, persona), filters)

	response, sendErr := s.provider.Send(prompt, session, persona)

	s.mu.Lock()
	stale := s.seq[username] != seq
	s.mu.Unlock()
	if stale {
		logger.Log.WithFields(logrus.Fields{
			"username": username,
			"query":    query,
		}).Info("Discarding superseded search response")
		return nil, ErrSuperseded
	}

	result := &Result{
		Query:     query,
		Persona:   persona,
		Timestamp: s.now(),
	}

	if sendErr != nil {
		logger.Log.WithError(sendErr).Warn("Webhook call failed, substituting apology")
		result.Answer = ai.ConnectionApology
		result.AnswerHTML = format.Text(ai.ConnectionApology)

		if _, err := s.conversations.Append(username, "assistant", result.Answer, persona); err != nil {
			logger.Log.WithError(err).Warn("Failed to persist apology message")
		}

		s.storeLast(username, result)
		return result, nil
	}

	result.Answer = extract.SplitAnswer(response)
	result.AnswerHTML = format.Text(result.Answer)
	result.Sources = extract.Extract(response, query, s.now())

	if _, err := s.conversations.Append(username, "assistant", result.Answer, persona); err != nil {
		logger.Log.WithError(err).Warn("Failed to persist assistant message, continuing")
	}

	if _, err := s.history.Record(username, query, persona, result.Answer, result.Sources); err != nil {
		logger.Log.WithError(err).Warn("Failed to record search in history, continuing")
	}

	s.storeLast(username, result)

	logger.Log.WithFields(logrus.Fields{
		"username":     username,
		"persona":      persona,
		"source_count": len(result.Sources),
	}).Info("Search completed")

	return result, nil
}

// Last returns the most recent completed result for an identity
func (s *SearchService) Last(username string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.last[username]
	if !ok {
		return nil, &errs.NotFoundError{Resource: "search result"}
	}
	return result, nil
}

// Reset drops the per-identity search state. Used on logout and when the
// chat is cleared.
func (s *SearchService) Reset(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.last, username)
	delete(s.seq, username)
}

func (s *SearchService) storeLast(username string, result *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[username] = result
}
