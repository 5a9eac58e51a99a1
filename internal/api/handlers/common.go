package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"supernova/internal/ai"
	"supernova/internal/app"
	"supernova/internal/auth"
	"supernova/internal/errs"
	"supernova/internal/logger"
	conversationService "supernova/internal/service/conversation"
	historyService "supernova/internal/service/history"
	identityService "supernova/internal/service/identity"
	quizService "supernova/internal/service/quiz"
	searchService "supernova/internal/service/search"
	summaryService "supernova/internal/service/summary"
)

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Handlers carries the service layer behind every endpoint
type Handlers struct {
	config        *app.Config
	tokens        *auth.Manager
	sessions      *ai.SessionRegistry
	identity      *identityService.IdentityService
	search        *searchService.SearchService
	conversations *conversationService.ConversationService
	history       *historyService.HistoryService
	quiz          *quizService.QuizService
	summary       *summaryService.SummaryService
}

// NewHandlers wires the full service stack
func NewHandlers(config *app.Config, tokens *auth.Manager) *Handlers {
	provider := ai.NewWebhookClient(&config.AppConfig.AI)
	sessions := ai.NewSessionRegistry()
	conversations := conversationService.NewConversationService(config.DB)
	hist := historyService.NewHistoryService(config.DB)

	return &Handlers{
		config:        config,
		tokens:        tokens,
		sessions:      sessions,
		identity:      identityService.NewIdentityService(config.DB, identityService.NewBcryptStore(), tokens),
		search:        searchService.NewSearchService(provider, sessions, conversations, hist),
		conversations: conversations,
		history:       hist,
		quiz:          quizService.NewQuizService(provider, sessions),
		summary:       summaryService.NewSummaryService(provider, sessions),
	}
}

// sendJSON writes a JSON response with the given status
func (h *Handlers) sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.WithError(err).Error("Error encoding response")
	}
}

// sendError writes a standardized JSON error response
func (h *Handlers) sendError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Code: status, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	h.sendJSON(w, status, resp)
}

// sendServiceError maps service-layer error types onto HTTP statuses
func (h *Handlers) sendServiceError(w http.ResponseWriter, err error) {
	var (
		validationErr *errs.ValidationError
		conflictErr   *errs.ConflictError
		authErr       *errs.AuthError
		notFoundErr   *errs.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		h.sendError(w, http.StatusBadRequest, validationErr.Error(), nil)
	case errors.As(err, &conflictErr):
		h.sendError(w, http.StatusConflict, conflictErr.Error(), nil)
	case errors.As(err, &authErr):
		h.sendError(w, http.StatusUnauthorized, "Invalid credentials", err)
	case errors.As(err, &notFoundErr):
		h.sendError(w, http.StatusNotFound, notFoundErr.Error(), nil)
	case errors.Is(err, searchService.ErrSuperseded):
		h.sendError(w, http.StatusConflict, "Superseded by a newer search", nil)
	case errors.Is(err, quizService.ErrGenerationInProgress):
		h.sendError(w, http.StatusConflict, "Quiz generation already in progress", nil)
	case errors.Is(err, quizService.ErrEmptyQuiz):
		h.sendError(w, http.StatusBadGateway, "Could not generate quiz, please try again", nil)
	default:
		logger.Log.WithError(err).Error("Unhandled service error")
		h.sendError(w, http.StatusInternalServerError, "Internal server error", err)
	}
}
