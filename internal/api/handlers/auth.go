package handlers

import (
	"encoding/json"
	"net/http"

	"supernova/internal/auth"
	identityService "supernova/internal/service/identity"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Message  string `json:"message,omitempty"`
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterHandler creates a new account and signs the user in
func (h *Handlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	session, err := h.identity.Register(identityService.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusCreated, SessionResponse{
		Message:  "User registered successfully",
		Token:    session.Token,
		UserID:   session.UserID,
		Username: session.Username,
		Email:    session.Email,
	})
}

// LoginHandler authenticates a user and returns a token
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	session, err := h.identity.Login(req.Username, req.Password)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, SessionResponse{
		Token:    session.Token,
		UserID:   session.UserID,
		Username: session.Username,
		Email:    session.Email,
	})
}

// LogoutHandler drops the server-side session state for the signed-in user.
// The persisted conversation and history are untouched.
func (h *Handlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	h.conversations.Forget(username)
	h.search.Reset(username)
	h.quiz.Clear(username)
	h.sessions.Reset(username)

	h.sendJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// MeHandler returns the identity behind the presented token
func (h *Handlers) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		h.sendError(w, http.StatusUnauthorized, "Not signed in", nil)
		return
	}

	h.sendJSON(w, http.StatusOK, map[string]string{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"email":    claims.Email,
	})
}
