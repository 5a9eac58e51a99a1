package handlers

import (
	"fmt"
	"net/http"
	"time"

	"supernova/internal/auth"
	"supernova/internal/repository/db"
)

type MessagesResponse struct {
	Messages []db.Message `json:"messages"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GetMessagesHandler returns the current transcript. Signed-in users are
// served the persisted conversation so a new device picks up where the last
// one left off.
func (h *Handlers) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	if username != "" {
		conv, err := h.conversations.Restore(username)
		if err != nil {
			h.sendServiceError(w, err)
			return
		}
		h.sendJSON(w, http.StatusOK, MessagesResponse{Messages: conv.Messages})
		return
	}

	messages, err := h.conversations.Messages(username)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, MessagesResponse{Messages: messages})
}

// GetStatsHandler returns message counts and session duration
func (h *Handlers) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	stats, err := h.conversations.Stats(username)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}
	h.sendJSON(w, http.StatusOK, stats)
}

// ExportChatHandler returns the transcript as a downloadable JSON document
func (h *Handlers) ExportChatHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	data, err := h.conversations.Export(username)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}
	filename := fmt.Sprintf("supernova_chat_%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	h.sendJSON(w, http.StatusOK, data)
}

// ClearChatHandler wipes the transcript and resets all per-identity search
// state
func (h *Handlers) ClearChatHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	if err := h.conversations.Clear(username); err != nil {
		h.sendServiceError(w, err)
		return
	}
	h.search.Reset(username)
	h.sessions.Reset(username)

	h.sendJSON(w, http.StatusOK, DeleteResponse{Success: true, Message: "Chat cleared"})
}
