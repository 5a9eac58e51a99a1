package handlers

import (
	"net/http"

	"supernova/internal/auth"
	"supernova/internal/repository/db"
)

type HistoryResponse struct {
	History  []db.HistoryEntry `json:"history"`
	SignedIn bool              `json:"signed_in"`
}

// GetHistoryHandler lists recorded searches, newest first
func (h *Handlers) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	entries, err := h.history.List(username)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, HistoryResponse{History: entries, SignedIn: username != ""})
}

// DeleteHistoryEntryHandler removes a single history entry by id
func (h *Handlers) DeleteHistoryEntryHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.history.Delete(username, id); err != nil {
		h.sendServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, DeleteResponse{Success: true, Message: "History entry deleted"})
}

// ClearHistoryHandler removes all history entries. The confirm=true query
// parameter is required as a guard against accidental wipes.
func (h *Handlers) ClearHistoryHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	if r.URL.Query().Get("confirm") != "true" {
		h.sendError(w, http.StatusBadRequest, "Pass confirm=true to clear all history", nil)
		return
	}

	if err := h.history.Clear(username); err != nil {
		h.sendServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, DeleteResponse{Success: true, Message: "History cleared"})
}
