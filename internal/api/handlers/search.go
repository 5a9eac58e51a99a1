package handlers

import (
	"encoding/json"
	"net/http"

	"supernova/internal/auth"
)

type SearchRequest struct {
	Query   string            `json:"query"`
	Persona string            `json:"persona,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

// SearchHandler runs one research query through the assistant
func (h *Handlers) SearchHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.search.Search(username, req.Query, req.Persona, req.Filters)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, result)
}

// LastSearchHandler returns the most recent completed search result
func (h *Handlers) LastSearchHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	result, err := h.search.Last(username)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, result)
}
