package handlers

import (
	"encoding/json"
	"net/http"

	"supernova/internal/auth"
	"supernova/internal/format"
)

type SummarizeRequest struct {
	PaperTitle string `json:"paper_title"`
}

type SummarizeResponse struct {
	PaperTitle  string `json:"paper_title"`
	Summary     string `json:"summary"`
	SummaryHTML string `json:"summary_html"`
}

// SummarizePaperHandler produces a summary for a paper title
func (h *Handlers) SummarizePaperHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	summary, err := h.summary.Summarize(username, req.PaperTitle)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, SummarizeResponse{
		PaperTitle:  req.PaperTitle,
		Summary:     summary,
		SummaryHTML: format.Text(summary),
	})
}
