package handlers

import (
	"fmt"
	"net/http"
	"time"

	"supernova/internal/auth"
	"supernova/internal/export"
)

// ExportSourcesHandler downloads the sources of the most recent search in
// the requested format: json (default), bibtex, ris or csv
func (h *Handlers) ExportSourcesHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	result, err := h.search.Last(username)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}
	if len(result.Sources) == 0 {
		h.sendError(w, http.StatusNotFound, "No sources to export", nil)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	date := time.Now().Format("2006-01-02")

	switch format {
	case "json":
		data, err := export.JSON(result.Sources, time.Now())
		if err != nil {
			h.sendError(w, http.StatusInternalServerError, "Error rendering export", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=supernova_sources_%s.json", date))
		w.Write(data)
	case "bibtex":
		w.Header().Set("Content-Type", "application/x-bibtex")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=supernova_sources_%s.bib", date))
		w.Write([]byte(export.BibTeX(result.Sources)))
	case "ris":
		w.Header().Set("Content-Type", "application/x-research-info-systems")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=supernova_sources_%s.ris", date))
		w.Write([]byte(export.RIS(result.Sources)))
	case "csv":
		data, err := export.CSV(result.Sources)
		if err != nil {
			h.sendError(w, http.StatusInternalServerError, "Error rendering export", err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=supernova_sources_%s.csv", date))
		w.Write([]byte(data))
	default:
		h.sendError(w, http.StatusBadRequest, "Unknown export format, use json, bibtex, ris or csv", nil)
	}
}
