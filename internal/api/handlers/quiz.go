package handlers

import (
	"encoding/json"
	"net/http"

	"supernova/internal/auth"
	parser "supernova/internal/quiz"
)

type GenerateQuizRequest struct {
	PaperTitle string `json:"paper_title"`
}

type QuizResponse struct {
	PaperTitle string            `json:"paper_title"`
	Questions  []parser.Question `json:"questions"`
}

type AnswerRequest struct {
	QuestionIndex int    `json:"question_index"`
	Choice        string `json:"choice"`
}

// GenerateQuizHandler asks the assistant for a quiz about a paper
func (h *Handlers) GenerateQuizHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	var req GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	quiz, err := h.quiz.Generate(username, req.PaperTitle)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, QuizResponse{PaperTitle: req.PaperTitle, Questions: quiz.Questions})
}

// AnswerQuizHandler records the selected option for one question
func (h *Handlers) AnswerQuizHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.quiz.RecordAnswer(username, req.QuestionIndex, req.Choice); err != nil {
		h.sendServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, map[string]bool{"recorded": true})
}

// QuizResultsHandler scores the active quiz
func (h *Handlers) QuizResultsHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())

	results, err := h.quiz.Results(username)
	if err != nil {
		h.sendServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, results)
}

// ClearQuizHandler discards the active quiz and its answers
func (h *Handlers) ClearQuizHandler(w http.ResponseWriter, r *http.Request) {
	username := auth.UsernameFromContext(r.Context())
	h.quiz.Clear(username)
	h.sendJSON(w, http.StatusOK, DeleteResponse{Success: true, Message: "Quiz cleared"})
}
