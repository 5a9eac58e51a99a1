package summary

import (
	"encoding/json"
	"fmt"
	"strings"

	"supernova/internal/ai"
	"supernova/internal/format"
	"supernova/internal/logger"
	"supernova/pkg/validation"
)

// SummaryService produces paper summaries. It first asks for a structured
// JSON summary and renders it; when that fails it retries with a plain-text
// prompt, and as a last resort returns a fixed apology so the caller always
// gets displayable text.
type SummaryService struct {
	provider  ai.Provider
	sessions  *ai.SessionRegistry
	validator *validation.SearchRequestValidator
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(provider ai.Provider, sessions *ai.SessionRegistry) *SummaryService {
	return &SummaryService{
		provider:  provider,
		sessions:  sessions,
		validator: validation.NewSearchRequestValidator(),
	}
}

// structuredSummary is the JSON shape requested from the assistant
type structuredSummary struct {
	Success      bool     `json:"success"`
	Summary      string   `json:"summary"`
	KeyFindings  []string `json:"key_findings"`
	Methodology  string   `json:"methodology"`
	Significance string   `json:"significance"`
}

// Summarize returns displayable summary text for a paper title
func (s *SummaryService) Summarize(username, paperTitle string) (string, error) {
	if err := s.validator.ValidatePaperTitle(paperTitle); err != nil {
		return "", err
	}
	paperTitle = strings.TrimSpace(paperTitle)

	session := s.sessions.SessionFor(username)

	response, err := s.provider.Send(ai.StructuredSummaryPrompt(paperTitle), session, ai.PersonaResearcher)
	if err == nil {
		if text, ok := renderStructured(response); ok {
			logger.Log.WithField("paper_title", paperTitle).Info("Structured summary generated")
			return text, nil
		}
		logger.Log.WithField("paper_title", paperTitle).Warn("Structured summary unusable, retrying with plain prompt")
	} else {
		logger.Log.WithError(err).Warn("Structured summary call failed, retrying with plain prompt")
	}

	response, err = s.provider.Send(ai.PlainSummaryPrompt(paperTitle), session, ai.PersonaResearcher)
	if err == nil && strings.TrimSpace(response) != "" {
		return response, nil
	}
	if err != nil {
		logger.Log.WithError(err).Warn("Plain summary call failed")
	}

	return fmt.Sprintf("Unable to generate a summary for %q. Please try again later.", paperTitle), nil
}

// renderStructured decodes the structured reply and formats it for display
func renderStructured(response string) (string, bool) {
	span, ok := format.FirstJSONObject(response)
	if !ok {
		return "", false
	}

	var parsed structuredSummary
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		return "", false
	}
	if !parsed.Success || strings.TrimSpace(parsed.Summary) == "" {
		return "", false
	}

	var b strings.Builder
	b.WriteString(parsed.Summary)

	if len(parsed.KeyFindings) > 0 {
		b.WriteString("\n\n**Key Findings:**\n")
		for _, finding := range parsed.KeyFindings {
			// Findings are lifted verbatim from the reply, escape them
			// before they reach display markup
			b.WriteString("• " + format.Sanitize(finding) + "\n")
		}
	}
	if parsed.Methodology != "" {
		b.WriteString("\n**Methodology:** " + parsed.Methodology)
	}
	if parsed.Significance != "" {
		b.WriteString("\n\n**Significance:** " + parsed.Significance)
	}

	return b.String(), true
}
