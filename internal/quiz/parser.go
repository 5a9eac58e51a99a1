// Package quiz parses AI replies into a fixed-shape multiple choice quiz.
// The preferred path is a JSON object embedded somewhere in the reply; when
// that is absent or undecodable the parser falls back to reading a loosely
// structured text outline.
package quiz

import (
	"encoding/json"
	"regexp"
	"strings"

	"supernova/internal/format"
)

// Question is a single four-way multiple choice question
type Question struct {
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Correct     string            `json:"correct"`
	Explanation string            `json:"explanation"`
}

// Quiz is the full parsed quiz
type Quiz struct {
	Questions []Question `json:"questions"`
}

var (
	questionStartRe = regexp.MustCompile(`^\d+\.`)
	questionNumRe   = regexp.MustCompile(`^\d+\.\s*`)
	optionRe        = regexp.MustCompile(`^[A-D][.)]`)
	letterRe        = regexp.MustCompile(`[A-D]`)
)

// Parse extracts a Quiz from a free-text response. A decodable JSON object
// wins; otherwise the text outline fallback runs, which may legitimately
// produce zero questions. Callers treat an empty question list as a failed
// generation.
func Parse(response string) *Quiz {
	if span, ok := format.FirstJSONObject(response); ok {
		var quiz Quiz
		if err := json.Unmarshal([]byte(span), &quiz); err == nil {
			return &quiz
		}
		// Undecodable JSON falls through to the outline parser instead
		// of aborting the whole parse.
	}
	return parseOutline(response)
}

func parseOutline(response string) *Quiz {
	var questions []Question
	var current *Question

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)

		switch {
		case questionStartRe.MatchString(trimmed) || strings.Contains(lower, "question"):
			if current != nil {
				questions = append(questions, *current)
			}
			current = &Question{
				Question:    questionNumRe.ReplaceAllString(trimmed, ""),
				Options:     map[string]string{},
				Correct:     "A",
				Explanation: "No explanation provided",
			}
		case optionRe.MatchString(trimmed):
			if current != nil {
				current.Options[trimmed[:1]] = strings.TrimSpace(trimmed[2:])
			}
		case strings.Contains(lower, "correct") || strings.Contains(lower, "answer"):
			if current != nil {
				if letter := letterRe.FindString(trimmed); letter != "" {
					current.Correct = letter
				}
			}
		}
	}

	if current != nil {
		questions = append(questions, *current)
	}
	return &Quiz{Questions: questions}
}
