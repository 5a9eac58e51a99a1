package ai

import (
	"fmt"
	"sort"
	"strings"
)

// Personas supported by the assistant. Unknown persona names fall back to
// the researcher wording.
const (
	PersonaResearcher = "researcher"
	PersonaStudent    = "student"
	PersonaManager    = "manager"
)

// IsValidPersona reports whether name is one of the supported personas
func IsValidPersona(name string) bool {
	switch name {
	case PersonaResearcher, PersonaStudent, PersonaManager:
		return true
	}
	return false
}

// BuildPrompt wraps a user query in the persona's prompt wording
func BuildPrompt(query, persona string) string {
	switch persona {
	case PersonaStudent:
		return fmt.Sprintf(`You are a friendly science educator explaining space biology research to students.

Explain the following topic in simple terms with analogies and examples. Then list 2-3 relevant research papers in simple language.

Question: %s`, query)
	case PersonaManager:
		return fmt.Sprintf(`You are a space economy analyst with access to bioscience research and space economics data.

Provide an executive summary addressing the following, including:
- Key findings
- Business implications
- Investment opportunities
- Risk factors

Then list relevant research and market data.

Question: %s`, query)
	default:
		return fmt.Sprintf(`You are a space biology research assistant with access to a curated library of bioscience publications and orbital experiment data.

Provide a detailed, technical answer to the following question, citing specific research where possible. After your answer, list 3-5 relevant publications with:
- Title
- Authors
- Year
- Brief finding

Question: %s`, query)
	}
}

// WithFilterContext appends the active search filters to a message so the
// webhook can narrow its answer. Filters with empty values are skipped;
// keys are emitted in stable order.
func WithFilterContext(message string, filters map[string]string) string {
	var pairs []string
	for key, value := range filters {
		if value == "" {
			continue
		}
		pairs = append(pairs, key+": "+value)
	}
	if len(pairs) == 0 {
		return message
	}
	sort.Strings(pairs)
	return message + "\n[Filter context: " + strings.Join(pairs, ", ") + "]"
}

// StructuredSummaryPrompt asks for the machine-readable summary shape used
// by the local summarization endpoint
func StructuredSummaryPrompt(paperTitle string) string {
	return fmt.Sprintf(`Summarize the research paper titled: %q.

Respond ONLY with a JSON object of this exact shape, no other text:
{
  "success": true,
  "summary": "2-3 paragraph summary",
  "key_findings": ["finding", "finding"],
  "methodology": "one sentence",
  "significance": "one sentence"
}`, paperTitle)
}

// PlainSummaryPrompt is the free-text fallback wording used when the
// structured summary could not be produced
func PlainSummaryPrompt(paperTitle string) string {
	return fmt.Sprintf(`Provide a concise, professional summary (2-3 paragraphs) of the research paper titled: %q. Include main findings, methodology, and significance. Use academic tone.`, paperTitle)
}

// QuizPrompt asks for a five-question multiple choice quiz about a paper,
// formatted as the JSON shape the quiz parser expects
func QuizPrompt(paperTitle string) string {
	return fmt.Sprintf(`Generate a 5-question multiple choice quiz about the research paper titled %q.
For each question, provide:
1. The question text
2. Four answer options (A, B, C, D)
3. The correct answer letter
4. A brief explanation of why the answer is correct

Format as JSON with this structure:
{
  "questions": [
    {
      "question": "Question text here?",
      "options": {
        "A": "Option A text",
        "B": "Option B text",
        "C": "Option C text",
        "D": "Option D text"
      },
      "correct": "A",
      "explanation": "Explanation of correct answer"
    }
  ]
}`, paperTitle)
}
