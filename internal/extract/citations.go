// Package extract turns free-text AI answers into bounded lists of
// citation-like records. The input is whatever the webhook happened to
// return, so everything here is best-effort: the extractor is total and
// falls back to a single synthetic record rather than failing.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxCitations bounds how many records a single response can produce
const MaxCitations = 5

// fallbackSnippetLength is how much of the raw response the synthetic
// record quotes when no sources section was found
const fallbackSnippetLength = 200

// Citation is an extracted or synthesized bibliographic-style entry
// attached to an AI answer
type Citation struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Year    int      `json:"year"`
	Hits    []Hit    `json:"hits"`
	Source  string   `json:"source"` // "ai" or "fallback"
}

// Hit is a supporting snippet for a citation
type Hit struct {
	Text string `json:"text"`
}

var (
	headerRe    = regexp.MustCompile(`(?i)^(sources?|references?|papers?|publications?):?$`)
	yearRe      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	enumRe      = regexp.MustCompile(`^\d+[.)]\s*`)
	bulletRe    = regexp.MustCompile(`^[-•]\s*`)
	titleCutRe  = regexp.MustCompile(`[–—]|\s+\(\d{4}\)`)
	answerSepRe = regexp.MustCompile(`(?i)\n\s*(?:Sources?|References?|Papers?):\s*\n`)
)

// SplitAnswer returns the answer portion of a response, cut off before the
// first sources/references section header
func SplitAnswer(responseText string) string {
	parts := answerSepRe.Split(responseText, 2)
	if len(parts) > 0 {
		if answer := strings.TrimSpace(parts[0]); answer != "" {
			return answer
		}
	}
	return responseText
}

// Extract scans a response for a sources section and parses up to
// MaxCitations citation records from it. It never fails: when nothing
// usable is found it returns exactly one synthetic fallback record built
// from the original query. The now argument supplies the default
// publication year for lines without one.
func Extract(responseText, originalQuery string, now time.Time) []Citation {
	if responseText == "" {
		return []Citation{fallbackCitation(responseText, originalQuery, now)}
	}

	lines := strings.Split(responseText, "\n")
	var papers []Citation
	inSourcesSection := false

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		// The flag is a one-way latch: a second header inside the
		// section is treated as ordinary content.
		if !inSourcesSection && headerRe.MatchString(line) {
			inSourcesSection = true
			continue
		}

		if !inSourcesSection || line == "" {
			continue
		}

		year := now.Year()
		if match := yearRe.FindString(line); match != "" {
			year = atoiYear(match)
		}

		title := enumRe.ReplaceAllString(line, "")
		title = bulletRe.ReplaceAllString(title, "")
		if cut := titleCutRe.FindStringIndex(title); cut != nil {
			title = title[:cut[0]]
		}
		title = strings.TrimSpace(title)

		if n := len([]rune(title)); n > 10 && n < 200 {
			snippet := "Research finding"
			if i+1 < len(lines) && lines[i+1] != "" {
				snippet = lines[i+1]
			}
			papers = append(papers, Citation{
				ID:      citationID(len(papers)),
				Title:   title,
				Authors: []string{"Supernova Research"},
				Year:    year,
				Hits:    []Hit{{Text: snippet}},
				Source:  "ai",
			})
		}

		if len(papers) >= MaxCitations {
			break
		}
	}

	if len(papers) == 0 {
		return []Citation{fallbackCitation(responseText, originalQuery, now)}
	}
	return papers
}

func fallbackCitation(responseText, originalQuery string, now time.Time) Citation {
	snippet := responseText
	if r := []rune(snippet); len(r) > fallbackSnippetLength {
		snippet = string(r[:fallbackSnippetLength])
	}
	return Citation{
		ID:      citationID(0),
		Title:   "Research on " + originalQuery,
		Authors: []string{"Supernova Bioscience"},
		Year:    now.Year(),
		Hits:    []Hit{{Text: snippet + "..."}},
		Source:  "fallback",
	}
}

func citationID(index int) string {
	return "paper-" + strconv.Itoa(index)
}

func atoiYear(s string) int {
	year := 0
	for _, c := range s {
		year = year*10 + int(c-'0')
	}
	return year
}
