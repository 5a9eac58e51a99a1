package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"supernova/internal/extract"
)

func sampleCitations() []extract.Citation {
	return []extract.Citation{
		{
			ID:      "paper-0",
			Title:   "Effects of Radiation on DNA",
			Authors: []string{"Supernova Research"},
			Year:    2021,
			Source:  "ai",
		},
		{
			ID:      "paper-1",
			Title:   "Plants, Roots and Orbit",
			Authors: []string{"Jane Doe", "John Roe"},
			Year:    2019,
			Source:  "ai",
		},
	}
}

func TestJSONEnvelope(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	data, err := JSON(sampleCitations(), now)
	if err != nil {
		t.Fatalf("JSON returned error: %v", err)
	}

	var col Collection
	if err := json.Unmarshal(data, &col); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if col.Count != 2 {
		t.Errorf("Count: got %d, want 2", col.Count)
	}
	if len(col.Papers) != 2 || col.Papers[0].Title != "Effects of Radiation on DNA" {
		t.Errorf("Papers not round-tripped: %+v", col.Papers)
	}
}

func TestBibTeX(t *testing.T) {
	out := BibTeX(sampleCitations())

	if !strings.Contains(out, "@article{research2021,") {
		t.Errorf("Missing first cite key, got:\n%s", out)
	}
	if !strings.Contains(out, "@article{doe2019,") {
		t.Errorf("Missing second cite key, got:\n%s", out)
	}
	if !strings.Contains(out, "  author = {Jane Doe and John Roe},") {
		t.Errorf("Authors not joined with ' and ', got:\n%s", out)
	}
	if !strings.Contains(out, "  title = {Effects of Radiation on DNA},") {
		t.Errorf("Missing title field, got:\n%s", out)
	}
	if !strings.Contains(out, "  note = {paper-0}") {
		t.Errorf("Missing note field, got:\n%s", out)
	}
}

func TestRIS(t *testing.T) {
	out := RIS(sampleCitations())

	for _, want := range []string{
		"TY  - JOUR",
		"TI  - Effects of Radiation on DNA",
		"AU  - Jane Doe",
		"AU  - John Roe",
		"PY  - 2019",
		"ER  - ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RIS missing %q, got:\n%s", want, out)
		}
	}
}

func TestCSV(t *testing.T) {
	out, err := CSV(sampleCitations())
	if err != nil {
		t.Fatalf("CSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Title,Authors,Year,ID" {
		t.Errorf("Header: got %q", lines[0])
	}
	if !strings.Contains(lines[2], "Jane Doe; John Roe") {
		t.Errorf("Authors column: got %q", lines[2])
	}
}

func TestCSVQuotesCommas(t *testing.T) {
	citations := []extract.Citation{{
		ID:      "paper-0",
		Title:   "Bones, Muscles, and Microgravity",
		Authors: []string{"A B"},
		Year:    2020,
	}}

	out, err := CSV(citations)
	if err != nil {
		t.Fatalf("CSV returned error: %v", err)
	}
	if !strings.Contains(out, `"Bones, Muscles, and Microgravity"`) {
		t.Errorf("Comma-containing title not quoted, got:\n%s", out)
	}
}

func TestBibTeXFallbackKey(t *testing.T) {
	out := BibTeX([]extract.Citation{{ID: "paper-0", Title: "Untitled", Year: 2024}})

	if !strings.Contains(out, "@article{supernova2024,") {
		t.Errorf("Fallback key missing, got:\n%s", out)
	}
}
