package extract

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestExtractWithSourcesSection(t *testing.T) {
	response := "Microgravity alters DNA repair pathways.\n\nSources:\n" +
		"1. Effects of Radiation on DNA – Smith et al. (2021)\n" +
		"2. Plant Growth in Microgravity Environments (2019)\n" +
		"3. Bone Density Loss During Long Duration Flight"

	citations := Extract(response, "radiation effects", testNow)

	if len(citations) != 3 {
		t.Fatalf("Expected 3 citations, got %d", len(citations))
	}

	first := citations[0]
	if first.Title != "Effects of Radiation on DNA" {
		t.Errorf("First title: got %q, want %q", first.Title, "Effects of Radiation on DNA")
	}
	if first.Year != 2021 {
		t.Errorf("First year: got %d, want 2021", first.Year)
	}
	if first.Source != "ai" {
		t.Errorf("First source: got %q, want ai", first.Source)
	}
	if first.ID != "paper-0" {
		t.Errorf("First ID: got %q, want paper-0", first.ID)
	}

	second := citations[1]
	if second.Title != "Plant Growth in Microgravity Environments" {
		t.Errorf("Second title: got %q", second.Title)
	}
	if second.Year != 2019 {
		t.Errorf("Second year: got %d, want 2019", second.Year)
	}

	// No year on the last line, defaults to the current year; nothing
	// follows it so the snippet is the placeholder
	third := citations[2]
	if third.Year != testNow.Year() {
		t.Errorf("Third year: got %d, want %d", third.Year, testNow.Year())
	}
	if len(third.Hits) != 1 || third.Hits[0].Text != "Research finding" {
		t.Errorf("Third snippet: got %+v", third.Hits)
	}
}

func TestExtractNoSourcesSectionFallsBack(t *testing.T) {
	response := strings.Repeat("x", 300)

	citations := Extract(response, "bone loss", testNow)

	if len(citations) != 1 {
		t.Fatalf("Expected exactly 1 fallback citation, got %d", len(citations))
	}

	c := citations[0]
	if c.Source != "fallback" {
		t.Errorf("Source: got %q, want fallback", c.Source)
	}
	if c.Title != "Research on bone loss" {
		t.Errorf("Title: got %q", c.Title)
	}
	if c.Year != testNow.Year() {
		t.Errorf("Year: got %d, want %d", c.Year, testNow.Year())
	}
	want := strings.Repeat("x", 200) + "..."
	if len(c.Hits) != 1 || c.Hits[0].Text != want {
		t.Errorf("Snippet not truncated to 200 runes with ellipsis")
	}
}

func TestExtractCapsAtMaxCitations(t *testing.T) {
	var b strings.Builder
	b.WriteString("Answer text.\n\nReferences:\n")
	for i := 0; i < 8; i++ {
		b.WriteString("- A sufficiently long paper title about space biology (2020)\n")
	}

	citations := Extract(b.String(), "query", testNow)

	if len(citations) != MaxCitations {
		t.Errorf("Expected %d citations, got %d", MaxCitations, len(citations))
	}
}

func TestExtractEmptyResponse(t *testing.T) {
	citations := Extract("", "anything", testNow)

	if len(citations) != 1 {
		t.Fatalf("Expected 1 citation, got %d", len(citations))
	}
	if citations[0].Source != "fallback" {
		t.Errorf("Source: got %q, want fallback", citations[0].Source)
	}
}

func TestExtractSkipsShortTitles(t *testing.T) {
	response := "Papers:\n1. Short\n2. A proper length study of orbital plant biology (2022)\n"

	citations := Extract(response, "plants", testNow)

	if len(citations) != 1 {
		t.Fatalf("Expected 1 citation, got %d", len(citations))
	}
	if citations[0].Title != "A proper length study of orbital plant biology" {
		t.Errorf("Title: got %q", citations[0].Title)
	}
}

func TestExtractHeaderLatchIsOneWay(t *testing.T) {
	// A second header inside the section is parsed as content, not a reset
	response := "Sources:\nFirst valid entry title here (2020)\nPapers:\nSecond valid entry title here (2021)\n"

	citations := Extract(response, "q", testNow)

	if len(citations) != 2 {
		t.Fatalf("Expected 2 citations, got %d", len(citations))
	}
	if citations[0].Title != "First valid entry title here" {
		t.Errorf("First title: got %q", citations[0].Title)
	}
	if citations[1].Title != "Second valid entry title here" {
		t.Errorf("Second title: got %q", citations[1].Title)
	}
}

func TestSplitAnswerCutsAtSourcesHeader(t *testing.T) {
	response := "The answer paragraph.\n\nSources:\n1. Some paper (2020)"

	answer := SplitAnswer(response)

	if answer != "The answer paragraph." {
		t.Errorf("Answer: got %q", answer)
	}
}

func TestSplitAnswerWithoutHeader(t *testing.T) {
	response := "Just an answer with no citations."

	if got := SplitAnswer(response); got != response {
		t.Errorf("Answer: got %q, want unchanged input", got)
	}
}
