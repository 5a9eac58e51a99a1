// Package export renders citation lists in the interchange formats offered
// for download: JSON, BibTeX, RIS and CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"supernova/internal/extract"
)

// Collection is the JSON export envelope
type Collection struct {
	Exported time.Time          `json:"exported"`
	Count    int                `json:"count"`
	Papers   []extract.Citation `json:"papers"`
}

// JSON renders citations as an indented JSON document
func JSON(citations []extract.Citation, now time.Time) ([]byte, error) {
	return json.MarshalIndent(Collection{
		Exported: now,
		Count:    len(citations),
		Papers:   citations,
	}, "", "  ")
}

// BibTeX renders citations as @article entries. The citation key is the
// last name of the first author plus the year.
func BibTeX(citations []extract.Citation) string {
	var b strings.Builder
	for _, c := range citations {
		b.WriteString(fmt.Sprintf("@article{%s,\n", citeKey(c)))
		b.WriteString(fmt.Sprintf("  title = {%s},\n", c.Title))
		b.WriteString(fmt.Sprintf("  author = {%s},\n", strings.Join(c.Authors, " and ")))
		b.WriteString(fmt.Sprintf("  year = {%d},\n", c.Year))
		b.WriteString(fmt.Sprintf("  note = {%s}\n", c.ID))
		b.WriteString("}\n\n")
	}
	return b.String()
}

// RIS renders citations in RIS reference manager format
func RIS(citations []extract.Citation) string {
	var b strings.Builder
	for _, c := range citations {
		b.WriteString("TY  - JOUR\n")
		b.WriteString("TI  - " + c.Title + "\n")
		for _, author := range c.Authors {
			b.WriteString("AU  - " + author + "\n")
		}
		b.WriteString("PY  - " + strconv.Itoa(c.Year) + "\n")
		b.WriteString("ER  - \n\n")
	}
	return b.String()
}

// CSV renders citations as a spreadsheet with a header row. Authors are
// joined with "; " in a single column.
func CSV(citations []extract.Citation) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"Title", "Authors", "Year", "ID"}); err != nil {
		return "", fmt.Errorf("error writing csv header: %w", err)
	}
	for _, c := range citations {
		record := []string{c.Title, strings.Join(c.Authors, "; "), strconv.Itoa(c.Year), c.ID}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("error writing csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error flushing csv: %w", err)
	}
	return b.String(), nil
}

// citeKey derives a BibTeX key like "research2024" from the first author
// and year
func citeKey(c extract.Citation) string {
	name := "supernova"
	if len(c.Authors) > 0 {
		words := strings.Fields(c.Authors[0])
		if len(words) > 0 {
			name = strings.ToLower(words[len(words)-1])
		}
	}
	return name + strconv.Itoa(c.Year)
}
