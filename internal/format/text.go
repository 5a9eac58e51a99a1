// Package format holds the small text helpers shared by the API surface:
// display markup for trusted AI output, strict escaping for anything a user
// typed, and the human-readable session duration.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	boldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*]+)\*`)
)

// Text converts a raw text blob into minimal display markup: bold, italics
// and line breaks. Content is assumed to come from the assistant side.
func Text(text string) string {
	text = boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicRe.ReplaceAllString(text, "<em>$1</em>")
	return strings.ReplaceAll(text, "\n", "<br>")
}

// Sanitize strictly escapes untrusted content before it is embedded in
// markup. The ampersand goes first so pre-escaped input stays escaped. Line
// breaks survive as <br/>.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return strings.ReplaceAll(s, "\n", "<br/>")
}

// Truncate shortens s to at most length runes, appending an ellipsis when
// anything was cut
func Truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length]) + "..."
}

// Duration renders a session duration as "{m}m" under an hour and
// "{h}h {m}m" from then on
func Duration(d time.Duration) string {
	mins := int(d.Minutes())
	if mins < 0 {
		mins = 0
	}
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}
