package fold

import (
	"strings"
	"unicode"
)

// SourceLine is one 0-indexed line of a document snapshot.
type SourceLine struct {
	Number int
	Text   string
}

// Lines splits text on '\n'. A leading byte order mark is dropped, and so
// is a trailing '\r' on every line so CRLF documents scan like LF ones. The
// line count matches what an editor shows, including the empty line after a
// final newline.
func Lines(text string) []SourceLine {
	text = strings.TrimPrefix(text, "\ufeff")
	parts := strings.Split(text, "\n")
	out := make([]SourceLine, len(parts))
	for i, p := range parts {
		out[i] = SourceLine{Number: i, Text: strings.TrimSuffix(p, "\r")}
	}
	return out
}

// Indent counts the leading whitespace runes of a line. Tabs and spaces
// both count as one; there is no tab-width expansion.
func Indent(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}
