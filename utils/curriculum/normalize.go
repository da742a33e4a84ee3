package curriculum

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Document is a curriculum text prepared for the extractors.
type Document struct {
	// Text is the NFC-normalized input with LF line endings, trimmed.
	Text string
	// Lines are the trimmed non-empty lines of Text, original casing.
	Lines []string
	// Folded is Text collapsed to single spaces and lower-cased.
	Folded string
}

// Normalize prepares raw decoded text. PDF and Word decoders can emit
// decomposed accents and mixed line endings; both are unified here so the
// header and keyword patterns see one spelling.
func Normalize(text string) Document {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)

	return Document{
		Text:   text,
		Lines:  splitLines(text),
		Folded: strings.ToLower(whitespaceRun.ReplaceAllString(text, " ")),
	}
}

// splitLines returns the trimmed, non-empty lines of text.
func splitLines(text string) []string {
	rawLines := strings.Split(text, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
