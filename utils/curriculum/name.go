package curriculum

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Aashish23092/curriculum-ats/dto"
)

var (
	// Capitalized first word followed by 1-5 more words.
	properCaseName = regexp.MustCompile(`^\p{Lu}[\p{Ll}.'-]*(?:\s+[\p{L}.'-]*){1,5}$`)
	// First run of 2-4 capitalized words anywhere in the text.
	capitalizedRun = regexp.MustCompile(`(\p{Lu}\p{Ll}+(?: \p{Lu}\p{Ll}+){1,3})(?:\s|$)`)
	anyDigit       = regexp.MustCompile(`\d`)
)

// nameRule inspects the document and reports a name candidate.
type nameRule func(doc Document) (string, bool)

// nameRules run in priority order; the first accepted candidate wins.
// The riskiest heuristic, a free scan of the whole text, runs last.
var nameRules = []nameRule{
	uppercaseHeaderName,
	properCaseFirstLineName,
	properCaseSecondLineName,
	capitalizedRunName,
}

// ExtractName guesses the candidate's name from the top of the document.
func ExtractName(doc Document) string {
	for _, rule := range nameRules {
		if name, ok := rule(doc); ok && name != dto.NameNotFound {
			return name
		}
	}
	return dto.NameNotFound
}

// uppercaseHeaderName accepts a shouted first line such as "MARIA DA SILVA".
func uppercaseHeaderName(doc Document) (string, bool) {
	if len(doc.Lines) == 0 {
		return "", false
	}
	candidate := cleanNameLine(doc.Lines[0])
	if candidate != strings.ToUpper(candidate) || utf8.RuneCountInString(candidate) <= 3 {
		return "", false
	}
	if countLongWords(candidate) < 2 || isSectionTitle(candidate) || !looksPersonal(candidate) {
		return "", false
	}
	return candidate, true
}

// properCaseFirstLineName accepts "Maria da Silva" on the first line.
func properCaseFirstLineName(doc Document) (string, bool) {
	if len(doc.Lines) == 0 {
		return "", false
	}
	candidate := cleanNameLine(doc.Lines[0])
	if !isProperCaseName(candidate) {
		return "", false
	}
	return candidate, true
}

// properCaseSecondLineName covers résumés that open with a title or a logo
// line and put a short name right below it.
func properCaseSecondLineName(doc Document) (string, bool) {
	if len(doc.Lines) < 2 {
		return "", false
	}
	candidate := cleanNameLine(doc.Lines[1])
	if utf8.RuneCountInString(candidate) >= 30 || !isProperCaseName(candidate) {
		return "", false
	}
	return candidate, true
}

func capitalizedRunName(doc Document) (string, bool) {
	m := capitalizedRun.FindStringSubmatch(doc.Text)
	if len(m) < 2 {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if utf8.RuneCountInString(name) <= 5 {
		return "", false
	}
	return name, true
}

// cleanNameLine strips leading and trailing characters that are neither
// letters nor spaces ("• Maria Silva |" -> "Maria Silva").
func cleanNameLine(line string) string {
	line = strings.TrimFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsSpace(r)
	})
	return strings.TrimSpace(line)
}

func isProperCaseName(s string) bool {
	return properCaseName.MatchString(s) && looksPersonal(s) && countLongWords(s) >= 2
}

// looksPersonal rejects lines carrying an email address or numbers.
func looksPersonal(s string) bool {
	return !strings.Contains(s, "@") && !anyDigit.MatchString(s)
}

// countLongWords counts space-separated words longer than one rune.
func countLongWords(s string) int {
	n := 0
	for _, w := range strings.Split(s, " ") {
		if utf8.RuneCountInString(w) > 1 {
			n++
		}
	}
	return n
}

func isSectionTitle(s string) bool {
	lower := strings.ToLower(s)
	for _, title := range sectionTitles {
		if strings.Contains(lower, title) {
			return true
		}
	}
	return false
}
