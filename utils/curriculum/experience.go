package curriculum

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Aashish23092/curriculum-ats/dto"
)

var (
	// Whole words only: "Consultoria" is a company, "Consultor" a role.
	roleKeyword     = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:` + strings.Join(quoteAll(roleKeywords), "|") + `)(?:$|[^\p{L}])`)
	corporateSuffix = regexp.MustCompile(`(?:^|[^\p{L}])(?:` + strings.Join(quoteAll(corporateSuffixes), "|") + `)(?:$|[^\p{L}])`)

	// "Acme Tecnologia" or "Acme, Ltda": capital initial, letters and light
	// punctuation only.
	companyHeader = regexp.MustCompile(`^\p{Lu}[\p{L}\s,.'&-]*?(?:,\s*(?:` +
		strings.Join(corporateSuffixes, "|") + `))?$`)
	// The line under a company header opens with a date ("Janeiro 2020",
	// "03/2019", "2018 -") or says the job is current.
	entryDateLine = regexp.MustCompile(`(?i)^(?:[\p{L}\d]+\.?\s+(?:de\s+)?\d{4}|\d{1,2}/\d{4}|\d{4}\s*[-–]|presente|atual)`)
	// ... or names the role within its leading words.
	entryTitleLine = regexp.MustCompile(`(?i)^[\p{L}\s,&'-]*?(?:desenvolvedor|desenvolvedora|arquiteto|arquiteta|analista|sócio|sócia|consultor|consultora|engenheiro|engenheira|devops|developer|engineer)`)

	monthAlternation = `(?:(?:` + strings.Join(monthNames, "|") + `)\.?)`
	// "Jan 2019 - Dez 2021", "março de 2020 até atual", "2018 to 2020".
	periodRange = regexp.MustCompile(`(?i)(` + monthAlternation + `?\s*(?:de\s+)?\d{4})\s*(?:-|–|até|a|to)?\s*(` +
		monthAlternation + `?\s*(?:de\s+)?\d{4}|atual|presente|present|current)`)
	// A lone date is only a period when it is the whole line.
	periodSingle = regexp.MustCompile(`(?i)^` + monthAlternation + `?\s*(?:de\s+)?(?:\d{1,2}/)?\d{4}$`)

	cityState    = regexp.MustCompile(`^\p{Lu}[\p{L}.'\s-]*(?:,\s*\p{Lu}[\p{L}.'\s-]*)+$`)
	cityDashUF   = regexp.MustCompile(`^\p{Lu}[\p{L}.'\s-]*\s[-/]\s[A-Z]{2}$`)
	stateCountry = regexp.MustCompile(`\b[A-Z]{2,}\s*,\s*[A-Z][a-z]+`)
	workMode     = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:` + strings.Join(quoteAll(workModes), "|") + `)(?:$|[^\p{L}])`)

	bulletPrefix = regexp.MustCompile(`(?m)^[-\s•·]+`)
)

func quoteAll(words []string) []string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return quoted
}

// SplitExperienceEntries breaks the experience region into one chunk per
// job. An entry starts at a company-like line that is immediately followed
// by a date line or a title line. Layouts that do not follow this shape come
// back merged into fewer entries.
func SplitExperienceEntries(region string) []string {
	lines := splitLines(region)
	if len(lines) == 0 {
		return nil
	}

	var entries []string
	start := 0
	for i := 1; i < len(lines)-1; i++ {
		if isEntryBoundary(lines[i], lines[i+1]) {
			entries = append(entries, strings.Join(lines[start:i], "\n"))
			start = i
		}
	}
	entries = append(entries, strings.Join(lines[start:], "\n"))
	return entries
}

// isEntryBoundary reports whether line opens a new job. A line naming a role
// is a title, unless a corporate suffix marks it as a company
// ("DevOps Brasil Ltda").
func isEntryBoundary(line, next string) bool {
	if !companyHeader.MatchString(line) {
		return false
	}
	if roleKeyword.MatchString(line) && !corporateSuffix.MatchString(line) {
		return false
	}
	return entryDateLine.MatchString(next) || (startsUpper(next) && entryTitleLine.MatchString(next))
}

func startsUpper(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(first)
}

// fieldRule claims a line for one field of an entry. Rules never overwrite a
// field that is already set.
type fieldRule struct {
	matches func(line string) bool
	field   func(e *dto.ExperienceEntry) *string
}

// experienceRules run in priority order: period, location, title.
var experienceRules = []fieldRule{
	{isPeriodLine, func(e *dto.ExperienceEntry) *string { return &e.Period }},
	{isLocationLine, func(e *dto.ExperienceEntry) *string { return &e.Location }},
	{isTitleLine, func(e *dto.ExperienceEntry) *string { return &e.Title }},
}

// ExtractExperienceFields classifies the lines of one entry. The first line
// is the company; lines no rule claims form the description. It reports
// false for an entry without any text.
func ExtractExperienceFields(entry string) (dto.ExperienceEntry, bool) {
	lines := splitLines(entry)
	if len(lines) == 0 {
		return dto.ExperienceEntry{}, false
	}

	exp := dto.NewExperienceEntry()
	exp.Company = lines[0]

	var description []string
	for _, line := range lines[1:] {
		if !classifyLine(&exp, line) {
			description = append(description, line)
		}
	}

	exp.Description = flattenDescription(description)
	return exp, true
}

func classifyLine(exp *dto.ExperienceEntry, line string) bool {
	for _, rule := range experienceRules {
		target := rule.field(exp)
		if *target != dto.FieldNotFound {
			continue
		}
		if rule.matches(line) {
			*target = line
			return true
		}
	}
	return false
}

func isPeriodLine(line string) bool {
	return periodRange.MatchString(line) || periodSingle.MatchString(line)
}

func isLocationLine(line string) bool {
	if workMode.MatchString(line) {
		return true
	}
	if roleKeyword.MatchString(line) {
		return false
	}
	return cityState.MatchString(line) || cityDashUF.MatchString(line) || stateCountry.MatchString(line)
}

func isTitleLine(line string) bool {
	if roleKeyword.MatchString(line) {
		return true
	}
	return strings.Contains(line, " ") && startsUpper(line) && looksPersonal(line)
}

// flattenDescription joins the leftover lines into one paragraph without
// bullet glyphs.
func flattenDescription(lines []string) string {
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	text = bulletPrefix.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if text == "" {
		return dto.DescriptionNotFound
	}
	return text
}
