package curriculum

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Aashish23092/curriculum-ats/dto"
)

var (
	bulletGlyph    = regexp.MustCompile(`[•·]`)
	semicolonSep   = regexp.MustCompile(`;\s*`)
	skillSeparator = regexp.MustCompile(`,\s*|\s{2,}|\n`)
)

// CanonicalizeAliases rewrites known technology spellings to their display
// form in one left-to-right pass. Replaced text is never rescanned, so ".NET"
// inside a fresh "VB.NET" is left alone.
func CanonicalizeAliases(text string) string {
	return aliasPattern.ReplaceAllStringFunc(text, func(m string) string {
		if canonical, ok := aliasCanonical[strings.ToLower(m)]; ok {
			return canonical
		}
		return m
	})
}

// NormalizeSkills turns a raw skills region into a deduplicated list of at
// most dto.MaxSkills entries, in first-seen order. It never returns nil.
func NormalizeSkills(region string) []string {
	text := CanonicalizeAliases(region)
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = bulletGlyph.ReplaceAllString(text, ",")
	text = semicolonSep.ReplaceAllString(text, ", ")

	skills := make([]string, 0, dto.MaxSkills)
	seen := make(map[string]struct{})
	for _, token := range skillSeparator.Split(text, -1) {
		skill := cleanSkillToken(token)
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
		if len(skills) == dto.MaxSkills {
			break
		}
	}
	return skills
}

// cleanSkillToken returns the usable form of one token, or "" when the token
// is noise.
func cleanSkillToken(token string) string {
	token = strings.TrimSpace(token)
	token = strings.Trim(token, `"'`)
	token = strings.TrimSpace(token)
	if utf8.RuneCountInString(token) <= 1 {
		return ""
	}
	lower := strings.ToLower(token)
	if _, stop := skillStopwords[lower]; stop {
		return ""
	}
	if _, artifact := skillArtifacts[lower]; artifact {
		return ""
	}
	return token
}
