package curriculum

import (
	"regexp"
	"strings"
)

// SectionMap holds the raw regions found in a document. A region is present
// only when its header keyword was found.
type SectionMap struct {
	Summary        string
	HasSummary     bool
	Experience     string
	HasExperience  bool
	Certifications string
	HasCerts       bool
	Skills         string
	HasSkills      bool
}

var (
	summarySection       = sectionPattern(summaryHeaders, summaryTerminators, `\s*`)
	experienceSection    = sectionPattern(experienceHeaders, experienceTerminators, `\s*`)
	certificationSection = sectionPattern(certificationHeaders, certificationTerminators, `\s*`)
	skillsSection        = sectionPattern(skillsHeaders, skillsTerminators, `[:\s-]*`)
)

// sectionPattern captures, non-greedily, everything after one of the headers
// up to the first terminator or the end of the text.
func sectionPattern(headers, terminators []string, gap string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:` + strings.Join(headers, "|") + `)` + gap +
		`([\s\S]*?)(?:` + strings.Join(terminators, "|") + `|$)`)
}

// SegmentSections slices the document into its named regions. Summary,
// experience and certifications keep their line structure; skills are read
// from the folded text.
func SegmentSections(doc Document) SectionMap {
	var sections SectionMap
	sections.Summary, sections.HasSummary = captureSection(summarySection, doc.Text)
	sections.Experience, sections.HasExperience = captureSection(experienceSection, doc.Text)
	sections.Certifications, sections.HasCerts = captureSection(certificationSection, doc.Text)
	sections.Skills, sections.HasSkills = captureSection(skillsSection, doc.Folded)
	return sections
}

func captureSection(pattern *regexp.Regexp, text string) (string, bool) {
	m := pattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}
