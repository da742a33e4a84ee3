// Package curriculum extracts a structured profile from the plain text of a
// résumé using layered pattern heuristics. Every function in this package is
// pure; the dictionaries it reads are built once at init.
package curriculum

import (
	"strings"

	"github.com/Aashish23092/curriculum-ats/dto"
)

// ParseCurriculum builds a profile from decoded résumé text. It never fails:
// anything it cannot find keeps its sentinel value.
func ParseCurriculum(text string) dto.Profile {
	doc := Normalize(text)
	profile := dto.NewProfile()

	profile.Name = ExtractName(doc)
	profile.Email = ExtractEmail(doc.Text)
	profile.Phone = ExtractPhone(doc.Text)

	sections := SegmentSections(doc)
	if summary := strings.TrimSpace(sections.Summary); sections.HasSummary && summary != "" {
		profile.ProfessionalSummary = summary
	}
	if certs := strings.TrimSpace(sections.Certifications); sections.HasCerts && certs != "" {
		profile.CertificationsAndCourses = certs
	}
	if sections.HasExperience && strings.TrimSpace(sections.Experience) != "" {
		profile.ProfessionalExperience = dto.ExperienceOf(ExtractExperience(sections.Experience)...)
	}
	if sections.HasSkills {
		profile.Skills = NormalizeSkills(sections.Skills)
	}

	return profile
}

// ExtractExperience splits an experience region and classifies each entry,
// keeping document order.
func ExtractExperience(region string) []dto.ExperienceEntry {
	chunks := SplitExperienceEntries(region)
	entries := make([]dto.ExperienceEntry, 0, len(chunks))
	for _, chunk := range chunks {
		if entry, ok := ExtractExperienceFields(chunk); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
