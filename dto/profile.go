package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Sentinel values used when a profile field could not be extracted.
const (
	NameNotFound           = "Name Not Found"
	SummaryNotFound        = "Resumo Profissional Não Encontrado"
	ExperienceNotFound     = "Experiência Profissional Não Encontrada"
	CertificationsNotFound = "Certificações e Cursos Não Encontrados"
	FieldNotFound          = "Não Encontrado"
	DescriptionNotFound    = "Nenhuma descrição detalhada encontrada."
)

// MaxSkills caps the number of skills kept on a profile.
const MaxSkills = 40

// ExperienceEntry represents one job in the work history
type ExperienceEntry struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Period      string `json:"period"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// NewExperienceEntry returns an entry with every field set to its sentinel.
func NewExperienceEntry() ExperienceEntry {
	return ExperienceEntry{
		Company:     FieldNotFound,
		Title:       FieldNotFound,
		Period:      FieldNotFound,
		Location:    FieldNotFound,
		Description: DescriptionNotFound,
	}
}

// ExperienceSection holds the work history. When no experience section was
// found in the document it serializes as the ExperienceNotFound string,
// otherwise as an array of entries (possibly empty).
type ExperienceSection struct {
	Entries []ExperienceEntry
	Missing bool
}

// MissingExperience is the section value for documents without work history.
func MissingExperience() ExperienceSection {
	return ExperienceSection{Missing: true}
}

// ExperienceOf wraps entries into a present section.
func ExperienceOf(entries ...ExperienceEntry) ExperienceSection {
	if entries == nil {
		entries = []ExperienceEntry{}
	}
	return ExperienceSection{Entries: entries}
}

func (s ExperienceSection) MarshalJSON() ([]byte, error) {
	if s.Missing {
		return json.Marshal(ExperienceNotFound)
	}
	entries := s.Entries
	if entries == nil {
		entries = []ExperienceEntry{}
	}
	return json.Marshal(entries)
}

func (s *ExperienceSection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = MissingExperience()
		return nil
	}
	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		if text != ExperienceNotFound {
			return fmt.Errorf("professionalExperience: unexpected string %q", text)
		}
		*s = MissingExperience()
		return nil
	}
	var entries []ExperienceEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("professionalExperience: %w", err)
	}
	*s = ExperienceOf(entries...)
	return nil
}

// Profile is the structured record extracted from a curriculum.
// Every field is always populated; missing data carries a sentinel value.
// Email and Phone are empty strings when no candidate was found.
type Profile struct {
	Name                     string            `json:"name"`
	Email                    string            `json:"email"`
	Phone                    string            `json:"phone"`
	ProfessionalSummary      string            `json:"professionalSummary"`
	ProfessionalExperience   ExperienceSection `json:"professionalExperience"`
	Skills                   []string          `json:"skills"`
	CertificationsAndCourses string            `json:"certificationsAndCourses"`
}

// NewProfile returns a profile with every field defaulted.
func NewProfile() Profile {
	return Profile{
		Name:                     NameNotFound,
		ProfessionalSummary:      SummaryNotFound,
		ProfessionalExperience:   MissingExperience(),
		Skills:                   []string{},
		CertificationsAndCourses: CertificationsNotFound,
	}
}
