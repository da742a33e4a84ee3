package curriculum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentSectionsEnglishHeaders(t *testing.T) {
	sections := SegmentSections(Normalize("Professional Summary:\nBuilds things.\nWork Experience:\nAcme\nSkills: Go"))

	assert.True(t, sections.HasSummary)
	assert.Equal(t, "Builds things.", strings.TrimSpace(sections.Summary))
	assert.True(t, sections.HasExperience)
	assert.Equal(t, "Acme", strings.TrimSpace(sections.Experience))
	assert.False(t, sections.HasCerts)
	assert.True(t, sections.HasSkills)
	assert.Equal(t, "go", sections.Skills)
}

func TestSegmentSectionsSkillsStopAtNextHeader(t *testing.T) {
	sections := SegmentSections(Normalize("Habilidades: Go, Rust Experiência profissional:\nAcme"))

	assert.Equal(t, "go, rust", strings.TrimSpace(sections.Skills))
	assert.False(t, sections.HasSummary)
	assert.Equal(t, "Acme", sections.Experience)
}

func TestSegmentSectionsSkillsHeaderWithoutColon(t *testing.T) {
	sections := SegmentSections(Normalize("HABILIDADES TÉCNICAS - Go, Rust\nIdiomas: Inglês"))

	assert.True(t, sections.HasSkills)
	assert.Equal(t, "go, rust", strings.TrimSpace(sections.Skills))
}

func TestSegmentSectionsNoHeaders(t *testing.T) {
	sections := SegmentSections(Normalize("nothing here"))
	assert.Equal(t, SectionMap{}, sections)
}
