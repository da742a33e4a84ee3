package curriculum

import (
	"testing"

	"github.com/Aashish23092/curriculum-ats/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitExperienceEntriesOnDateAnchor(t *testing.T) {
	region := `
		Acme Tecnologia
		Janeiro 2020 - Atual
		Desenvolvedor Go
		- Construiu APIs
		Beta Sistemas
		03/2017 - 12/2019
		- Manteve sistemas legados
	`

	entries := SplitExperienceEntries(region)

	require.Len(t, entries, 2)
	assert.Equal(t, "Acme Tecnologia\nJaneiro 2020 - Atual\nDesenvolvedor Go\n- Construiu APIs", entries[0])
	assert.Equal(t, "Beta Sistemas\n03/2017 - 12/2019\n- Manteve sistemas legados", entries[1])
}

func TestSplitExperienceEntriesOnTitleAnchor(t *testing.T) {
	region := "Acme\nDesenvolvedor Go\n- APIs\nBeta Ltda\nAnalista de Dados\n- Relatórios\nGamma\nEngenheira de Software"

	entries := SplitExperienceEntries(region)

	require.Len(t, entries, 3)
	assert.Equal(t, "Acme\nDesenvolvedor Go\n- APIs", entries[0])
	assert.Equal(t, "Beta Ltda\nAnalista de Dados\n- Relatórios", entries[1])
	assert.Equal(t, "Gamma\nEngenheira de Software", entries[2])
}

func TestSplitExperienceEntriesCompanyContainingRoleWord(t *testing.T) {
	tests := []struct {
		name    string
		company string
	}{
		{name: "role word as prefix", company: "Beta Consultoria"},
		{name: "role word with corporate suffix", company: "DevOps Brasil Ltda"},
		{name: "unrelated word", company: "Arquitetura Digital"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := "Acme Tecnologia\nJaneiro 2020 - Atual\nDesenvolvedor Go\n" +
				tt.company + "\nMarço 2017 - Dezembro 2019\nAnalista de Sistemas"

			entries := ExtractExperience(region)

			require.Len(t, entries, 2)
			assert.Equal(t, "Acme Tecnologia", entries[0].Company)
			assert.Equal(t, "Desenvolvedor Go", entries[0].Title)
			assert.Equal(t, dto.DescriptionNotFound, entries[0].Description)
			assert.Equal(t, tt.company, entries[1].Company)
			assert.Equal(t, "Março 2017 - Dezembro 2019", entries[1].Period)
			assert.Equal(t, "Analista de Sistemas", entries[1].Title)
		})
	}
}

func TestSplitExperienceEntriesKeepsTitleAboveDate(t *testing.T) {
	entries := SplitExperienceEntries("Acme\nDesenvolvedor Go\nJaneiro 2020 - Atual\n- APIs")
	assert.Len(t, entries, 1)
}

// Layouts without a company line right above a date or a role are merged.
// That is a known limit of the heuristic, not a regression.
func TestSplitExperienceEntriesMergesUnanchoredLayout(t *testing.T) {
	entries := SplitExperienceEntries("Acme\nDid things\nBeta\nDid more")
	assert.Len(t, entries, 1)
}

func TestSplitExperienceEntriesEmpty(t *testing.T) {
	assert.Empty(t, SplitExperienceEntries(""))
	assert.Empty(t, SplitExperienceEntries(" \n\n\t"))
}

func TestExtractExperienceFields(t *testing.T) {
	entry, ok := ExtractExperienceFields("Acme Tecnologia\nJan 2019 até Dez 2021\nCuritiba - PR\nEngenheiro de Dados\n• Pipelines em Spark\n· Modelagem")
	require.True(t, ok)

	assert.Equal(t, "Acme Tecnologia", entry.Company)
	assert.Equal(t, "Jan 2019 até Dez 2021", entry.Period)
	assert.Equal(t, "Curitiba - PR", entry.Location)
	assert.Equal(t, "Engenheiro de Dados", entry.Title)
	assert.Equal(t, "Pipelines em Spark Modelagem", entry.Description)
}

func TestExtractExperienceFieldsIsSticky(t *testing.T) {
	entry, ok := ExtractExperienceFields("Acme\n2019 - 2020\n2021 - 2022")
	require.True(t, ok)

	assert.Equal(t, "2019 - 2020", entry.Period)
	assert.Equal(t, "2021 - 2022", entry.Description)
	assert.Equal(t, dto.FieldNotFound, entry.Title)
	assert.Equal(t, dto.FieldNotFound, entry.Location)
}

func TestExtractExperienceFieldsDefaults(t *testing.T) {
	entry, ok := ExtractExperienceFields("Acme")
	require.True(t, ok)

	expected := dto.NewExperienceEntry()
	expected.Company = "Acme"
	assert.Equal(t, expected, entry)

	_, ok = ExtractExperienceFields("  \n ")
	assert.False(t, ok)
}

func TestExtractExperienceFieldsWorkMode(t *testing.T) {
	entry, _ := ExtractExperienceFields("Acme\nHíbrido\nConsultora")

	assert.Equal(t, "Híbrido", entry.Location)
	assert.Equal(t, "Consultora", entry.Title)
}

func TestExtractExperiencePreservesOrder(t *testing.T) {
	region := "Alpha\n2015 - 2016\nBravo\n2016 - 2018\nCharlie\n2018 - presente"

	entries := ExtractExperience(region)

	require.Len(t, entries, 3)
	assert.Equal(t, "Alpha", entries[0].Company)
	assert.Equal(t, "Bravo", entries[1].Company)
	assert.Equal(t, "Charlie", entries[2].Company)
	assert.Equal(t, "2018 - presente", entries[2].Period)
}
