package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/curriculum-ats/dto"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		parseOpts.mimeType = ""
		parseOpts.noOCR = false
		parseOpts.compact = false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("JOÃO PEREIRA\njoao@x.com\n\nHabilidades: Go, Docker\n"), 0o600))

	out, err := runCommand(t, "", "parse", "--no-ocr", path)
	require.NoError(t, err)

	var profile dto.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.Equal(t, "JOÃO PEREIRA", profile.Name)
	assert.Equal(t, "joao@x.com", profile.Email)
	assert.Equal(t, []string{"go", "docker"}, profile.Skills)
	assert.Equal(t, dto.SummaryNotFound, profile.ProfessionalSummary)
}

func TestParseStdinCompact(t *testing.T) {
	out, err := runCommand(t, "\n", "parse", "--compact", "-")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "\n"))
	var profile dto.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.Equal(t, dto.NameNotFound, profile.Name)
	assert.True(t, profile.ProfessionalExperience.Missing)
}

func TestParseRejectsUnsupportedMime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.bin")
	require.NoError(t, os.WriteFile(path, []byte("whatever"), 0o600))

	_, err := runCommand(t, "", "parse", "--mime", "image/png", path)
	assert.ErrorContains(t, err, "unsupported file format")
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "curriculum version: unknown\n", out)
}
