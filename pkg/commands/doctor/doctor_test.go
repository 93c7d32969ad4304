package doctor_test

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/prompter/pkg/commands/doctor"
)

func writeConfig(t *testing.T, content string, withLibrary bool) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	if withLibrary {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "library"), 0o755))
	}
	return cfgPath
}

func TestRunHealthy(t *testing.T) {
	cfgPath := writeConfig(t, "[python.api]\ndepends_on = [\"a.md\"]\n", true)

	report := doctor.Run(context.Background(), doctor.Options{ConfigOverride: cfgPath})

	assert.False(t, report.HasErrors())
	assert.False(t, report.HasWarnings())
	require.Len(t, report.Configuration, 4)
	assert.Equal(t, "Profile grammar", report.Configuration[2].Name)
	assert.Equal(t, "1 profiles", report.Configuration[2].Detail)
	assert.Empty(t, report.Updates)
}

func TestRunMissingConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")

	report := doctor.Run(context.Background(), doctor.Options{ConfigOverride: cfgPath})

	assert.True(t, report.HasErrors())
	require.NotEmpty(t, report.Configuration)
	first := report.Configuration[0]
	assert.Equal(t, doctor.StatusError, first.Status)
	assert.Contains(t, first.Hint, "prompter init")
}

func TestRunInvalidTOML(t *testing.T) {
	cfgPath := writeConfig(t, "[broken\n", true)

	report := doctor.Run(context.Background(), doctor.Options{ConfigOverride: cfgPath})

	assert.True(t, report.HasErrors())
}

func TestRunGrammarError(t *testing.T) {
	// Valid TOML that the profile grammar rejects.
	cfgPath := writeConfig(t, "[p]\ndepends_on = \"a.md\"\n", true)

	report := doctor.Run(context.Background(), doctor.Options{ConfigOverride: cfgPath})

	assert.True(t, report.HasErrors())
	var grammar *doctor.Check
	for i := range report.Configuration {
		if report.Configuration[i].Name == "Profile grammar" {
			grammar = &report.Configuration[i]
		}
	}
	require.NotNil(t, grammar)
	assert.Equal(t, doctor.StatusError, grammar.Status)
	assert.Contains(t, grammar.Detail, "depends_on must be an array")
}

func TestRunMissingLibrary(t *testing.T) {
	cfgPath := writeConfig(t, "[p]\ndepends_on = [\"a.md\"]\n", false)

	report := doctor.Run(context.Background(), doctor.Options{ConfigOverride: cfgPath})

	assert.True(t, report.HasErrors())
	last := report.Configuration[len(report.Configuration)-1]
	assert.Equal(t, "Library directory", last.Name)
	assert.Equal(t, doctor.StatusError, last.Status)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func releaseClient(tag string) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		body := `{"tag_name": "` + tag + `"}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})}
}

func TestRunUpdateAvailable(t *testing.T) {
	cfgPath := writeConfig(t, "[p]\ndepends_on = [\"a.md\"]\n", true)

	report := doctor.Run(context.Background(), doctor.Options{
		ConfigOverride: cfgPath,
		CheckUpdates:   true,
		HTTPClient:     releaseClient("prompter-v9.9.9"),
		CurrentVersion: "1.0.0",
	})

	assert.False(t, report.HasErrors())
	assert.True(t, report.HasWarnings())
	require.Len(t, report.Updates, 1)
	assert.Contains(t, report.Updates[0].Detail, "update available: v9.9.9")
	assert.Contains(t, report.Updates[0].Hint, "prompter update")
}

func TestRunUpToDate(t *testing.T) {
	cfgPath := writeConfig(t, "[p]\ndepends_on = [\"a.md\"]\n", true)

	report := doctor.Run(context.Background(), doctor.Options{
		ConfigOverride: cfgPath,
		CheckUpdates:   true,
		HTTPClient:     releaseClient("prompter-v1.0.0"),
		CurrentVersion: "1.0.0",
	})

	assert.False(t, report.HasWarnings())
	require.Len(t, report.Updates, 1)
	assert.Equal(t, doctor.StatusOK, report.Updates[0].Status)
}
