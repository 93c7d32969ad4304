package preview_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/prompter/pkg/commands/preview"
	"github.com/arthur-debert/prompter/pkg/errors"
)

func setupLibrary(t *testing.T, cfgContent string, snippets map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0o644))
	for name, body := range snippets {
		path := filepath.Join(dir, "library", filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return cfgPath
}

func TestRenderPlain(t *testing.T) {
	cfgPath := setupLibrary(t,
		"[demo]\ndepends_on = [\"intro.md\", \"rules/style.md\"]\n",
		map[string]string{
			"intro.md":       "Intro text.\n",
			"rules/style.md": "Style rules.",
		})

	var out bytes.Buffer
	err := preview.Render(preview.Options{
		Profile:        "demo",
		ConfigOverride: cfgPath,
		Style:          "plain",
	}, &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "# Profile: demo")
	assert.Contains(t, got, "## intro.md")
	assert.Contains(t, got, "Intro text.")
	assert.Contains(t, got, "## rules/style.md")
	assert.Contains(t, got, "Style rules.")
}

func TestRenderNottyStyle(t *testing.T) {
	cfgPath := setupLibrary(t,
		"[demo]\ndepends_on = [\"intro.md\"]\n",
		map[string]string{"intro.md": "Hello.\n"})

	var out bytes.Buffer
	err := preview.Render(preview.Options{
		Profile:        "demo",
		ConfigOverride: cfgPath,
		Style:          "notty",
		Width:          60,
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Hello.")
}

func TestRenderUnknownProfile(t *testing.T) {
	cfgPath := setupLibrary(t, "[demo]\ndepends_on = [\"intro.md\"]\n",
		map[string]string{"intro.md": "x\n"})

	var out bytes.Buffer
	err := preview.Render(preview.Options{
		Profile:        "nope",
		ConfigOverride: cfgPath,
		Style:          "plain",
	}, &out)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownProfile))
}

func TestRenderMissingSnippet(t *testing.T) {
	cfgPath := setupLibrary(t, "[demo]\ndepends_on = [\"gone.md\"]\n", nil)

	var out bytes.Buffer
	err := preview.Render(preview.Options{
		Profile:        "demo",
		ConfigOverride: cfgPath,
		Style:          "plain",
	}, &out)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}
