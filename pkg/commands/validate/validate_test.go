package validate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/prompter/pkg/commands/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup creates a config file plus a sibling library directory, the
// layout used when a config override is in effect.
func setup(t *testing.T, cfgText string, snippets ...string) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgText), 0o644))
	for _, rel := range snippets {
		path := filepath.Join(dir, "library", rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(rel+"\n"), 0o644))
	}
	return cfgPath
}

func TestRunClean(t *testing.T) {
	cfgPath := setup(t, `
[child]
depends_on = ["a/x.md"]

[root]
depends_on = ["child", "f/y.md"]
`, "a/x.md", "f/y.md")

	assert.NoError(t, validate.Run(validate.Options{ConfigOverride: cfgPath}))
}

func TestRunReportsMissingFileAndUnknownProfile(t *testing.T) {
	cfgPath := setup(t, `
[root]
depends_on = ["missing.md", "unknown_profile"]
`)

	err := validate.Run(validate.Options{ConfigOverride: cfgPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing file")
	assert.Contains(t, err.Error(), "Unknown profile")
}

func TestRunReportsCycle(t *testing.T) {
	cfgPath := setup(t, `
[A]
depends_on = ["B"]

[B]
depends_on = ["A"]
`)

	err := validate.Run(validate.Options{ConfigOverride: cfgPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cycle detected")
}
