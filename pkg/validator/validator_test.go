package validator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/prompter/pkg/config"
	"github.com/arthur-debert/prompter/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnippet(t *testing.T, lib, rel string) {
	t.Helper()
	path := filepath.Join(lib, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(rel+"\n"), 0o644))
}

func TestValidateClean(t *testing.T) {
	lib := t.TempDir()
	writeSnippet(t, lib, "a.md")
	writeSnippet(t, lib, "b.md")

	cfg := &config.Config{Profiles: map[string][]string{
		"p1": {"a.md"},
		"p2": {"p1", "b.md"},
	}}

	assert.NoError(t, validator.Validate(cfg, lib))
	assert.Empty(t, validator.Check(cfg, lib))
}

func TestValidateAggregatesAllProblems(t *testing.T) {
	lib := t.TempDir()

	cfg := &config.Config{Profiles: map[string][]string{
		"root": {"missing.md", "unknown_profile"},
	}}

	err := validator.Validate(cfg, lib)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing file: "+filepath.Join(lib, "missing.md"))
	assert.Contains(t, err.Error(), "referenced by [root]")
	assert.Contains(t, err.Error(), "Unknown profile: unknown_profile")
}

func TestValidateDoesNotStopAtFirstProblem(t *testing.T) {
	lib := t.TempDir()

	cfg := &config.Config{Profiles: map[string][]string{
		"a": {"one.md"},
		"b": {"two.md"},
		"c": {"ghost"},
	}}

	problems := validator.Check(cfg, lib)
	assert.Len(t, problems, 3)
}

func TestValidateCycle(t *testing.T) {
	cfg := &config.Config{Profiles: map[string][]string{
		"A": {"B"},
		"B": {"A"},
	}}

	err := validator.Validate(cfg, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cycle detected")
	assert.Contains(t, err.Error(), "A")
	assert.Contains(t, err.Error(), "B")
}

func TestValidateCycleReportedPerEntryProfile(t *testing.T) {
	cfg := &config.Config{Profiles: map[string][]string{
		"A": {"B"},
		"B": {"A"},
	}}

	problems := validator.Check(cfg, t.TempDir())
	cycles := 0
	for _, p := range problems {
		if len(p) >= 5 && p[:5] == "Cycle" {
			cycles++
		}
	}
	assert.Equal(t, 2, cycles)
}

func TestValidateCycleBehindValidEntry(t *testing.T) {
	lib := t.TempDir()
	writeSnippet(t, lib, "ok.md")

	cfg := &config.Config{Profiles: map[string][]string{
		"entry": {"ok.md", "loop"},
		"loop":  {"loop"},
	}}

	err := validator.Validate(cfg, lib)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cycle detected: loop -> loop")
}
