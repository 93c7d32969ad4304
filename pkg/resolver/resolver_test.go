package resolver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/prompter/pkg/config"
	"github.com/arthur-debert/prompter/pkg/errors"
	"github.com/arthur-debert/prompter/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSnippet creates a snippet file under the library root,
// creating intermediate directories as needed.
func writeSnippet(t *testing.T, lib, rel, content string) string {
	t.Helper()
	path := filepath.Join(lib, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveOrderAndNesting(t *testing.T) {
	lib := t.TempDir()
	f1 := writeSnippet(t, lib, "a/f1.md", "F1\n")
	f2 := writeSnippet(t, lib, "a/f2.md", "F2\n")
	f3 := writeSnippet(t, lib, "b/f3.md", "F3\n")

	cfg := &config.Config{Profiles: map[string][]string{
		"nested": {"a/f1.md", "a/f2.md"},
		"root":   {"nested", "b/f3.md"},
	}}

	files, err := resolver.Resolve("root", cfg, lib)
	require.NoError(t, err)
	assert.Equal(t, []string{f1, f2, f3}, files)
}

func TestResolveDedupFirstOccurrenceWins(t *testing.T) {
	lib := t.TempDir()
	ax := writeSnippet(t, lib, "a/x.md", "AX\n")
	fy := writeSnippet(t, lib, "f/y.md", "FY\n")

	cfg := &config.Config{Profiles: map[string][]string{
		"child": {"a/x.md"},
		"root":  {"child", "f/y.md", "a/x.md"},
	}}

	files, err := resolver.Resolve("root", cfg, lib)
	require.NoError(t, err)
	assert.Equal(t, []string{ax, fy}, files)
}

func TestResolveDedupIsGlobalAcrossBranches(t *testing.T) {
	lib := t.TempDir()
	shared := writeSnippet(t, lib, "shared.md", "S\n")
	own := writeSnippet(t, lib, "own.md", "O\n")

	cfg := &config.Config{Profiles: map[string][]string{
		"a":    {"shared.md"},
		"b":    {"shared.md", "own.md"},
		"root": {"a", "b"},
	}}

	files, err := resolver.Resolve("root", cfg, lib)
	require.NoError(t, err)
	assert.Equal(t, []string{shared, own}, files)
}

func TestResolveUnknownProfile(t *testing.T) {
	cfg := &config.Config{Profiles: map[string][]string{}}

	_, err := resolver.Resolve("nope", cfg, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownProfile))
	assert.Contains(t, err.Error(), "Unknown profile: nope")
}

func TestResolveUnknownNestedReference(t *testing.T) {
	cfg := &config.Config{Profiles: map[string][]string{
		"root": {"ghost"},
	}}

	_, err := resolver.Resolve("root", cfg, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownProfile))
}

func TestResolveMissingFile(t *testing.T) {
	lib := t.TempDir()
	cfg := &config.Config{Profiles: map[string][]string{
		"root": {"missing.md"},
	}}

	_, err := resolver.Resolve("root", cfg, lib)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, filepath.Join(lib, "missing.md"), details[resolver.DetailPath])
	assert.Equal(t, "root", details[resolver.DetailProfile])
}

func TestResolveCycle(t *testing.T) {
	cfg := &config.Config{Profiles: map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}}

	_, err := resolver.Resolve("a", cfg, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCycle))
	assert.Contains(t, err.Error(), "a -> b -> c -> a")

	chain, ok := errors.GetErrorDetails(err)[resolver.DetailChain].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c", "a"}, chain)
}

func TestResolveSelfCycle(t *testing.T) {
	cfg := &config.Config{Profiles: map[string][]string{
		"a": {"a"},
	}}

	_, err := resolver.Resolve("a", cfg, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cycle detected: a -> a")
}

func TestResolveDiamondIsNotACycle(t *testing.T) {
	lib := t.TempDir()
	leaf := writeSnippet(t, lib, "leaf.md", "L\n")

	cfg := &config.Config{Profiles: map[string][]string{
		"shared": {"leaf.md"},
		"a":      {"shared"},
		"b":      {"shared"},
		"root":   {"a", "b"},
	}}

	files, err := resolver.Resolve("root", cfg, lib)
	require.NoError(t, err)
	assert.Equal(t, []string{leaf}, files)
}

func TestResolveExtensionCaseInsensitive(t *testing.T) {
	lib := t.TempDir()
	up := writeSnippet(t, lib, "UPPER.MD", "U\n")

	cfg := &config.Config{Profiles: map[string][]string{
		"root": {"UPPER.MD"},
	}}

	files, err := resolver.Resolve("root", cfg, lib)
	require.NoError(t, err)
	assert.Equal(t, []string{up}, files)
}

func TestResolveFailFastOnFirstError(t *testing.T) {
	lib := t.TempDir()
	writeSnippet(t, lib, "ok.md", "OK\n")

	cfg := &config.Config{Profiles: map[string][]string{
		"root": {"missing.md", "ok.md"},
	}}

	_, err := resolver.Resolve("root", cfg, lib)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}
