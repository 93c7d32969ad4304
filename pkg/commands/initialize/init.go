package initialize

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/prompter/pkg/errors"
	"github.com/arthur-debert/prompter/pkg/logging"
	"github.com/arthur-debert/prompter/pkg/paths"
)

// defaultConfig is written on first init. Files are relative to the
// library root; tokens without the snippet extension name profiles.
const defaultConfig = `# Prompter configuration
# Profiles map to sets of markdown files and/or other profiles.
# Files are relative to $HOME/.local/prompter/library

[python.api]
depends_on = ["a/b/c.md", "f/g/h.md"]

[general.testing]
depends_on = ["python.api", "a/b/d.md"]
`

// sampleSnippets are starter library files, keyed by path relative to
// the library root.
var sampleSnippets = map[string]string{
	"a/b/c.md": "# a/b/c.md\nExample snippet for python.api.\n",
	"a/b.md":   "# a/b.md\nFolder-level notes.\n",
	"a/b/d.md": "# a/b/d.md\nGeneral testing snippet.\n",
	"f/g/h.md": "# f/g/h.md\nShared helper snippet.\n",
}

// Options defines the options for the Scaffold command.
type Options struct {
	// ConfigOverride is an optional path to the configuration file.
	ConfigOverride string
	// Progress, when non-nil, receives a short message before each
	// scaffold step. The CLI feeds these to a spinner.
	Progress func(msg string)
}

// Result reports what Scaffold did.
type Result struct {
	// ConfigPath is where the configuration lives.
	ConfigPath string
	// LibraryRoot is where the snippet library lives.
	LibraryRoot string
	// FilesCreated lists paths written by this invocation. Existing
	// files are never touched.
	FilesCreated []string
}

// Scaffold creates the default configuration and library layout.
// It is non-destructive: directories are created as needed and files
// are only written where none exist.
func Scaffold(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.initialize")
	log.Debug().Str("command", "Scaffold").Msg("Executing command")

	p, err := paths.New(opts.ConfigOverride)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ConfigPath:  p.ConfigPath(),
		LibraryRoot: p.LibraryRoot(),
	}

	step := opts.Progress
	if step == nil {
		step = func(string) {}
	}

	cfgDir := filepath.Dir(p.ConfigPath())
	step("Creating config directory...")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "Failed to create %s", cfgDir)
	}
	step("Creating library directory...")
	if err := os.MkdirAll(p.LibraryRoot(), 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "Failed to create %s", p.LibraryRoot())
	}

	if _, err := os.Stat(p.ConfigPath()); os.IsNotExist(err) {
		step("Writing default config...")
		if err := os.WriteFile(p.ConfigPath(), []byte(defaultConfig), 0o644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "Failed to write %s", p.ConfigPath())
		}
		result.FilesCreated = append(result.FilesCreated, p.ConfigPath())
	}

	for _, rel := range sampleSnippetOrder() {
		path := filepath.Join(p.LibraryRoot(), rel)
		step("Creating " + filepath.Base(path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "Failed to create %s", filepath.Dir(path))
		}
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(sampleSnippets[rel]), 0o644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "Failed to write %s", path)
		}
		result.FilesCreated = append(result.FilesCreated, path)
	}

	log.Info().Str("command", "Scaffold").Int("filesCreated", len(result.FilesCreated)).Msg("Command finished")
	return result, nil
}

// sampleSnippetOrder keeps scaffold output stable across runs
func sampleSnippetOrder() []string {
	return []string{"a/b/c.md", "a/b.md", "a/b/d.md", "f/g/h.md"}
}
