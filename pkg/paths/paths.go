// Package paths provides centralized path handling for prompter.
// It resolves the configuration file and snippet library locations,
// honoring XDG base directories and per-invocation overrides.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/prompter/pkg/errors"
)

// Well-known file and directory names
const (
	// AppDirName is the directory name for prompter-specific files
	AppDirName = "prompter"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.toml"

	// LibraryDirName is the directory name for the snippet library
	LibraryDirName = "library"
)

// Paths resolves the configuration and library locations for one invocation.
// When a config override is given, the library root is the "library"
// directory next to the config file; otherwise both live in their
// default locations under the user's home.
type Paths struct {
	configPath   string
	libraryRoot  string
	usedOverride bool
}

// New creates a Paths instance. configOverride may be empty, an
// absolute path, or a path relative to the working directory.
func New(configOverride string) (*Paths, error) {
	if configOverride == "" {
		return &Paths{
			configPath:  filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName),
			libraryRoot: filepath.Join(xdg.Home, ".local", AppDirName, LibraryDirName),
		}, nil
	}

	resolved, err := filepath.Abs(configOverride)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"Failed to resolve config path %s", configOverride)
	}
	return &Paths{
		configPath:   resolved,
		libraryRoot:  filepath.Join(filepath.Dir(resolved), LibraryDirName),
		usedOverride: true,
	}, nil
}

// ConfigPath returns the path to the configuration file
func (p *Paths) ConfigPath() string {
	return p.configPath
}

// LibraryRoot returns the base directory snippet references are joined against
func (p *Paths) LibraryRoot() string {
	return p.libraryRoot
}

// UsedOverride reports whether the config location came from an override
func (p *Paths) UsedOverride() bool {
	return p.usedOverride
}

// ReadConfig reads the configuration file text
func (p *Paths) ReadConfig() (string, error) {
	data, err := os.ReadFile(p.configPath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad,
			"Failed to read %s", p.configPath)
	}
	return string(data), nil
}
