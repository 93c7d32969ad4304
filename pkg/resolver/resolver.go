// Package resolver expands a profile into the flat, ordered list of
// snippet files it pulls in, following profile references recursively.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/prompter/pkg/config"
	"github.com/arthur-debert/prompter/pkg/errors"
	"github.com/arthur-debert/prompter/pkg/logging"
)

// Detail keys attached to resolution errors
const (
	DetailChain   = "chain"   // CYCLE: the profile chain, first entry to repeat
	DetailPath    = "path"    // FILE_NOT_FOUND: the missing file path
	DetailProfile = "profile" // FILE_NOT_FOUND: the referencing profile
)

// walk carries the traversal state for one resolution. The dedup set
// and output are global across the whole expansion; the stack tracks
// only the profiles currently being expanded.
type walk struct {
	cfg         *config.Config
	libraryRoot string
	seen        map[string]struct{}
	stack       []string
	out         []string
}

// Resolve performs a depth-first expansion of the named profile into
// an ordered list of file paths under libraryRoot. Each file appears
// at most once, at the position of its first occurrence. Nested
// profile references are expanded fully before the next sibling
// dependency is processed.
func Resolve(name string, cfg *config.Config, libraryRoot string) ([]string, error) {
	log := logging.GetLogger("resolver")

	w := &walk{
		cfg:         cfg,
		libraryRoot: libraryRoot,
		seen:        make(map[string]struct{}),
		out:         []string{},
	}
	if err := w.expand(name); err != nil {
		return nil, err
	}

	log.Debug().Str("profile", name).Int("files", len(w.out)).Msg("Resolved profile")
	return w.out, nil
}

func (w *walk) expand(name string) error {
	for _, active := range w.stack {
		if active == name {
			chain := append(append([]string{}, w.stack...), name)
			return errors.Newf(errors.ErrCycle,
				"Cycle detected: %s", strings.Join(chain, " -> ")).
				WithDetail(DetailChain, chain)
		}
	}

	deps, ok := w.cfg.Profiles[name]
	if !ok {
		return errors.Newf(errors.ErrUnknownProfile, "Unknown profile: %s", name)
	}

	w.stack = append(w.stack, name)
	for _, dep := range deps {
		if config.IsSnippetRef(dep) {
			path := filepath.Join(w.libraryRoot, dep)
			if _, err := os.Stat(path); err != nil {
				return errors.Newf(errors.ErrFileNotFound,
					"Missing file: %s (referenced by [%s])", path, name).
					WithDetail(DetailPath, path).
					WithDetail(DetailProfile, name)
			}
			if _, dup := w.seen[path]; !dup {
				w.seen[path] = struct{}{}
				w.out = append(w.out, path)
			}
			continue
		}
		if err := w.expand(dep); err != nil {
			return err
		}
	}
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}
