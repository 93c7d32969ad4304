// Package validator checks every profile in a configuration and
// aggregates all structural problems into a single report instead of
// stopping at the first one.
package validator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/prompter/pkg/config"
	"github.com/arthur-debert/prompter/pkg/errors"
	"github.com/arthur-debert/prompter/pkg/logging"
	"github.com/arthur-debert/prompter/pkg/resolver"
)

// Check runs both validation passes and returns every problem found.
//
// The structural pass checks each dependency token of each profile:
// snippet references must exist under libraryRoot, profile references
// must be defined. The cycle pass then resolves every profile from
// scratch and records any cycle it runs into. A cycle may be reported
// once per profile that reaches it.
func Check(cfg *config.Config, libraryRoot string) []string {
	log := logging.GetLogger("validator")

	var problems []string
	names := cfg.ProfileNames()

	for _, profile := range names {
		for _, dep := range cfg.Profiles[profile] {
			if config.IsSnippetRef(dep) {
				path := filepath.Join(libraryRoot, dep)
				if _, err := os.Stat(path); err != nil {
					problems = append(problems,
						"Missing file: "+path+" (referenced by ["+profile+"])")
				}
			} else if _, ok := cfg.Profiles[dep]; !ok {
				problems = append(problems,
					"Unknown profile: "+dep+" (referenced by ["+profile+"])")
			}
		}
	}

	for _, profile := range names {
		_, err := resolver.Resolve(profile, cfg, libraryRoot)
		if errors.IsErrorCode(err, errors.ErrCycle) {
			problems = append(problems, err.Error())
		}
		// Other resolver outcomes are already covered by the
		// structural pass or belong to a different entry profile.
	}

	log.Debug().Int("problems", len(problems)).Msg("Validation finished")
	return problems
}

// Validate returns nil when the configuration is structurally sound,
// or a single error joining every recorded problem, one per line.
func Validate(cfg *config.Config, libraryRoot string) error {
	problems := Check(cfg, libraryRoot)
	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.ErrInvalidInput, strings.Join(problems, "\n"))
}
