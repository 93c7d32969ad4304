package validate

import (
	"github.com/arthur-debert/prompter/pkg/config"
	"github.com/arthur-debert/prompter/pkg/logging"
	"github.com/arthur-debert/prompter/pkg/paths"
	"github.com/arthur-debert/prompter/pkg/validator"
)

// Options defines the options for the Run command.
type Options struct {
	// ConfigOverride is an optional path to the configuration file.
	ConfigOverride string
}

// Run parses the configuration and checks every profile against the
// library, returning one aggregated error listing every problem found.
func Run(opts Options) error {
	log := logging.GetLogger("commands.validate")
	log.Debug().Str("command", "Validate").Msg("Executing command")

	p, err := paths.New(opts.ConfigOverride)
	if err != nil {
		return err
	}
	text, err := p.ReadConfig()
	if err != nil {
		return err
	}
	cfg, err := config.Parse(text)
	if err != nil {
		return err
	}

	if err := validator.Validate(cfg, p.LibraryRoot()); err != nil {
		return err
	}
	log.Info().Str("command", "Validate").Int("profileCount", len(cfg.Profiles)).Msg("Command finished")
	return nil
}
