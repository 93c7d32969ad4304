package list

import (
	"github.com/arthur-debert/prompter/pkg/config"
	"github.com/arthur-debert/prompter/pkg/logging"
	"github.com/arthur-debert/prompter/pkg/paths"
)

// Options defines the options for the Profiles command.
type Options struct {
	// ConfigOverride is an optional path to the configuration file.
	ConfigOverride string
}

// Profiles returns all profile names defined in the configuration,
// sorted lexicographically.
func Profiles(opts Options) ([]string, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "Profiles").Msg("Executing command")

	p, err := paths.New(opts.ConfigOverride)
	if err != nil {
		return nil, err
	}
	text, err := p.ReadConfig()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Parse(text)
	if err != nil {
		return nil, err
	}

	names := cfg.ProfileNames()
	log.Info().Str("command", "Profiles").Int("profileCount", len(names)).Msg("Command finished")
	return names, nil
}
