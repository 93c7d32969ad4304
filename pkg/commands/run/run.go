package run

import (
	"io"

	"github.com/arthur-debert/prompter/pkg/config"
	"github.com/arthur-debert/prompter/pkg/logging"
	"github.com/arthur-debert/prompter/pkg/paths"
	"github.com/arthur-debert/prompter/pkg/renderer"
)

// Options defines the options for the Render command.
type Options struct {
	// Profile is the name of the profile to render.
	Profile string
	// ConfigOverride is an optional path to the configuration file.
	ConfigOverride string
	// Separator, when non-empty, trails every snippet in the output.
	Separator string
	// PrePrompt overrides the built-in pre-prompt when non-nil.
	PrePrompt *string
	// PostPrompt overrides the configuration and built-in post-prompt
	// when non-nil.
	PostPrompt *string
}

// Render composes the named profile and streams the document to w.
func Render(opts Options, w io.Writer) error {
	log := logging.GetLogger("commands.run")
	log.Debug().Str("command", "Render").Str("profile", opts.Profile).Msg("Executing command")

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

	if err := renderer.Render(cfg, p.LibraryRoot(), w, opts.Profile,
		opts.Separator, opts.PrePrompt, opts.PostPrompt); err != nil {
		return err
	}
	log.Info().Str("command", "Render").Str("profile", opts.Profile).Msg("Command finished")
	return nil
}
