// Package renderer streams a composed prompt document for a profile:
// pre-prompt, environment preamble, each resolved snippet's raw bytes
// with an optional trailing separator, and a post-prompt.
package renderer

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/arthur-debert/prompter/pkg/config"
	"github.com/arthur-debert/prompter/pkg/errors"
	"github.com/arthur-debert/prompter/pkg/logging"
	"github.com/arthur-debert/prompter/pkg/resolver"
	"github.com/arthur-debert/prompter/pkg/style"
)

// DefaultPrePrompt is written when no pre-prompt is supplied.
const DefaultPrePrompt = "You are an LLM coding agent. Here are invariants that you must adhere to. Please respond with 'Got it' when you have studied these and understand them. At that point, the operator will give you further instructions. You are *not* to do anything to the contents of this directory until you have been explicitly asked to, by the operator.\n\n"

// DefaultPostPrompt is written when neither the caller nor the
// configuration supplies a post-prompt.
const DefaultPostPrompt = "Now, read the @AGENTS.md and @CLAUDE.md files in this directory, if they exist."

// Render resolves profile and writes the composed document to w.
//
// prePrompt and postPrompt are optional overrides; nil means "not
// supplied". The post-prompt is chosen by precedence: explicit
// argument, then the configuration's post_prompt, then the default.
// A non-empty separator trails every file, including the last. Any
// write failure aborts immediately; bytes already written stay.
func Render(cfg *config.Config, libraryRoot string, w io.Writer, profile string, separator string, prePrompt, postPrompt *string) error {
	log := logging.GetLogger("renderer")

	files, err := resolver.Resolve(profile, cfg, libraryRoot)
	if err != nil {
		return err
	}
	log.Debug().Str("profile", profile).Int("files", len(files)).Msg("Rendering profile")

	pre := DefaultPrePrompt
	if prePrompt != nil {
		pre = *prePrompt
	}
	if err := write(w, []byte(pre)); err != nil {
		return err
	}

	if err := write(w, []byte("\n")); err != nil {
		return err
	}
	if err := write(w, []byte(environmentPreamble())); err != nil {
		return err
	}

	for _, path := range files {
		if err := write(w, []byte("\n")); err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "Failed to read %s", path)
		}
		if err := write(w, data); err != nil {
			return err
		}
		if separator != "" {
			if err := write(w, []byte(separator)); err != nil {
				return err
			}
		}
	}

	post := DefaultPostPrompt
	switch {
	case postPrompt != nil:
		post = *postPrompt
	case cfg.HasPostPrompt:
		post = cfg.PostPrompt
	}
	if err := write(w, []byte("\n\n")); err != nil {
		return err
	}
	return write(w, []byte(post))
}

// environmentPreamble describes the current date and platform. Its
// position in the output is fixed; its content is environment-derived.
func environmentPreamble() string {
	date := time.Now().Format("2006-01-02")
	if style.IsTerminal() {
		return fmt.Sprintf("🗓️  Today is %s, and you are running on a %s/%s system.\n\n",
			style.Value(date), style.Accent(runtime.GOARCH), style.Accent(runtime.GOOS))
	}
	return fmt.Sprintf("Today is %s, and you are running on a %s/%s system.\n\n",
		date, runtime.GOARCH, runtime.GOOS)
}

func write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrWrite, "Write error")
	}
	return nil
}
