// Package preview renders a profile's snippets as styled markdown for
// terminal inspection.
package preview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/prompter/pkg/config"
	"github.com/arthur-debert/prompter/pkg/errors"
	"github.com/arthur-debert/prompter/pkg/logging"
	"github.com/arthur-debert/prompter/pkg/paths"
	"github.com/arthur-debert/prompter/pkg/resolver"
)

// Options configures a preview.
type Options struct {
	// Profile names the profile to preview.
	Profile string
	// ConfigOverride is an alternate config file path (-c flag).
	ConfigOverride string
	// Style selects the glamour style: "dark", "light", "notty", or
	// "auto" (the default). "plain" skips glamour entirely.
	Style string
	// Width wraps output at the given column when positive.
	Width int
}

// Render resolves the profile, stitches its snippets into a single
// markdown document and writes the styled result to w.
func Render(opts Options, w io.Writer) error {
	log := logging.GetLogger("commands.preview")

	p, err := paths.New(opts.ConfigOverride)
	if err != nil {
		return err
	}
	content, err := p.ReadConfig()
	if err != nil {
		return err
	}
	cfg, err := config.Parse(content)
	if err != nil {
		return err
	}

	files, err := resolver.Resolve(opts.Profile, cfg, p.LibraryRoot())
	if err != nil {
		return err
	}
	log.Debug().Str("profile", opts.Profile).Int("files", len(files)).Msg("Previewing profile")

	doc, err := stitch(opts.Profile, p.LibraryRoot(), files)
	if err != nil {
		return err
	}

	rendered, err := style(doc, opts.Style, opts.Width)
	if err != nil {
		// Styling problems never block the preview
		log.Warn().Err(err).Msg("Markdown styling failed, falling back to plain output")
		rendered = doc
	}
	if _, err := io.WriteString(w, rendered); err != nil {
		return errors.Wrap(err, errors.ErrWrite, "Write error")
	}
	return nil
}

// stitch joins the snippet files into one document, with a heading per
// snippet naming its library-relative path.
func stitch(profile, libraryRoot string, files []string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Profile: %s\n", profile)
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileRead, "Failed to read %s", path)
		}
		rel, err := filepath.Rel(libraryRoot, path)
		if err != nil {
			rel = path
		}
		fmt.Fprintf(&b, "\n## %s\n\n", filepath.ToSlash(rel))
		b.Write(data)
		if !strings.HasSuffix(string(data), "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

func style(doc, styleName string, width int) (string, error) {
	if styleName == "plain" {
		return doc, nil
	}

	var options []glamour.TermRendererOption
	if styleName != "" && styleName != "auto" {
		options = append(options, glamour.WithStylePath(styleName))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", err
	}
	return renderer.Render(doc)
}
