// Package config implements the restricted TOML grammar prompter
// configurations are written in: quote-aware # comments, [profile]
// section headers, depends_on string arrays (single- or multi-line)
// and a global post_prompt string. Anything else is ignored for
// forward compatibility.
package config

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/prompter/pkg/errors"
	"github.com/arthur-debert/prompter/pkg/logging"
)

// SnippetExt is the file extension that marks a dependency token as a
// snippet file reference rather than a profile reference.
const SnippetExt = ".md"

// Config holds the parsed profile definitions and their dependencies.
//
// Profiles map names to ordered dependency lists, where each entry is
// either a snippet file (ends in .md) or a reference to another profile.
type Config struct {
	// Profiles maps profile names to their dependency lists
	Profiles map[string][]string
	// PostPrompt is the configuration-level trailing text, valid only
	// when HasPostPrompt is true
	PostPrompt string
	// HasPostPrompt records whether post_prompt appeared in the file
	HasPostPrompt bool
}

// ProfileNames returns all profile names in lexicographic order
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSnippetRef reports whether a dependency token refers to a snippet
// file. The classification is purely syntactic: a recognized extension,
// compared case-insensitively, means file; anything else means profile.
// A dot-only basename like ".md" is a hidden name with no extension,
// so it classifies as a profile reference.
func IsSnippetRef(token string) bool {
	base := filepath.Base(token)
	ext := filepath.Ext(base)
	if ext == base {
		return false
	}
	return strings.EqualFold(ext, SnippetExt)
}

// Parse turns raw configuration text into a Config.
//
// Input is processed line by line with a small two-state machine:
// scanning, or collecting the remainder of a multi-line depends_on
// array for the active section. The first malformed construct aborts
// the parse.
func Parse(input string) (*Config, error) {
	log := logging.GetLogger("config")

	profiles := make(map[string][]string)
	var current string
	haveSection := false
	postPrompt := ""
	havePostPrompt := false

	collecting := false
	var buffer strings.Builder

	finalize := func() error {
		items, err := parseArrayItems(buffer.String())
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse,
				"Invalid depends_on array for [%s]", current)
		}
		if !haveSection {
			return errors.New(errors.ErrConfigParse,
				"depends_on outside of a profile section")
		}
		profiles[current] = items
		buffer.Reset()
		return nil
	}

	for _, rawLine := range strings.Split(input, "\n") {
		line := strings.TrimSpace(stripComment(rawLine))
		if line == "" {
			continue
		}

		if collecting {
			buffer.WriteByte(' ')
			buffer.WriteString(line)
			if closesArray(buffer.String()) {
				if err := finalize(); err != nil {
					return nil, err
				}
				collecting = false
			}
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := strings.TrimSpace(line[1 : len(line)-1])
			if name == "" {
				return nil, errors.New(errors.ErrConfigParse, "Empty section name []")
			}
			current = name
			haveSection = true
			continue
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])

		if key == "post_prompt" {
			if len(value) < 2 || !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) {
				return nil, errors.New(errors.ErrConfigParse, "post_prompt must be a string")
			}
			postPrompt = Unescape(value[1 : len(value)-1])
			havePostPrompt = true
			continue
		}

		if key != "depends_on" {
			// Unknown keys are ignored so newer configs keep working
			continue
		}
		if !strings.HasPrefix(value, "[") {
			return nil, errors.New(errors.ErrConfigParse, "depends_on must be an array")
		}
		buffer.Reset()
		buffer.WriteString(value)
		if closesArray(buffer.String()) {
			if err := finalize(); err != nil {
				return nil, err
			}
		} else {
			collecting = true
		}
	}

	log.Debug().Int("profiles", len(profiles)).Bool("postPrompt", havePostPrompt).Msg("Parsed configuration")
	return &Config{
		Profiles:      profiles,
		PostPrompt:    postPrompt,
		HasPostPrompt: havePostPrompt,
	}, nil
}

// stripComment removes a trailing # comment from one physical line.
// A # inside a double-quoted string does not start a comment; quote
// state is tracked per line only.
func stripComment(s string) string {
	var out strings.Builder
	inStr := false
	for _, c := range s {
		if c == '"' {
			out.WriteRune(c)
			inStr = !inStr
			continue
		}
		if !inStr && c == '#' {
			break
		}
		out.WriteRune(c)
	}
	return out.String()
}

// closesArray reports whether s contains a ] outside any quoted string
func closesArray(s string) bool {
	inStr := false
	for _, c := range s {
		if c == '"' {
			inStr = !inStr
		}
		if !inStr && c == ']' {
			return true
		}
	}
	return false
}

// parseArrayItems extracts the double-quoted items from an array
// literal. Inside a string a backslash escapes the next character
// verbatim; commas are not special, items are delimited purely by
// quotes. The array ends at the first unescaped ].
func parseArrayItems(s string) ([]string, error) {
	items := []string{}
	inStr := false
	escaped := false
	started := false
	var buf strings.Builder

	for _, c := range s {
		if !started {
			if c == '[' {
				started = true
			}
			continue
		}
		if c == ']' && !inStr {
			break
		}
		if inStr {
			if escaped {
				buf.WriteRune(c)
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				inStr = false
				items = append(items, buf.String())
				buf.Reset()
				continue
			}
			buf.WriteRune(c)
		} else if c == '"' {
			inStr = true
		}
	}

	if inStr {
		return nil, errors.New(errors.ErrConfigParse, "Unterminated string in array")
	}
	return items, nil
}

// Unescape converts the escape sequences \n, \t, \r, \" and \\ to
// their literal characters. Any other backslash pair, or a trailing
// lone backslash, is passed through with the backslash retained.
func Unescape(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '\\' {
			out.WriteRune(c)
			continue
		}
		if i+1 >= len(runes) {
			out.WriteRune('\\')
			break
		}
		i++
		switch runes[i] {
		case 'n':
			out.WriteRune('\n')
		case 't':
			out.WriteRune('\t')
		case 'r':
			out.WriteRune('\r')
		case '"':
			out.WriteRune('"')
		case '\\':
			out.WriteRune('\\')
		default:
			out.WriteRune('\\')
			out.WriteRune(runes[i])
		}
	}
	return out.String()
}
