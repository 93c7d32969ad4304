// Package doctor runs health checks over the prompter installation.
package doctor

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/prompter/pkg/commands/update"
	"github.com/arthur-debert/prompter/pkg/config"
	"github.com/arthur-debert/prompter/pkg/logging"
	"github.com/arthur-debert/prompter/pkg/paths"
)

// Status classifies a single check result.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusError
)

// Check is one probe with its outcome. Hint, when set, tells the user
// how to fix the problem.
type Check struct {
	Name   string
	Detail string
	Status Status
	Hint   string
}

// Report groups check results by section.
type Report struct {
	Configuration []Check
	Updates       []Check
}

// HasErrors reports whether any check failed. Warnings alone do not
// count as failure.
func (r *Report) HasErrors() bool {
	return hasStatus(r.Configuration, StatusError) || hasStatus(r.Updates, StatusError)
}

// HasWarnings reports whether any check produced a warning.
func (r *Report) HasWarnings() bool {
	return hasStatus(r.Configuration, StatusWarn) || hasStatus(r.Updates, StatusWarn)
}

func hasStatus(checks []Check, s Status) bool {
	for _, c := range checks {
		if c.Status == s {
			return true
		}
	}
	return false
}

// Options configures a doctor run.
type Options struct {
	// ConfigOverride is an alternate config file path (-c flag).
	ConfigOverride string
	// CheckUpdates queries GitHub for a newer release when true.
	CheckUpdates bool
	// HTTPClient serves the update check. Nil means a 5s-timeout default.
	HTTPClient *http.Client
	// CurrentVersion is the running binary's version.
	CurrentVersion string
}

// Run executes all health checks and returns the report. It never
// fails; problems are carried in the report itself.
func Run(ctx context.Context, opts Options) *Report {
	log := logging.GetLogger("commands.doctor")

	report := &Report{}
	p, err := paths.New(opts.ConfigOverride)
	if err != nil {
		report.Configuration = []Check{{
			Name:   "Config path",
			Detail: err.Error(),
			Status: StatusError,
		}}
		return report
	}

	report.Configuration = configChecks(p)
	if opts.CheckUpdates {
		report.Updates = updateChecks(ctx, opts)
	}

	log.Debug().
		Bool("errors", report.HasErrors()).
		Bool("warnings", report.HasWarnings()).
		Msg("Health check complete")
	return report
}

func configChecks(p *paths.Paths) []Check {
	var checks []Check

	content, err := os.ReadFile(p.ConfigPath())
	if err != nil {
		checks = append(checks, Check{
			Name:   "Config file",
			Detail: fmt.Sprintf("not found: %s", p.ConfigPath()),
			Status: StatusError,
			Hint:   "Run 'prompter init' to create default configuration",
		})
	} else {
		checks = append(checks, Check{
			Name:   "Config file",
			Detail: p.ConfigPath(),
			Status: StatusOK,
		})

		// Two parses. The strict one catches anything a full TOML
		// reader would reject, then the profile grammar gets applied.
		var full map[string]any
		if err := toml.Unmarshal(content, &full); err != nil {
			checks = append(checks, Check{
				Name:   "TOML syntax",
				Detail: err.Error(),
				Status: StatusError,
			})
		} else {
			checks = append(checks, Check{Name: "TOML syntax", Detail: "valid", Status: StatusOK})
		}

		cfg, err := config.Parse(string(content))
		if err != nil {
			checks = append(checks, Check{
				Name:   "Profile grammar",
				Detail: err.Error(),
				Status: StatusError,
			})
		} else {
			checks = append(checks, Check{
				Name:   "Profile grammar",
				Detail: fmt.Sprintf("%d profiles", len(cfg.Profiles)),
				Status: StatusOK,
			})
		}
	}

	if st, err := os.Stat(p.LibraryRoot()); err != nil || !st.IsDir() {
		checks = append(checks, Check{
			Name:   "Library directory",
			Detail: fmt.Sprintf("not found: %s", p.LibraryRoot()),
			Status: StatusError,
			Hint:   "Run 'prompter init' to create default library",
		})
	} else {
		checks = append(checks, Check{
			Name:   "Library directory",
			Detail: p.LibraryRoot(),
			Status: StatusOK,
		})
	}

	return checks
}

func updateChecks(ctx context.Context, opts Options) []Check {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	latest, err := update.LatestVersion(ctx, client, update.DefaultRepo)
	if err != nil {
		return []Check{{
			Name:   "Release check",
			Detail: fmt.Sprintf("failed: %v", err),
			Status: StatusWarn,
		}}
	}
	if latest != opts.CurrentVersion {
		return []Check{{
			Name:   "Release check",
			Detail: fmt.Sprintf("update available: v%s (current: v%s)", latest, opts.CurrentVersion),
			Status: StatusWarn,
			Hint:   "Run 'prompter update' to install the latest version",
		}}
	}
	return []Check{{
		Name:   "Release check",
		Detail: fmt.Sprintf("running latest version (v%s)", opts.CurrentVersion),
		Status: StatusOK,
	}}
}
