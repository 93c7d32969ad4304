// Package prompter wires the command packages into the CLI.
package prompter

import (
	stderrors "errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/prompter/internal/version"
	"github.com/arthur-debert/prompter/pkg/commands/doctor"
	"github.com/arthur-debert/prompter/pkg/commands/initialize"
	"github.com/arthur-debert/prompter/pkg/commands/list"
	"github.com/arthur-debert/prompter/pkg/commands/preview"
	"github.com/arthur-debert/prompter/pkg/commands/run"
	"github.com/arthur-debert/prompter/pkg/commands/update"
	"github.com/arthur-debert/prompter/pkg/commands/validate"
	"github.com/arthur-debert/prompter/pkg/config"
	"github.com/arthur-debert/prompter/pkg/errors"
	"github.com/arthur-debert/prompter/pkg/logging"
	"github.com/arthur-debert/prompter/pkg/style"
)

// ErrAlreadyUpToDate signals that the update command found nothing to
// install. main maps it to exit status 2.
var ErrAlreadyUpToDate = stderrors.New("already up to date")

// ErrValidationFailed signals that validate already printed its
// problem list. main exits 1 without printing the error again.
var ErrValidationFailed = stderrors.New("validation failed")

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		verbosity      int
		configOverride string
	)

	rootCmd := &cobra.Command{
		Use:     "prompter [profile]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRunExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return fmt.Errorf("no profile specified")
			}
			return renderProfile(cmd, args[0], configOverride)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&configOverride, "config", "c", "", MsgFlagConfig)

	addRenderFlags(rootCmd)

	rootCmd.AddCommand(newRunCmd(&configOverride))
	rootCmd.AddCommand(newListCmd(&configOverride))
	rootCmd.AddCommand(newValidateCmd(&configOverride))
	rootCmd.AddCommand(newInitCmd(&configOverride))
	rootCmd.AddCommand(newPreviewCmd(&configOverride))
	rootCmd.AddCommand(newDoctorCmd(&configOverride))
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// addRenderFlags registers the flags shared by the root shorthand and
// the run subcommand.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("separator", "s", "", MsgFlagSeparator)
	cmd.Flags().StringP("pre-prompt", "p", "", MsgFlagPre)
	cmd.Flags().StringP("post-prompt", "P", "", MsgFlagPost)
}

// renderProfile runs the render pipeline using cmd's flags. The
// pre-prompt and post-prompt overrides stay nil unless their flag was
// given, since an explicit empty string disables the default framing.
func renderProfile(cmd *cobra.Command, profile, configOverride string) error {
	opts := run.Options{
		Profile:        profile,
		ConfigOverride: configOverride,
	}
	if s, err := cmd.Flags().GetString("separator"); err == nil {
		opts.Separator = config.Unescape(s)
	}
	if cmd.Flags().Changed("pre-prompt") {
		s, _ := cmd.Flags().GetString("pre-prompt")
		u := config.Unescape(s)
		opts.PrePrompt = &u
	}
	if cmd.Flags().Changed("post-prompt") {
		s, _ := cmd.Flags().GetString("post-prompt")
		u := config.Unescape(s)
		opts.PostPrompt = &u
	}
	return run.Render(opts, cmd.OutOrStdout())
}

func newRunCmd(configOverride *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run <profile>",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderProfile(cmd, args[0], *configOverride)
		},
	}
	addRenderFlags(cmd)
	return cmd
}

func newListCmd(configOverride *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Long:  MsgListLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := list.Profiles(list.Options{ConfigOverride: *configOverride})
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func newValidateCmd(configOverride *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: MsgValidateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := validate.Run(validate.Options{ConfigOverride: *configOverride})
			if err != nil {
				if errors.IsErrorCode(err, errors.ErrInvalidInput) {
					fmt.Fprintf(cmd.ErrOrStderr(), MsgValidationErrors, err.Error())
					return ErrValidationFailed
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgAllValid)
			return nil
		},
	}
}

func newInitCmd(configOverride *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := initialize.Options{ConfigOverride: *configOverride}

			var spinner *pterm.SpinnerPrinter
			if style.IsTerminal() {
				spinner, _ = pterm.DefaultSpinner.
					WithWriter(cmd.ErrOrStderr()).
					Start("Initializing prompter...")
				opts.Progress = spinner.UpdateText
			}

			result, err := initialize.Scaffold(opts)
			if spinner != nil {
				_ = spinner.Stop()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.FilesCreated) == 0 {
				fmt.Fprint(out, MsgInitNothing)
			} else {
				fmt.Fprint(out, MsgInitCreatedFormat)
				for _, file := range result.FilesCreated {
					fmt.Fprintf(out, MsgInitItem, file)
				}
			}
			fmt.Fprintf(out, MsgInitLocations, result.ConfigPath, result.LibraryRoot)
			return nil
		},
	}
}

func newPreviewCmd(configOverride *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <profile>",
		Short: MsgPreviewShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			styleName, _ := cmd.Flags().GetString("style")
			width, _ := cmd.Flags().GetInt("width")
			return preview.Render(preview.Options{
				Profile:        args[0],
				ConfigOverride: *configOverride,
				Style:          styleName,
				Width:          width,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("style", "auto", MsgFlagStyle)
	cmd.Flags().Int("width", 0, MsgFlagWidth)
	return cmd
}

func newDoctorCmd(configOverride *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: MsgDoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			offline, _ := cmd.Flags().GetBool("offline")
			report := doctor.Run(cmd.Context(), doctor.Options{
				ConfigOverride: *configOverride,
				CheckUpdates:   !offline,
				CurrentVersion: version.Version,
			})
			printReport(cmd, report)
			if report.HasErrors() {
				return stderrors.New(MsgDoctorProblems)
			}
			return nil
		},
	}
	cmd.Flags().Bool("offline", false, MsgFlagNoNetwork)
	return cmd
}

func printReport(cmd *cobra.Command, report *doctor.Report) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, pterm.Bold.Sprint(MsgDoctorTitle))
	fmt.Fprintln(out)

	printChecks := func(title string, checks []doctor.Check) {
		if len(checks) == 0 {
			return
		}
		fmt.Fprintf(out, "%s\n", pterm.Bold.Sprint(title))
		for _, c := range checks {
			prefix := pterm.Success.Prefix.Text
			switch c.Status {
			case doctor.StatusWarn:
				prefix = pterm.Warning.Prefix.Text
			case doctor.StatusError:
				prefix = pterm.Error.Prefix.Text
			}
			fmt.Fprintf(out, "  %s %s: %s\n", prefix, c.Name, c.Detail)
			if c.Hint != "" {
				fmt.Fprintf(out, "    %s\n", c.Hint)
			}
		}
		fmt.Fprintln(out)
	}
	printChecks("Configuration:", report.Configuration)
	printChecks("Updates:", report.Updates)

	switch {
	case report.HasErrors():
		fmt.Fprintln(out, pterm.Error.Prefix.Text+" Problems found")
	case report.HasWarnings():
		fmt.Fprintln(out, pterm.Warning.Prefix.Text+" Warnings found")
	default:
		fmt.Fprintln(out, MsgDoctorHealthy)
	}
}

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: MsgUpdateShort,
		Long:  MsgUpdateLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _ := cmd.Flags().GetString("release")
			force, _ := cmd.Flags().GetBool("force")
			dir, _ := cmd.Flags().GetString("install-dir")

			outcome, err := update.Run(cmd.Context(), update.Options{
				Version:        target,
				Force:          force,
				InstallDir:     dir,
				CurrentVersion: version.Version,
				Confirm:        confirmOnTerminal(cmd),
			}, update.DefaultDeps(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if outcome == update.OutcomeUpToDate {
				return ErrAlreadyUpToDate
			}
			return nil
		},
	}
	cmd.Flags().String("release", "", MsgFlagVersion)
	cmd.Flags().Bool("force", false, MsgFlagForce)
	cmd.Flags().String("install-dir", "", MsgFlagDir)
	return cmd
}

// confirmOnTerminal prompts on the command's streams and reads a y/N
// answer from its input.
func confirmOnTerminal(cmd *cobra.Command) func(string) bool {
	return func(prompt string) bool {
		fmt.Fprint(cmd.OutOrStdout(), prompt)
		var answer string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil {
			return false
		}
		return answer == "y" || answer == "Y" || answer == "yes"
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "prompter version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
			fmt.Fprintf(out, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
