package prompter

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Compose reusable prompt snippets into a single document"
	MsgRunShort        = "Render a profile to stdout"
	MsgListShort       = "List all available profiles"
	MsgListLong        = "List displays every profile defined in the configuration file, one per line."
	MsgValidateShort   = "Check the configuration and library for problems"
	MsgInitShort       = "Create the default configuration and sample library"
	MsgDoctorShort     = "Run health checks over the installation"
	MsgPreviewShort    = "Render a profile as styled markdown"
	MsgUpdateShort     = "Update prompter to the latest release"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgAllValid          = "All profiles valid"
	MsgValidationErrors  = "Validation errors:\n%s\n"
	MsgInitCreatedFormat = "Initialized prompter:\n"
	MsgInitItem          = "  ✓ %s\n"
	MsgInitNothing       = "Everything already in place, nothing created.\n"
	MsgInitLocations     = "\nConfig:  %s\nLibrary: %s\n"
	MsgDoctorTitle       = "prompter health check"
	MsgDoctorHealthy     = "✨ Everything looks healthy!"
	MsgDoctorProblems    = "health check found problems"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Path to the configuration file (library becomes its sibling 'library' directory)"
	MsgFlagSeparator = "Separator written after each snippet (escapes like \\n are honored)"
	MsgFlagPre       = "Replace the built-in pre-prompt"
	MsgFlagPost      = "Replace the configured post-prompt"
	MsgFlagStyle     = "Markdown style: auto, dark, light, notty or plain"
	MsgFlagWidth     = "Wrap preview output at the given column"
	MsgFlagVersion   = "Install a specific version instead of the latest"
	MsgFlagForce     = "Skip the confirmation prompt"
	MsgFlagDir       = "Install into this directory instead of the running binary's location"
	MsgFlagNoNetwork = "Skip the release check"
)

// Long messages
const (
	MsgRootLong = `prompter assembles markdown snippets from your library into complete
prompts. Profiles in the configuration file name the snippets they pull
in, and profiles can include other profiles.

Running 'prompter <profile>' renders that profile to stdout.`

	MsgRunLong = `Run resolves the profile's dependencies, deduplicates repeated
snippets and streams the assembled document to stdout, framed by the
pre-prompt and post-prompt.`

	MsgUpdateLong = `Update downloads the requested release from GitHub, verifies its
checksum and replaces the running binary in place.`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(prompter completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ prompter completion bash > /etc/bash_completion.d/prompter
  # macOS:
  $ prompter completion bash > /usr/local/etc/bash_completion.d/prompter

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ prompter completion zsh > "${fpath[1]}/_prompter"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ prompter completion fish | source
  # To load completions for each session, execute once:
  $ prompter completion fish > ~/.config/fish/completions/prompter.fish

PowerShell:
  PS> prompter completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> prompter completion powershell > prompter.ps1
  # and source this file from your PowerShell profile.
`

	MsgRunExample = `  # Render the python.api profile
  prompter python.api

  # Same, with a visible divider between snippets
  prompter run python.api --separator "\n---\n"

  # Drop the default framing entirely
  prompter python.api -p "" -P ""`
)
