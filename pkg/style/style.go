// Package style centralizes terminal output styling for prompter.
// Styling is applied only when stdout is a terminal that supports
// color; otherwise the plain text is passed through unchanged, so
// piped output stays byte-stable.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// colorEnabled reports whether styled output should be produced
func colorEnabled() bool {
	return IsTerminal() && termenv.EnvColorProfile() != termenv.Ascii
}

// Success formats a success message with a check mark when styled
func Success(msg string) string {
	if colorEnabled() {
		return "✅ " + successStyle.Render(msg)
	}
	return msg
}

// Info formats an informational message
func Info(msg string) string {
	if colorEnabled() {
		return "ℹ️  " + infoStyle.Render(msg)
	}
	return msg
}

// Warn formats a warning message
func Warn(msg string) string {
	if colorEnabled() {
		return "⚠️  " + warnStyle.Render(msg)
	}
	return msg
}

// Fail formats an error message
func Fail(msg string) string {
	if colorEnabled() {
		return "❌ " + errorStyle.Render(msg)
	}
	return msg
}

// Value highlights an inline value such as a date or path
func Value(s string) string {
	if colorEnabled() {
		return valueStyle.Render(s)
	}
	return s
}

// Accent highlights an inline identifier such as an os/arch pair
func Accent(s string) string {
	if colorEnabled() {
		return accentStyle.Render(s)
	}
	return s
}
