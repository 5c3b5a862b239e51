// Package output prints styled status lines for the CLI. Styling is
// dropped automatically when the writer is not a terminal.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

// Success prints a success message.
func Success(w io.Writer, format string, args ...any) {
	line(w, successStyle, "✓", format, args...)
}

// Warning prints a warning message.
func Warning(w io.Writer, format string, args ...any) {
	line(w, warningStyle, "⚠", format, args...)
}

// Error prints an error message.
func Error(w io.Writer, format string, args ...any) {
	line(w, errorStyle, "✗", format, args...)
}

// Info prints an info message.
func Info(w io.Writer, format string, args ...any) {
	line(w, infoStyle, "ℹ", format, args...)
}

// Step prints a bold pipeline step heading.
func Step(w io.Writer, n int, title string) {
	fmt.Fprintln(w, primaryStyle.Render(fmt.Sprintf("[%d] %s", n, title)))
}

func line(w io.Writer, style lipgloss.Style, icon, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", style.Render(icon), fmt.Sprintf(format, args...))
}
