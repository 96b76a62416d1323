// Package output provides styled terminal output for the CLI.
package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Storefront palette: green for healthy, amber for degraded modes,
// red for failures, plain faint text for asides.
var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D97706"))
	asideStyle = lipgloss.NewStyle().Faint(true)
)

func render(style lipgloss.Style, mark, format string, args ...any) {
	fmt.Println(style.Render(mark), fmt.Sprintf(format, args...))
}

// Success prints a success message
func Success(format string, args ...any) {
	render(okStyle, "ok", format, args...)
}

// Error prints an error message
func Error(format string, args ...any) {
	render(failStyle, "error", format, args...)
}

// Info prints an informational message
func Info(format string, args ...any) {
	render(noteStyle, "info", format, args...)
}

// Muted prints a low-emphasis aside
func Muted(format string, args ...any) {
	fmt.Println(asideStyle.Render(fmt.Sprintf(format, args...)))
}
