// Package ui provides styled CLI output using lipgloss.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#56C3F4") // cyan
	colorSuccess = lipgloss.Color("#5AF78E") // green
	colorWarning = lipgloss.Color("#F7DC6F") // yellow
	colorError   = lipgloss.Color("#FF6B9D") // red
	colorMuted   = lipgloss.Color("#6C7086") // gray
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Header renders a section title.
func Header(text string) string { return styleHeader.Render(text) }

// Success renders a success line.
func Success(format string, args ...any) string {
	return styleSuccess.Render(fmt.Sprintf(format, args...))
}

// Warning renders a warning line.
func Warning(format string, args ...any) string {
	return styleWarning.Render(fmt.Sprintf(format, args...))
}

// Error renders an error line.
func Error(format string, args ...any) string {
	return styleError.Render(fmt.Sprintf(format, args...))
}

// Muted renders secondary text.
func Muted(format string, args ...any) string {
	return styleMuted.Render(fmt.Sprintf(format, args...))
}
