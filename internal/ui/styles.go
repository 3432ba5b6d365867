// Package ui renders console output for the movie catalog.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#8BC34A"}
	Muted       = lipgloss.AdaptiveColor{Light: "#6a737d", Dark: "#8b949e"}
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles used by the console.
type Styles struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Prompt  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles returns the console styles. Colors are dropped automatically
// when output is not a terminal.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Bold:    lipgloss.NewStyle().Bold(true),
		Body:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(Muted),
		Prompt:  lipgloss.NewStyle().Foreground(Primary),
		Error:   lipgloss.NewStyle().Foreground(Destructive),
		Success: lipgloss.NewStyle().Foreground(Success),
		Warning: lipgloss.NewStyle().Foreground(Warning),
	}
}

// PlainStyles returns unstyled output, for piping and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:   plain,
		Bold:    plain,
		Body:    plain,
		Muted:   plain,
		Prompt:  plain,
		Error:   plain,
		Success: plain,
		Warning: plain,
	}
}
