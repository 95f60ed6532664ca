package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#2a6ebb")
	muted       = lipgloss.Color("#7a7a7a")
	destructive = lipgloss.Color("#e53935")
	success     = lipgloss.Color("#43a047")
)

// Styles groups the lipgloss styles used by the views.
type Styles struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Label       lipgloss.Style
	Error       lipgloss.Style
	Notice      lipgloss.Style
	Help        lipgloss.Style
	Frame       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		ActiveTab:   lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true).Padding(0, 2),
		InactiveTab: lipgloss.NewStyle().Foreground(muted).Padding(0, 2),
		Label:       lipgloss.NewStyle().Width(14).Foreground(muted),
		Error:       lipgloss.NewStyle().Foreground(destructive).Bold(true),
		Notice:      lipgloss.NewStyle().Foreground(success),
		Help:        lipgloss.NewStyle().Foreground(muted),
		Frame:       lipgloss.NewStyle().Padding(1, 2),
	}
}
