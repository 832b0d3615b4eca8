package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	styleGroup    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleSelected = lipgloss.NewStyle().Bold(true).Reverse(true)
	stylePending  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleRunning  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleSuccess  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleFailed   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleBorder   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var titleCaser = cases.Title(language.English)

// groupHeader renders a group name as a title-cased header.
func groupHeader(group string) string {
	return styleGroup.Render(titleCaser.String(group))
}

// statusGlyph returns the marker for a task status; frame selects the
// spinner frame for running tasks.
func statusGlyph(status TaskStatus, frame string) string {
	switch status {
	case TaskRunning:
		return styleRunning.Render(frame)
	case TaskSuccess:
		return styleSuccess.Render("✓")
	case TaskFailed:
		return styleFailed.Render("✗")
	default:
		return stylePending.Render("·")
	}
}
