package shell

import (
	"github.com/charmbracelet/lipgloss"
)

// MinLeftWidth is the minimum character width for the contact pane.
const MinLeftWidth = 28

// titleStyle renders pane headers.
var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

// mutedText renders secondary content like empty-state hints.
var mutedText = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

// replyStyle renders dispatcher replies in the transcript.
var replyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
}

// PaneWidths calculates the contact and transcript pane widths from a
// total width. The contact pane gets 1/3 (minimum MinLeftWidth), the
// transcript pane the rest.
func PaneWidths(totalWidth int) (left, right int) {
	if totalWidth <= 0 {
		return 0, 0
	}
	left = totalWidth / 3
	if left < MinLeftWidth {
		left = MinLeftWidth
	}
	right = totalWidth - left
	if right < 0 {
		right = 0
	}
	return left, right
}
