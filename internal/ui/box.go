// Package ui renders the framed summaries and tables printed by the CLI.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Kind selects the colour and prefix of a box.
type Kind int

const (
	Info Kind = iota
	Success
	Failure
)

const defaultWidth = 80

var (
	infoColor    = lipgloss.Color("86")
	successColor = lipgloss.Color("42")
	failureColor = lipgloss.Color("196")
)

func (k Kind) look() (lipgloss.Color, string) {
	switch k {
	case Success:
		return successColor, "✓"
	case Failure:
		return failureColor, "✗"
	default:
		return infoColor, "ℹ"
	}
}

// Box renders a rounded frame with a prefixed title followed by indented lines.
// Lines wider than the terminal are wrapped.
func Box(kind Kind, title string, lines ...string) string {
	color, prefix := kind.look()

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(prefix + " " + title))
	for _, line := range lines {
		sb.WriteString("\n  " + line)
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)

	// Border and padding take four columns; keep a margin on either side.
	if w := terminalWidth() - 8; w > 20 && lipgloss.Width(sb.String()) > w {
		frame = frame.Width(w)
	}
	return frame.Render(sb.String())
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
