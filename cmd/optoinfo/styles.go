package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#D97706")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
	goodColor    = lipgloss.Color("#00AA00")
	errorColor   = lipgloss.Color("#A40000")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	GoodStyle = lipgloss.NewStyle().
			Foreground(goodColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)
)

// PrintError prints an error message.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// keyValue renders one "key: value" report line.
func keyValue(key, value string) string {
	return fmt.Sprintf("%s %s", KeyStyle.Render(fmt.Sprintf("%-18s", key+":")), ValueStyle.Render(value))
}

// renderBar renders a horizontal meter of width cells filled to frac.
func renderBar(frac float64, width int) string {
	frac = max(0, min(frac, 1))
	filled := int(frac*float64(width) + 0.5)

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
