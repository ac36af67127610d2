// Package styles holds the terminal palette and renders presentation style
// previews.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/mindppt/internal/style"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("#2563EB")
	ColorSecondary = lipgloss.Color("#06B6D4")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorWhite     = lipgloss.Color("#F9FAFB")
	ColorDark      = lipgloss.Color("#1F2937")

	// Logo style
	Logo = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	// Subtitle
	Subtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Box
	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Centered container
	Center = lipgloss.NewStyle().
		Align(lipgloss.Center)
)

// Swatch renders the primary, secondary and accent colors of a presentation
// style as blocks, so styles can be told apart in a list.
func Swatch(c style.Config) string {
	var b strings.Builder
	for _, hex := range []string{c.Colors.Primary, c.Colors.Secondary, c.Colors.Accent} {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██"))
	}
	return b.String()
}

// Accent returns a bold style in the presentation's primary color.
func Accent(c style.Config) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Colors.Primary)).Bold(true)
}
