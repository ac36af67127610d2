package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Workflow
	flow := []string{
		"  1 输入   Paste 50-5000 characters of text",
		"  2 分析   Review the topic, key points and sections",
		"  3 确认   Review and regenerate the outline",
		"  4 生成   Render the .pptx and save it",
	}

	flowBox := styleBox.
		Width(56).
		Render(strings.Join(flow, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, flowBox))
	b.WriteString("\n\n")

	// Keyboard shortcuts
	shortcuts := []string{
		"  Ctrl+S         Analyze the text",
		"  Tab            Choose a presentation style",
		"  Enter          Continue to the next step",
		"  b              Go back one step",
		"  g              Regenerate the outline",
		"  r              Retry a failed render",
		"  m              Save the mindmap Markdown",
		"  n              Start over",
		"  Ctrl+P         Settings",
		"  Esc            Go back / Quit",
	}

	shortcutsTitle := styleSubtitle.Render("Keyboard Shortcuts")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsTitle))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.
		Width(56).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
