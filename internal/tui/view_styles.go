package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/mindppt/internal/style"
	"github.com/sant0-9/mindppt/internal/tui/styles"
)

func (a *App) renderStyles() string {
	var b strings.Builder

	// Header
	title := styleLogo.Render("选择演示风格")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	cursorID := style.IDs()[a.state.styleCursor]

	// List styles grouped by category
	var list strings.Builder
	for _, cat := range style.Categories() {
		list.WriteString(styleSubtitle.Render(fmt.Sprintf("%s %s", cat.Icon, cat.Label)))
		list.WriteString("\n")
		for _, st := range style.ByCategory(cat.ID) {
			line := fmt.Sprintf("%s  %s %s", styles.Swatch(st), st.Icon, st.Name)
			if st.ID == cursorID {
				line = "> " + styles.Accent(st).Render(line)
			} else {
				line = "  " + line
			}
			list.WriteString(line + "\n")
		}
	}

	listBox := styleBox.
		Width(min(70, a.width-4)).
		BorderForeground(colorPrimary).
		Render(strings.TrimSpace(list.String()))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	// Description of the highlighted style
	if st, ok := style.Lookup(cursorID); ok {
		desc := styleSubtitle.Render(truncate(fmt.Sprintf("%s · %s", st.Description, st.Scene), 70))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
		b.WriteString("\n\n")
	}

	// Status bar
	statusBar := styleStatusBar.Render("[j/k] Navigate  [Enter] Select  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
