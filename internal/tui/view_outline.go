package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/mindppt/internal/outline"
	"github.com/sant0-9/mindppt/internal/recommend"
)

var layoutLabels = map[recommend.Layout]string{
	recommend.LayoutTitle:     "标题页",
	recommend.LayoutContent:   "内容页",
	recommend.LayoutTwoColumn: "双栏",
	recommend.LayoutSection:   "章节页",
}

// renderOutlineTree renders the enriched outline as an indented tree for the
// review viewport.
func (a *App) renderOutlineTree(o *outline.Outline) string {
	if o == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Render(o.Title))
	b.WriteString("\n\n")

	heading := lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
	meta := lipgloss.NewStyle().Foreground(colorMuted)

	outline.Walk(o.Items, func(n *outline.Node, depth int) {
		indent := strings.Repeat("  ", depth-1)
		b.WriteString(indent)
		b.WriteString(heading.Render(fmt.Sprintf("%s %s", n.ID, n.Title)))
		b.WriteString(meta.Render(fmt.Sprintf("  [%s · %s]", n.SuggestedIcon, layoutLabels[n.Layout])))
		b.WriteString("\n")
		for _, c := range n.Content {
			b.WriteString(indent + "  - " + c + "\n")
		}
	})

	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderReview() string {
	var b strings.Builder
	s := a.state

	b.WriteString(a.renderSteps())
	b.WriteString("\n\n")

	if o := s.machine.Outline(); o != nil {
		info := styleSubtitle.Render(fmt.Sprintf("%d 个章节  ·  %s %s",
			o.Outline.Count(), a.currentStyle().Icon, a.currentStyle().Name))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, info))
		b.WriteString("\n")
	}

	box := styleBox.
		Width(s.outlineView.Width + 2).
		BorderForeground(colorPrimary).
		Render(s.outlineView.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n")

	scroll := styleSubtitle.Render(fmt.Sprintf("%3.0f%%", s.outlineView.ScrollPercent()*100))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, scroll))
	b.WriteString("\n\n")

	if err := s.machine.Err(); err != nil {
		b.WriteString(a.renderInlineError(err))
		b.WriteString("\n\n")
	}

	statusBar := styleStatusBar.Render("[Enter] 生成PPT  [g] 重新生成  [Tab] 风格  [b] 返回  [j/k] Scroll  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
