package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/mindppt/internal/pipeline"
	"github.com/sant0-9/mindppt/internal/tui/styles"
)

var complexityLabels = map[pipeline.Complexity]string{
	pipeline.ComplexitySimple:  "简单",
	pipeline.ComplexityMedium:  "中等",
	pipeline.ComplexityComplex: "复杂",
}

func (a *App) renderAnalysis() string {
	var b strings.Builder
	s := a.state

	b.WriteString(a.renderSteps())
	b.WriteString("\n\n")

	res := s.machine.Analysis()
	if res == nil {
		return a.centerVertically(b.String())
	}

	// Topic
	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render(truncate(res.CoreTopic, 60))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")
	if res.Summary != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(truncate(res.Summary, 70))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var lines []string
	heading := lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)

	lines = append(lines, heading.Render("关键要点"))
	for _, p := range res.KeyPoints {
		lines = append(lines, "  • "+truncate(p, 60))
	}

	lines = append(lines, "", heading.Render("建议章节"))
	for i, sec := range res.MainStructure.SuggestedSections {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, truncate(sec, 58)))
	}

	lines = append(lines, "",
		fmt.Sprintf("预计页数: %d    复杂度: %s", res.MainStructure.EstimatedSlides, complexityLabels[res.MainStructure.Complexity]))
	if len(res.ExtractedKeywords) > 0 {
		lines = append(lines, "关键词: "+truncate(strings.Join(res.ExtractedKeywords, " / "), 56))
	}
	if v := res.Suggestions.VisualApproach; v != "" {
		lines = append(lines, "视觉建议: "+truncate(v, 56))
	}

	box := styleBox.
		Width(min(70, a.width-4)).
		BorderForeground(colorPrimary).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	st := a.currentStyle()
	styleLine := fmt.Sprintf("风格: %s %s  %s", st.Icon, styles.Accent(st).Render(st.Name), styles.Swatch(st))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleLine))
	b.WriteString("\n\n")

	if err := s.machine.Err(); err != nil {
		b.WriteString(a.renderInlineError(err))
		b.WriteString("\n\n")
	}

	statusBar := styleStatusBar.Render("[Enter] 生成大纲  [Tab] 风格  [b] 返回修改  [F1] Help  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
