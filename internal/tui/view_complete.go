package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderComplete() string {
	var b strings.Builder
	s := a.state
	m := s.machine

	b.WriteString(a.renderSteps())
	b.WriteString("\n\n")

	// Render failed
	if err := m.Err(); err != nil {
		title := lipgloss.NewStyle().Foreground(colorError).Bold(true).Render("生成失败")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
		b.WriteString("\n\n")
		b.WriteString(a.renderInlineError(err))
		b.WriteString("\n\n")

		statusBar := styleStatusBar.Render("[r] Retry  [b] 返回大纲  [n] New  [Esc] Quit")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))
		return a.centerVertically(b.String())
	}

	art := m.Artifact()
	if art == nil {
		return a.centerVertically(b.String())
	}

	title := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("演示文稿已生成")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	lines := []string{
		fmt.Sprintf("  文件:  %s", truncate(art.Filename, 50)),
		fmt.Sprintf("  页数:  %d", art.SlideCount),
		fmt.Sprintf("  大小:  %s", art.SizeHuman()),
	}
	switch {
	case s.savedPath != "":
		lines = append(lines, fmt.Sprintf("  保存:  %s", truncate(s.savedPath, 50)))
	case s.saveErr == nil:
		lines = append(lines, "  保存:  ...")
	}
	if s.mindmapPath != "" {
		lines = append(lines, fmt.Sprintf("  导图:  %s", truncate(s.mindmapPath, 50)))
	}

	box := styleBox.
		Width(min(70, a.width-4)).
		BorderForeground(colorSuccess).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	if s.saveErr != nil {
		msg := lipgloss.NewStyle().Foreground(colorError).Render("保存失败: " + truncate(s.saveErr.Error(), 60))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, msg))
		b.WriteString("\n\n")
	}

	statusBar := styleStatusBar.Render("[m] 导出思维导图  [b] 返回大纲  [n] New  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
