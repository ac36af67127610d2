package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/mindppt/internal/pipeline"
	"github.com/sant0-9/mindppt/internal/workflow"
)

// stagesFor lists the pipeline stages shown for the running call.
func stagesFor(step workflow.Step) []pipeline.Stage {
	switch step {
	case workflow.StepAnalyzing:
		return []pipeline.Stage{pipeline.StageAnalyzing}
	case workflow.StepGenerating:
		return []pipeline.Stage{pipeline.StageOutlining, pipeline.StageEnriching}
	default:
		return []pipeline.Stage{pipeline.StageRendering}
	}
}

var stageLabels = map[pipeline.Stage]string{
	pipeline.StageAnalyzing: "分析文本结构",
	pipeline.StageOutlining: "生成大纲",
	pipeline.StageEnriching: "补充图标与布局",
	pipeline.StageRendering: "渲染演示文稿",
}

func (a *App) renderProcessing() string {
	var b strings.Builder
	s := a.state

	b.WriteString(a.renderSteps())
	b.WriteString("\n\n")

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(s.spinner.View() + " 处理中")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	st := a.currentStyle()
	info := styleSubtitle.Render(fmt.Sprintf("%s %s", st.Icon, st.Name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, info))
	b.WriteString("\n\n")

	// Stages
	stages := stagesFor(s.machine.Step())
	current := stages[0]
	if s.progress != nil {
		current = s.progress.Stage
	}

	var lines []string
	for _, stage := range stages {
		var icon string
		var line lipgloss.Style
		switch {
		case stage < current:
			icon = "[x]"
			line = lipgloss.NewStyle().Foreground(colorSuccess)
		case stage == current:
			icon = "[>]"
			line = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		default:
			icon = "[ ]"
			line = lipgloss.NewStyle().Foreground(colorMuted)
		}
		lines = append(lines, line.Render(fmt.Sprintf("  %s  %s", icon, stageLabels[stage])))
	}

	stagesBox := styleBox.
		Width(min(60, a.width-4)).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, stagesBox))
	b.WriteString("\n\n")

	// Message
	if s.progress != nil && s.progress.Message != "" {
		msg := styleSubtitle.Render(truncate(s.progress.Message, 60))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, msg))
		b.WriteString("\n\n")
	}

	statusBar := styleStatusBar.Render("[F1] Help  [Ctrl+C] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
