package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/mindppt/internal/pipeline"
	"github.com/sant0-9/mindppt/internal/style"
	"github.com/sant0-9/mindppt/internal/tui/styles"
	"github.com/sant0-9/mindppt/internal/workflow"
)

const logo = `
 ███╗   ███╗██╗███╗   ██╗██████╗     ██████╗ ██████╗ ████████╗
 ████╗ ████║██║████╗  ██║██╔══██╗    ██╔══██╗██╔══██╗╚══██╔══╝
 ██╔████╔██║██║██╔██╗ ██║██║  ██║    ██████╔╝██████╔╝   ██║
 ██║╚██╔╝██║██║██║╚██╗██║██║  ██║    ██╔═══╝ ██╔═══╝    ██║
 ██║ ╚═╝ ██║██║██║ ╚████║██████╔╝    ██║     ██║        ██║
 ╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝     ╚═╝     ╚═╝        ╚═╝
`

// currentStyle is the style the next call will use.
func (a *App) currentStyle() style.Config {
	id := a.state.machine.Style()
	if a.state.machine.Step() == workflow.StepInput {
		id = a.state.styleID
	}
	if st, ok := style.Lookup(id); ok {
		return st
	}
	return style.Get(style.Default)
}

// renderSteps draws the four-phase progress indicator.
func (a *App) renderSteps() string {
	current := a.state.machine.Phase()
	var parts []string
	for _, p := range workflow.Phases {
		label := fmt.Sprintf("%d %s", int(p)+1, p.Label())
		switch {
		case p < current:
			parts = append(parts, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ "+label))
		case p == current:
			parts = append(parts, lipgloss.NewStyle().Foreground(colorSecondary).Bold(true).Render("● "+label))
		default:
			parts = append(parts, lipgloss.NewStyle().Foreground(colorMuted).Render("○ "+label))
		}
	}
	line := strings.Join(parts, styleSubtitle.Render("  ─  "))
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line)
}

func (a *App) renderInput() string {
	var b strings.Builder
	s := a.state

	// Logo
	if a.height > 36 {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleLogo.Render(logo)))
		b.WriteString("\n")
	}
	b.WriteString(a.renderSteps())
	b.WriteString("\n\n")

	// Style
	st := a.currentStyle()
	styleLine := fmt.Sprintf("风格: %s %s  %s", st.Icon, styles.Accent(st).Render(st.Name), styles.Swatch(st))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleLine))
	b.WriteString("\n")

	// Loaded file
	if s.source != nil {
		meta := s.source.Metadata
		info := styleSubtitle.Render(fmt.Sprintf("%s  |  %s  |  %s  |  ~%d words",
			truncate(meta.Title, 30), strings.ToUpper(meta.SourceFormat), meta.FileSizeHuman(), meta.WordCount))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, info))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Text input
	n := pipeline.RuneLen(strings.TrimSpace(s.text.Value()))
	border := colorSecondary
	if n > 0 && (n < pipeline.MinTextRunes || n > pipeline.MaxTextRunes) {
		border = colorError
	}
	inputBox := styleBox.
		BorderForeground(border).
		Render(s.text.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n")

	counter := styleSubtitle.Render(fmt.Sprintf("%d / %d 字", n, pipeline.MaxTextRunes))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, counter))
	b.WriteString("\n\n")

	// Error from the last attempt
	if err := s.machine.Err(); err != nil {
		b.WriteString(a.renderInlineError(err))
		b.WriteString("\n\n")
	}

	// Provider status
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.renderProviderStatus()))
	b.WriteString("\n\n")

	// Status bar
	statusBar := styleStatusBar.Render("[Ctrl+S] 分析  [Tab] 风格  [Ctrl+P] Settings  [F1] Help  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}

func (a *App) renderProviderStatus() string {
	s := a.state
	name := s.config.Provider
	if p := s.config.Model; p != "" {
		name += " / " + p
	}
	switch {
	case s.providerReady:
		return lipgloss.NewStyle().Foreground(colorSuccess).Render("● " + name)
	case s.providerError != nil:
		return lipgloss.NewStyle().Foreground(colorError).Render("● " + name + "  " + truncate(errorMessage(s.providerError), 50))
	default:
		return styleSubtitle.Render("○ " + name + "  connecting...")
	}
}
