package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/mindppt/internal/config"
)

func (a *App) renderSettings() string {
	cfg := a.state.config

	switch a.state.settingsMode {
	case "provider":
		names := make([]string, len(config.Providers))
		current := -1
		for i, p := range config.Providers {
			names[i] = fmt.Sprintf("%-12s %s", p.Name, p.Description)
			if p.ID == cfg.Provider {
				current = i
			}
		}
		return a.renderPicker("Select Provider", "", names, current)

	case "model":
		provider := config.GetProvider(cfg.Provider)
		if provider == nil {
			return a.renderPicker("Select Model", "No provider selected", nil, -1)
		}
		current := -1
		for i, m := range provider.Models {
			if m == cfg.Model {
				current = i
			}
		}
		return a.renderPicker("Select Model", "Provider: "+provider.Name, provider.Models, current)

	case "apikey":
		return a.renderSettingsAPIKey()

	default:
		return a.renderSettingsMain()
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder
	cfg := a.state.config

	title := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	providerName := cfg.Provider
	if p := config.GetProvider(cfg.Provider); p != nil {
		providerName = p.Name
	}
	key := cfg.MaskedCredential()
	if key == "" {
		key = "Not set"
	}

	rows := [][2]string{
		{"Provider", providerName},
		{"Model", cfg.Model},
		{"API Key", key},
	}
	if cfg.BaseURL != "" {
		rows = append(rows, [2]string{"Base URL", truncate(cfg.BaseURL, 36)})
	}
	rows = append(rows, [2]string{"Output", truncate(a.state.writer.Dir(), 36)})

	var lines []string
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("  %-9s %s", r[0]+":", r[1]))
	}
	lines = append(lines, "",
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [r] Run setup again",
	)

	box := styleBox.Width(56).Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}

// renderPicker draws a single-choice list; current marks the saved value.
func (a *App) renderPicker(title, subtitle string, items []string, current int) string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(title)))
	b.WriteString("\n\n")
	if subtitle != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(subtitle)))
		b.WriteString("\n\n")
	}

	if len(items) > 0 {
		var lines []string
		for i, item := range items {
			line := "  " + item
			if i == current {
				line += " (current)"
			}
			if i == a.state.settingsSelected {
				line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("> " + line[2:])
			}
			lines = append(lines, line)
		}
		box := styleBox.Width(56).Render(strings.Join(lines, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
		b.WriteString("\n\n")
	}

	statusBar := styleStatusBar.Render("[j/k] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("Update API Key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	hint := "Enter your new API key, or leave empty to use the environment"
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(hint)))
	b.WriteString("\n\n")

	box := styleBox.
		Width(56).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
