package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/mindppt/internal/config"
)

func (a *App) renderSetup() string {
	switch a.state.setupStep {
	case 0:
		return a.renderProviderSelection()
	case 1:
		return a.renderAPIKeyEntry()
	default:
		return ""
	}
}

func (a *App) renderProviderSelection() string {
	var b strings.Builder

	// Header
	if a.height > 30 {
		header := styleLogo.Render(logo)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
		b.WriteString("\n\n")
	}

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render("欢迎使用 MindPPT，请选择模型服务:")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Providers, marking those with a key already exported
	var providerLines []string
	for i, p := range config.Providers {
		mark := "[ ]"
		if p.NeedsAPIKey && (&config.Config{Provider: p.ID}).Credential() != "" {
			mark = "[✓]"
		}
		text := fmt.Sprintf("%s %-12s %s", mark, p.Name, p.Description)
		if i == a.state.selectedProvider {
			providerLines = append(providerLines, lipgloss.NewStyle().Foreground(colorSecondary).Bold(true).Render("> "+text))
		} else {
			providerLines = append(providerLines, lipgloss.NewStyle().Foreground(colorMuted).Render("  "+text))
		}
	}

	providerBox := styleBox.
		Width(min(64, a.width-4)).
		Render(strings.Join(providerLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, providerBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[j/k] Navigate  [Enter] Select  ✓ key found in environment")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderAPIKeyEntry() string {
	var b strings.Builder

	provider := config.GetProvider(a.state.config.Provider)
	if provider == nil {
		provider = &config.Providers[0]
	}

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render(fmt.Sprintf("Enter your %s API key:", provider.Name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Signup link
	if provider.SignupURL != "" {
		link := styleSubtitle.Render(fmt.Sprintf("Get one at: %s", provider.SignupURL))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, link))
		b.WriteString("\n")
	}
	if len(provider.EnvKeys) > 0 {
		env := styleSubtitle.Render("Leave empty to read " + strings.Join(provider.EnvKeys, " or "))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, env))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Input
	inputBox := styleBox.
		Width(60).
		BorderForeground(colorSecondary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[Enter] Continue  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := max(0, (a.height-lines)/2)
	return strings.Repeat("\n", padding) + content
}
