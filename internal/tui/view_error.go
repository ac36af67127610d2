package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/mindppt/internal/apierr"
)

// errorMessage is the user-facing text for err.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return apierr.Classify(err, err.Error()).Message
}

func suggestionsFor(err error) []string {
	ae := apierr.Classify(err, "")
	switch ae.Kind {
	case apierr.KindCredential:
		return []string{
			"Check your API key in ~/.config/mindppt/config.yaml",
			"Or press [Ctrl+P] to open settings",
		}
	case apierr.KindQuota:
		return []string{
			"You've hit the provider's rate limit or quota",
			"Wait a moment and try again",
		}
	case apierr.KindUpstream:
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "ollama") || strings.Contains(msg, "connection refused") {
			return []string{
				"Make sure Ollama is running: ollama serve",
				"Or switch to a cloud provider in settings",
			}
		}
		return []string{
			"Check your internet connection",
			"The provider may be overloaded, try again shortly",
		}
	case apierr.KindParse:
		return []string{"The model returned malformed output, try again"}
	default:
		return nil
	}
}

// renderInlineError draws err and any suggestions as a compact box.
func (a *App) renderInlineError(err error) string {
	body := lipgloss.NewStyle().Foreground(colorError).Bold(true).Render(errorMessage(err))
	if sugg := suggestionsFor(err); len(sugg) > 0 {
		body += "\n" + styleSubtitle.Render(strings.Join(sugg, "\n"))
	}

	errBox := styleBox.
		Width(min(60, a.width-4)).
		BorderForeground(colorError).
		Render(body)
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox)
}
