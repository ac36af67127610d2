package tui

import (
	"github.com/sant0-9/mindppt/internal/tui/styles"
)

// truncate shortens text to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

var (
	colorPrimary   = styles.ColorPrimary
	colorSecondary = styles.ColorSecondary
	colorSuccess   = styles.ColorSuccess
	colorError     = styles.ColorError
	colorMuted     = styles.ColorMuted
	colorWhite     = styles.ColorWhite

	styleLogo      = styles.Logo
	styleSubtitle  = styles.Subtitle
	styleBox       = styles.Box
	styleStatusBar = styles.StatusBar
)
