// Package levelbar renders the live input level as a colored meter.
package levelbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lvasse/encore/internal/ui/styles"
)

const (
	filledRune = '█'
	emptyRune  = '░'
)

// Render draws a level meter of the given width. The filled portion runs
// through the theme's meter gradient so a hot signal reads red at a glance.
func Render(level float64, width int) string {
	if width <= 0 {
		return ""
	}
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}

	filled := int(level * float64(width))
	if filled > width {
		filled = width
	}

	t := styles.T()
	var b strings.Builder

	if filled > 0 {
		colors := styles.BlendColors(width, t.MeterLow, t.MeterHigh)
		for i := 0; i < filled; i++ {
			style := lipgloss.NewStyle().Foreground(styles.ColorToLipgloss(colors[i]))
			b.WriteString(style.Render(string(filledRune)))
		}
	}

	if filled < width {
		empty := strings.Repeat(string(emptyRune), width-filled)
		b.WriteString(t.S().Subtle.Render(empty))
	}

	return b.String()
}
