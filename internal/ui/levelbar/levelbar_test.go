package levelbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRender_Width(t *testing.T) {
	tests := []struct {
		name  string
		level float64
		width int
	}{
		{"silent", 0, 20},
		{"half", 0.5, 20},
		{"full", 1, 20},
		{"over range clamps", 1.5, 20},
		{"negative clamps", -0.5, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.level, tt.width)
			if got := ansi.StringWidth(out); got != tt.width {
				t.Errorf("rendered width = %d, want %d", got, tt.width)
			}
		})
	}
}

func TestRender_ZeroWidth(t *testing.T) {
	if out := Render(0.5, 0); out != "" {
		t.Errorf("Render with zero width = %q, want empty", out)
	}
}

func TestRender_FillProportion(t *testing.T) {
	out := ansi.Strip(Render(0.5, 10))
	filled := strings.Count(out, string(filledRune))
	if filled != 5 {
		t.Errorf("filled cells = %d, want 5", filled)
	}
}
