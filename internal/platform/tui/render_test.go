package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

func TestRenderFrameShape(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantLines     int
	}{
		{"panel", 64, 32, 16},
		{"odd height", 5, 3, 2},
		{"single row", 4, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := core.NewFrame(tt.width, tt.height)
			f.Set(0, 0, core.ColorGreen)
			f.Set(tt.width-1, tt.height-1, core.ColorRed)

			lines := strings.Split(RenderFrame(f), "\n")
			if len(lines) != tt.wantLines {
				t.Fatalf("RenderFrame() has %d lines, expected %d", len(lines), tt.wantLines)
			}
			for i, line := range lines {
				if w := lipgloss.Width(line); w != tt.width {
					t.Errorf("line %d width = %d, expected %d", i, w, tt.width)
				}
			}
		})
	}
}

func TestRenderFrameNil(t *testing.T) {
	if got := RenderFrame(nil); got != "" {
		t.Errorf("RenderFrame(nil) = %q, expected empty", got)
	}
}

func TestLEDColor(t *testing.T) {
	tests := []struct {
		c    core.Color
		want lipgloss.Color
	}{
		{core.ColorOff, "0"},
		{core.ColorGreen, "10"},
		{core.ColorRed, "9"},
		{core.ColorTeal, "14"},
		{core.ColorYellow, "11"},
		{core.ColorWhite, "15"},
		{core.ColorWhite | 8, "15"},
	}

	for _, tt := range tests {
		if got := LEDColor(tt.c); got != tt.want {
			t.Errorf("LEDColor(%v) = %q, expected %q", tt.c, got, tt.want)
		}
	}
}
