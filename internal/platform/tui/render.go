package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

// halfBlock shows two panel rows in one terminal cell: the foreground is
// the upper row and the background the lower one.
const halfBlock = "▀"

// ledColors maps pixel colours to terminal colours.
var ledColors = [8]lipgloss.Color{
	core.ColorOff:     lipgloss.Color("0"),
	core.ColorGreen:   lipgloss.Color("10"),
	core.ColorBlue:    lipgloss.Color("12"),
	core.ColorTeal:    lipgloss.Color("14"),
	core.ColorRed:     lipgloss.Color("9"),
	core.ColorYellow:  lipgloss.Color("11"),
	core.ColorMagenta: lipgloss.Color("13"),
	core.ColorWhite:   lipgloss.Color("15"),
}

// cellStyles holds one style per (upper, lower) colour pair.
var cellStyles = func() [64]lipgloss.Style {
	var styles [64]lipgloss.Style
	for up := range 8 {
		for low := range 8 {
			styles[up*8+low] = lipgloss.NewStyle().
				Foreground(ledColors[up]).
				Background(ledColors[low])
		}
	}
	return styles
}()

// LEDColor returns the terminal colour used for c.
func LEDColor(c core.Color) lipgloss.Color {
	return ledColors[c&core.ColorMask]
}

func cellStyle(upper, lower core.Color) lipgloss.Style {
	return cellStyles[int(upper&core.ColorMask)*8+int(lower&core.ColorMask)]
}

// RenderFrame converts a frame to a styled string, two pixel rows per text
// line. Adjacent cells with the same colours are grouped to keep the escape
// sequences short.
func RenderFrame(f *core.Frame) string {
	if f == nil {
		return ""
	}
	lines := (f.Height() + 1) / 2

	var sb strings.Builder
	sb.Grow(f.Width()*lines*4 + lines)

	for line := range lines {
		if line > 0 {
			sb.WriteByte('\n')
		}
		y := line * 2

		x := 0
		for x < f.Width() {
			upper, lower := f.Get(x, y), f.Get(x, y+1)
			n := 0
			for x < f.Width() && f.Get(x, y) == upper && f.Get(x, y+1) == lower {
				n++
				x++
			}
			sb.WriteString(cellStyle(upper, lower).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}
