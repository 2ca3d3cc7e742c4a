// Package scanout drives the LED matrix from snapshots of the game state.
// The Driver decides the colour of every pixel and pushes them scan line
// by scan line into a PixelSink, which is either the HUB75 bit protocol on
// GPIO lines or an in-memory frame for terminal viewers and tests.
package scanout

import "github.com/vovakirdan/matrix-pong/internal/core"

// PixelPair holds the two pixels driven together on one scan line: the
// upper half colour in bits 0..2 and the lower half colour in bits 3..5.
type PixelPair uint8

// Pair packs an upper and lower colour.
func Pair(upper, lower core.Color) PixelPair {
	return PixelPair(upper&core.ColorMask) | PixelPair(lower&core.ColorMask)<<3
}

// Upper returns the upper half colour.
func (p PixelPair) Upper() core.Color {
	return core.Color(p) & core.ColorMask
}

// Lower returns the lower half colour.
func (p PixelPair) Lower() core.Color {
	return core.Color(p>>3) & core.ColorMask
}

// PixelSink receives one scan line at a time. SetRow selects the line,
// SetPixel shifts in the pixel pair for each column from left to right,
// and PresentRow displays the line.
type PixelSink interface {
	SetRow(line int)
	SetPixel(col int, px PixelPair)
	PresentRow() error
}
