package core

import (
	"strings"
)

// Frame is a full-matrix pixel buffer in panel orientation: row 0 is the
// top physical row. It decouples the scan-out pattern from the way a frame
// is finally shown (terminal, SSH session, text dump).
type Frame struct {
	width  int
	height int
	pixels []Color
}

// NewFrame creates a dark frame with the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	return f.height
}

// Set colours the pixel at (x, y).
// Out-of-bounds coordinates are silently ignored.
func (f *Frame) Set(x, y int, c Color) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.pixels[y*f.width+x] = c & ColorMask
}

// Get returns the pixel at (x, y).
// Returns ColorOff for out-of-bounds coordinates.
func (f *Frame) Get(x, y int) Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return ColorOff
	}
	return f.pixels[y*f.width+x]
}

// Clone returns an independent copy of the frame.
func (f *Frame) Clone() *Frame {
	c := NewFrame(f.width, f.height)
	copy(c.pixels, f.pixels)
	return c
}

// String dumps the frame as text, one glyph per pixel, rows joined with
// newlines.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow(f.width*f.height + f.height)

	for y := range f.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(f.Row(y))
	}
	return sb.String()
}

// Row returns one row as glyphs.
func (f *Frame) Row(y int) string {
	if y < 0 || y >= f.height {
		return strings.Repeat(".", f.width)
	}
	row := make([]byte, f.width)
	for x := range f.width {
		row[x] = f.pixels[y*f.width+x].Glyph()
	}
	return string(row)
}
