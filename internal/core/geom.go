// Package core provides fundamental types and utilities for the matrix-pong
// system. It has no dependencies outside the standard library so that the
// physics and scan-out logic stay pure and testable.
package core

import (
	"fmt"
	"math"
)

// Fixed matrix geometry of the supported panel family (64x32, 1/16 scan).
const (
	MatrixWidth  = 64
	MatrixHeight = 32
)

// Geometry describes the matrix and paddle dimensions shared by the
// physics engine, the paddle controller and the scan-out driver.
type Geometry struct {
	Width        int // Matrix width in pixels
	Height       int // Matrix height in pixels
	PaddleHeight int // Pixels covered by one paddle
}

// DefaultGeometry returns the 64x32 panel with 8-pixel paddles.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:        MatrixWidth,
		Height:       MatrixHeight,
		PaddleHeight: 8,
	}
}

// MaxPaddleRow is the highest valid paddle row index.
func (g Geometry) MaxPaddleRow() int {
	return g.Height - g.PaddleHeight
}

// ScanLines is the number of addressable scan lines. Two physical rows are
// driven per line.
func (g Geometry) ScanLines() int {
	return g.Height / 2
}

// Validate checks that the geometry can be driven by the scan-out.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("core: invalid matrix size %dx%d", g.Width, g.Height)
	}
	if g.Height%2 != 0 {
		return fmt.Errorf("core: matrix height %d is not a multiple of two", g.Height)
	}
	if g.PaddleHeight < 1 || g.PaddleHeight > g.Height/2 {
		return fmt.Errorf("core: paddle height %d outside [1, %d]", g.PaddleHeight, g.Height/2)
	}
	return nil
}

// Rect represents an axis-aligned pixel region.
type Rect struct {
	X, Y int // Bottom-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Top returns the y-coordinate one past the top edge.
func (r Rect) Top() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Top()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Magnitude returns the length of the vector (x, y).
func Magnitude(x, y float64) float64 {
	return math.Hypot(x, y)
}

// MapRange linearly maps x from [inMin, inMax] to [outMin, outMax].
// A degenerate input range maps everything to outMin.
func MapRange(x, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// PixelIndex maps a continuous coordinate in [0, n] onto a pixel index in
// [0, n-1], rounding to nearest. NaN maps to 0.
func PixelIndex(v float64, n int) int {
	if math.IsNaN(v) || n <= 1 {
		return 0
	}
	p := MapRange(v, 0, float64(n), 0, float64(n-1))
	return Clamp(int(math.Floor(p+0.5)), 0, n-1)
}
