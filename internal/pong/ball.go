// Package pong implements the two-player pong game played on the LED
// matrix: the shared game state, ball physics, paddle control and the
// round state machine that drives them from a fixed-period task.
package pong

import "github.com/vovakirdan/matrix-pong/internal/core"

// Side identifies a player.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

// Ball is the simulated ball. X and Y are continuous coordinates with the
// origin at the bottom-left corner; PX and PY are the matching pixel.
type Ball struct {
	X, Y   float64
	VX, VY float64 // Pixels per second
	PX, PY int
	Color  core.Color
}

// Speed returns the magnitude of the velocity.
func (b *Ball) Speed() float64 {
	return core.Magnitude(b.VX, b.VY)
}

// Stopped reports whether the ball has zero velocity, which only happens
// while a point is over.
func (b *Ball) Stopped() bool {
	return b.VX == 0 && b.VY == 0
}

// updatePixels recomputes the pixel coordinates from the continuous ones.
func (b *Ball) updatePixels(g core.Geometry) {
	b.PX = core.PixelIndex(b.X, g.Width)
	b.PY = core.PixelIndex(b.Y, g.Height)
}

// Paddle is a vertical paddle at one side edge. Row is the bottom pixel
// row it covers.
type Paddle struct {
	Row     int
	PrevRow int
}

// Covers reports whether pixel row lies on a paddle of the given height.
func (p Paddle) Covers(row, height int) bool {
	return row >= p.Row && row < p.Row+height
}

// Score holds the points of both players.
type Score struct {
	Left  int
	Right int
}

// Award adds one point to side.
func (s *Score) Award(side Side) {
	switch side {
	case SideLeft:
		s.Left++
	case SideRight:
		s.Right++
	}
}

// Of returns the points of side.
func (s Score) Of(side Side) int {
	switch side {
	case SideLeft:
		return s.Left
	case SideRight:
		return s.Right
	default:
		return 0
	}
}
