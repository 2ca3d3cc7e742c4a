// Package input adapts the physical and virtual controls to the position
// sources and button edges the game consumes.
package input

import (
	"math"
	"sync/atomic"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

// Slider is a virtual slide potentiometer. It is safe for concurrent use:
// a UI goroutine moves it while the physics task reads it.
type Slider struct {
	bits atomic.Uint64
}

// NewSlider creates a slider at pos.
func NewSlider(pos float64) *Slider {
	s := &Slider{}
	s.Set(pos)
	return s
}

// Position returns the current position in [0, 1].
func (s *Slider) Position() float64 {
	return math.Float64frombits(s.bits.Load())
}

// Set moves the slider to pos, clamped to [0, 1].
func (s *Slider) Set(pos float64) {
	if math.IsNaN(pos) {
		pos = 0
	}
	s.bits.Store(math.Float64bits(core.ClampF(pos, 0, 1)))
}

// Nudge moves the slider by delta and returns the new position.
func (s *Slider) Nudge(delta float64) float64 {
	for {
		old := s.bits.Load()
		pos := core.ClampF(math.Float64frombits(old)+delta, 0, 1)
		if s.bits.CompareAndSwap(old, math.Float64bits(pos)) {
			return pos
		}
	}
}

// VirtualSliders is a pair of sliders for the two players.
type VirtualSliders struct {
	Left  *Slider
	Right *Slider
}

// NewVirtualSliders creates two centred sliders.
func NewVirtualSliders() *VirtualSliders {
	return &VirtualSliders{
		Left:  NewSlider(0.5),
		Right: NewSlider(0.5),
	}
}

// Side returns the slider for the left (true) or right player.
func (v *VirtualSliders) Side(left bool) *Slider {
	if left {
		return v.Left
	}
	return v.Right
}
