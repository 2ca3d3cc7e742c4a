package input

import "github.com/vovakirdan/matrix-pong/internal/core"

// ButtonLines maps the three game buttons to GPIO line offsets.
type ButtonLines struct {
	Reset        int
	Pause        int
	PlayerChange int
}

// Offsets returns the line offsets in a fixed order.
func (b ButtonLines) Offsets() []int {
	return []int{b.Reset, b.Pause, b.PlayerChange}
}

// Edge returns the button edge for a line offset, or EdgeNone.
func (b ButtonLines) Edge(offset int) core.Edge {
	switch offset {
	case b.Reset:
		return core.EdgeReset
	case b.Pause:
		return core.EdgePause
	case b.PlayerChange:
		return core.EdgePlayerChange
	default:
		return core.EdgeNone
	}
}

// EdgeSink receives button edges. pong.Simulation.Send satisfies it.
type EdgeSink func(core.Edge) bool
