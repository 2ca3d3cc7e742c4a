package core

// Edge is a debounced button press delivered to the round state machine.
// Debouncing happens in the input layer, so every Edge is one press.
type Edge int

const (
	EdgeNone         Edge = iota
	EdgeReset             // Re-serve and return to idle, score kept
	EdgePause             // Start from idle, or toggle running/paused
	EdgePlayerChange      // Toggle practice (assist) mode while running
)

// String returns a human-readable name for the edge.
func (e Edge) String() string {
	switch e {
	case EdgeNone:
		return "None"
	case EdgeReset:
		return "Reset"
	case EdgePause:
		return "Pause"
	case EdgePlayerChange:
		return "PlayerChange"
	default:
		return "Unknown"
	}
}

// PositionSource is a normalized analog reading in [0, 1], such as a
// slide potentiometer. Implementations may return values slightly outside
// the range; consumers clamp.
type PositionSource interface {
	Position() float64
}

// PositionFunc adapts a function to PositionSource.
type PositionFunc func() float64

// Position calls f.
func (f PositionFunc) Position() float64 {
	return f()
}

// FixedPosition is a PositionSource that never moves.
type FixedPosition float64

// Position returns the fixed value.
func (p FixedPosition) Position() float64 {
	return float64(p)
}
