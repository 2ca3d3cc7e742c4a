package pong

import "sync"

// Mode is the round mode.
type Mode int

const (
	ModeIdle Mode = iota
	ModeRunning
	ModePaused
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRunning:
		return "running"
	case ModePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Overlay selects what the display adds on top of the playfield.
type Overlay int

const (
	OverlayNone       Overlay = iota
	OverlayIdleText           // "PONG" banner while waiting for the first serve
	OverlayScoreFlash         // Blinking score bars while a point is over
)

// State is everything the physics task owns. It is only mutated through
// Table.Update.
type State struct {
	Ball     Ball
	Left     Paddle
	Right    Paddle
	Score    Score
	Mode     Mode
	Practice bool // Right paddle follows the ball
	Overlay  Overlay
	FlashOn  bool
	Hits     int // Paddle hits in the current point
}

// Table is the shared game state monitor. One mutex guards the whole
// state; the physics task writes through Update and the scan-out task
// reads through Snapshot.
type Table struct {
	mu sync.Mutex
	st State
}

// NewTable creates a table holding st.
func NewTable(st State) *Table {
	return &Table{st: st}
}

// Update runs fn with exclusive access to the state. fn must not block.
func (t *Table) Update(fn func(*State)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.st)
}

// Snapshot copies the fields needed to draw one frame.
func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return snapshotOf(&t.st)
}

// State returns a copy of the whole state.
func (t *Table) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st
}
