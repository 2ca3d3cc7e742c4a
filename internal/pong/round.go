package pong

import (
	"time"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

// round is the mode state machine. It is owned by the physics task and
// only touches State inside Table.Update.
type round struct {
	pointOver    bool
	pointElapsed time.Duration
	pointLength  time.Duration
	flashPeriod  time.Duration
}

// handleEdge applies one button edge and reports whether it changed
// anything. Slider positions are needed because a reset re-serves.
func (s *Simulation) handleEdge(st *State, e core.Edge, left, right float64) bool {
	switch e {
	case core.EdgeReset:
		s.serve(st, left, right)
		st.Mode = ModeIdle
		st.Practice = true
		st.Overlay = OverlayIdleText
		st.FlashOn = false
		s.round.pointOver = false
		s.round.pointElapsed = 0
		s.watch.Stop()
		return true

	case core.EdgePause:
		switch st.Mode {
		case ModeIdle:
			st.Mode = ModeRunning
			if st.Overlay == OverlayIdleText {
				st.Overlay = OverlayNone
			}
			s.watch.Start()
		case ModeRunning:
			st.Mode = ModePaused
			s.watch.Stop()
		case ModePaused:
			st.Mode = ModeRunning
			s.watch.Start()
		}
		return true

	case core.EdgePlayerChange:
		if st.Mode != ModeRunning {
			return false
		}
		st.Practice = !st.Practice
		return true
	}
	return false
}

// beginPointOver freezes play after a miss and starts the score flash.
func (r *round) beginPointOver(st *State) {
	r.pointOver = true
	r.pointElapsed = 0
	st.Overlay = OverlayScoreFlash
	st.FlashOn = true
}

// advancePointOver accounts dt of point-over time and reports whether the
// next point should be served.
func (r *round) advancePointOver(st *State, dt time.Duration) bool {
	r.pointElapsed += dt
	if r.flashPeriod > 0 {
		st.FlashOn = (r.pointElapsed/r.flashPeriod)%2 == 0
	}
	if r.pointElapsed < r.pointLength {
		return false
	}
	r.pointOver = false
	r.pointElapsed = 0
	st.Overlay = OverlayNone
	st.FlashOn = false
	return true
}
