package pong

import "github.com/vovakirdan/matrix-pong/internal/core"

// Snapshot is the per-frame copy of the state used by the display. It uses
// pixel coordinates only.
type Snapshot struct {
	BallX     int
	BallY     int
	BallColor core.Color
	LeftRow   int
	RightRow  int
	Score     Score
	Mode      Mode
	Practice  bool
	Overlay   Overlay
	FlashOn   bool
}

func snapshotOf(st *State) Snapshot {
	return Snapshot{
		BallX:     st.Ball.PX,
		BallY:     st.Ball.PY,
		BallColor: st.Ball.Color,
		LeftRow:   st.Left.Row,
		RightRow:  st.Right.Row,
		Score:     st.Score,
		Mode:      st.Mode,
		Practice:  st.Practice,
		Overlay:   st.Overlay,
		FlashOn:   st.FlashOn,
	}
}

// BarsVisible reports whether the score bars are lit. They blink while a
// point is over and are steady otherwise.
func (s Snapshot) BarsVisible() bool {
	return s.Overlay != OverlayScoreFlash || s.FlashOn
}

// BarHeight returns the score bar height in pixels for side, capped at the
// matrix height.
func (s Snapshot) BarHeight(side Side, unit, height int) int {
	h := s.Score.Of(side) * unit
	if h > height {
		return height
	}
	if h < 0 {
		return 0
	}
	return h
}
