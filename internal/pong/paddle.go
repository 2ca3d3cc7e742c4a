package pong

import (
	"math"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

// PaddleController turns slider positions into paddle rows. In practice
// mode the right paddle tracks the ball instead of its slider.
type PaddleController struct {
	Geom core.Geometry
}

// Row maps a slider position in [0, 1] onto a paddle row. Out-of-range
// positions are clamped and NaN counts as 0.
func (c PaddleController) Row(pos float64) int {
	if math.IsNaN(pos) {
		pos = 0
	}
	pos = core.ClampF(pos, 0, 1)
	return core.Clamp(int(math.Round(pos*float64(c.Geom.MaxPaddleRow()))), 0, c.Geom.MaxPaddleRow())
}

// AssistRow centres the paddle on the ball's height.
func (c PaddleController) AssistRow(ballY float64) int {
	if math.IsNaN(ballY) {
		return 0
	}
	row := int(ballY - float64(c.Geom.PaddleHeight)/2)
	return core.Clamp(row, 0, c.Geom.MaxPaddleRow())
}

// Update stores the previous rows and sets new ones from the slider
// positions.
func (c PaddleController) Update(st *State, left, right float64) {
	st.Left.PrevRow = st.Left.Row
	st.Right.PrevRow = st.Right.Row

	st.Left.Row = c.Row(left)
	if st.Practice {
		st.Right.Row = c.AssistRow(st.Ball.Y)
	} else {
		st.Right.Row = c.Row(right)
	}
}
