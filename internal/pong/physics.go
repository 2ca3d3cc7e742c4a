package pong

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

// Event classifies what happened during one physics step.
type Event int

const (
	EventNone Event = iota
	EventWall       // Bounced off the top or bottom wall
	EventHit        // Returned by a paddle
	EventMiss       // Passed a paddle; the point is over
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventWall:
		return "wall"
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	default:
		return "none"
	}
}

// Outcome is the result of Engine.Step. Side is the edge involved in a hit
// or miss.
type Outcome struct {
	Event Event
	Side  Side
}

// Scorer returns the side that wins the point on a miss.
func (o Outcome) Scorer() Side {
	if o.Event != EventMiss {
		return SideNone
	}
	return o.Side.Opponent()
}

// Maximum deflection from straight across on a paddle hit.
const maxBounceAngle = math.Pi / 4

// maxWallFolds bounds the wall reflection loop for very large steps.
const maxWallFolds = 8

// Engine moves the ball and resolves collisions with the walls and
// paddles. It holds no state besides its parameters.
type Engine struct {
	Geom           core.Geometry
	StartSpeed     float64
	SpeedIncrement float64
	EdgeMargin     float64
}

// NewEngine creates an engine for the given geometry and ball speeds.
func NewEngine(geom core.Geometry, startSpeed, increment, edgeMargin float64) *Engine {
	return &Engine{
		Geom:           geom,
		StartSpeed:     startSpeed,
		SpeedIncrement: increment,
		EdgeMargin:     edgeMargin,
	}
}

// Step advances the ball by dt seconds and resolves collisions against the
// given paddles.
func (e *Engine) Step(b *Ball, dt float64, left, right Paddle) Outcome {
	out := Outcome{}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 || b.Stopped() {
		b.updatePixels(e.Geom)
		return out
	}

	b.X += dt * b.VX
	b.Y += dt * b.VY

	if e.foldWalls(b) {
		out.Event = EventWall
	}

	w := float64(e.Geom.Width)
	var (
		side  Side
		edge  float64
		pad   Paddle
		exitX float64
	)
	switch {
	case b.X <= e.EdgeMargin && b.VX < 0:
		side, edge, pad, exitX = SideLeft, e.EdgeMargin, left, 0.5
	case b.X >= w-e.EdgeMargin && b.VX > 0:
		side, edge, pad, exitX = SideRight, w-e.EdgeMargin, right, w-0.5
	}

	if side != SideNone {
		if y, ok := e.intercept(b, edge); ok {
			if e.paddleCovers(pad, y) {
				e.bounce(b, side, edge, pad, y)
				out = Outcome{Event: EventHit, Side: side}
			} else {
				b.VX, b.VY = 0, 0
				b.Color = core.ColorMiss
				b.X = exitX
				b.Y = y
				out = Outcome{Event: EventMiss, Side: side}
			}
		}
	}

	b.X = core.ClampF(b.X, 0, w)
	b.updatePixels(e.Geom)
	return out
}

// foldWalls reflects the ball off the top and bottom walls using
// y' = 2*bound - y, negating VY on every fold.
func (e *Engine) foldWalls(b *Ball) bool {
	h := float64(e.Geom.Height)
	folded := false
	for range maxWallFolds {
		switch {
		case b.Y > h:
			b.Y = 2*h - b.Y
		case b.Y < 0:
			b.Y = -b.Y
		default:
			return folded
		}
		b.VY = -b.VY
		folded = true
	}
	b.Y = core.ClampF(b.Y, 0, h)
	return folded
}

// intercept returns the y where the ball's path crosses x = edge, clamped
// to the playfield. It fails when the path has no usable slope.
func (e *Engine) intercept(b *Ball, edge float64) (float64, bool) {
	if b.VX == 0 {
		return 0, false
	}
	m := b.VY / b.VX
	c := b.Y - m*b.X
	y := m*edge + c
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false
	}
	return core.ClampF(y, 0, float64(e.Geom.Height)), true
}

func (e *Engine) paddleCovers(p Paddle, y float64) bool {
	return p.Covers(core.PixelIndex(y, e.Geom.Height), e.Geom.PaddleHeight)
}

// bounce sends the ball back from a paddle. The angle depends on where the
// intercept falls along the paddle: the bottom end deflects 45 degrees
// downward, the top end 45 degrees upward.
func (e *Engine) bounce(b *Ball, side Side, edge float64, p Paddle, y float64) {
	speed := b.Speed()
	if speed == 0 {
		return
	}
	b.X = 2*edge - b.X

	h := float64(e.Geom.Height)
	rowF := y * (h - 1) / h
	f := core.ClampF((rowF-float64(p.Row)+0.5)/float64(e.Geom.PaddleHeight), 0, 1)
	angle := (2*f - 1) * maxBounceAngle

	speed += e.SpeedIncrement
	dir := 1.0
	if side == SideRight {
		dir = -1
	}
	b.VX = dir * speed * math.Cos(angle)
	b.VY = speed * math.Sin(angle)
}

// Serve centres the ball and launches it at the start speed within 30
// degrees of horizontal, towards a random side.
func (e *Engine) Serve(b *Ball, rng *rand.Rand) {
	v := e.StartSpeed
	b.X = float64(e.Geom.Width) / 2
	b.Y = float64(e.Geom.Height) / 2
	b.VY = core.MapRange(float64(rng.Intn(255)), 0, 254, -v/2, v/2)
	b.VX = math.Sqrt(math.Max(v*v-b.VY*b.VY, 0))
	if rng.Intn(2) == 0 {
		b.VX = -b.VX
	}
	b.Color = core.ColorWhite
	b.updatePixels(e.Geom)
}
