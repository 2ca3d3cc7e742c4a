package pong

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-pong/internal/config"
	"github.com/vovakirdan/matrix-pong/internal/core"
)

// edgeQueueSize is how many button edges may wait for the next step.
const edgeQueueSize = 16

// PointEvent describes a finished point.
type PointEvent struct {
	Scorer   Side
	Left     int // Score after the point
	Right    int
	Hits     int
	Practice bool
	At       time.Time
}

// PointRecorder receives finished points. RecordPoint is called from the
// physics task and must not block.
type PointRecorder interface {
	RecordPoint(PointEvent)
}

// Observer is notified after every step, outside the table lock.
type Observer interface {
	Stepped(out Outcome)
	Scored(ev PointEvent)
}

type nopObserver struct{}

func (nopObserver) Stepped(Outcome) {}
func (nopObserver) Scored(PointEvent) {}

// Options configures a Simulation.
type Options struct {
	Geometry       core.Geometry
	StartSpeed     float64
	SpeedIncrement float64
	EdgeMargin     float64
	PhysicsPeriod  time.Duration
	PointOver      time.Duration
	FlashPeriod    time.Duration

	Seed     int64
	Clock    core.Clock          // Defaults to the system clock
	Left     core.PositionSource // Defaults to the centre position
	Right    core.PositionSource
	Recorder PointRecorder // Optional
	Observer Observer      // Optional
	Logger   *log.Logger   // Optional
}

// OptionsFromConfig fills the tunables of Options from cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Geometry:       cfg.Geometry.Core(),
		StartSpeed:     cfg.Physics.StartSpeed,
		SpeedIncrement: cfg.Physics.SpeedIncrement,
		EdgeMargin:     cfg.Physics.EdgeMargin,
		PhysicsPeriod:  cfg.Timing.PhysicsPeriod.Std(),
		PointOver:      cfg.Timing.PointOver.Std(),
		FlashPeriod:    cfg.Timing.FlashPeriod.Std(),
	}
}

// Simulation is the physics task. Each step applies pending button edges,
// updates the paddles and advances the ball while the round is running.
type Simulation struct {
	table   *Table
	engine  *Engine
	paddles PaddleController
	round   round

	left, right core.PositionSource
	rng         *rand.Rand
	watch       *core.Stopwatch
	last        time.Duration // Stopwatch reading at the previous step
	period      time.Duration

	edges   chan core.Edge
	pending []core.Edge

	recorder PointRecorder
	observer Observer
	logger   *log.Logger
}

// NewSimulation creates the game in its power-on state: ball served,
// idle, practice mode on, score 0-0.
func NewSimulation(opts Options) *Simulation {
	if opts.Clock == nil {
		opts.Clock = core.NewSystemClock()
	}
	if opts.Left == nil {
		opts.Left = core.FixedPosition(0.5)
	}
	if opts.Right == nil {
		opts.Right = core.FixedPosition(0.5)
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.PhysicsPeriod <= 0 {
		opts.PhysicsPeriod = time.Millisecond
	}

	s := &Simulation{
		engine:  NewEngine(opts.Geometry, opts.StartSpeed, opts.SpeedIncrement, opts.EdgeMargin),
		paddles: PaddleController{Geom: opts.Geometry},
		round: round{
			pointLength: opts.PointOver,
			flashPeriod: opts.FlashPeriod,
		},
		left:     opts.Left,
		right:    opts.Right,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		watch:    core.NewStopwatch(opts.Clock),
		period:   opts.PhysicsPeriod,
		edges:    make(chan core.Edge, edgeQueueSize),
		recorder: opts.Recorder,
		observer: opts.Observer,
		logger:   opts.Logger,
	}

	st := State{
		Mode:     ModeIdle,
		Practice: true,
		Overlay:  OverlayIdleText,
	}
	s.serve(&st, s.left.Position(), s.right.Position())
	s.table = NewTable(st)
	return s
}

// Table returns the shared state.
func (s *Simulation) Table() *Table {
	return s.table
}

// Engine returns the physics engine.
func (s *Simulation) Engine() *Engine {
	return s.engine
}

// Send queues a button edge for the next step. It never blocks; the edge
// is dropped and false returned when the queue is full.
func (s *Simulation) Send(e core.Edge) bool {
	select {
	case s.edges <- e:
		return true
	default:
		return false
	}
}

// Step runs one physics step.
func (s *Simulation) Step() Outcome {
	s.pending = s.pending[:0]
	for drained := false; !drained; {
		select {
		case e := <-s.edges:
			s.pending = append(s.pending, e)
		default:
			drained = true
		}
	}

	left, right := s.left.Position(), s.right.Position()

	var (
		out   Outcome
		point *PointEvent
		mode  Mode
	)
	s.table.Update(func(st *State) {
		for _, e := range s.pending {
			s.handleEdge(st, e, left, right)
		}
		mode = st.Mode
		if st.Mode == ModePaused {
			return
		}
		s.paddles.Update(st, left, right)
		if st.Mode != ModeRunning {
			return
		}

		dt := s.tick()
		if s.round.pointOver {
			if s.round.advancePointOver(st, dt) {
				s.serve(st, left, right)
			}
			return
		}

		out = s.engine.Step(&st.Ball, dt.Seconds(), st.Left, st.Right)
		switch out.Event {
		case EventHit:
			st.Hits++
		case EventMiss:
			st.Score.Award(out.Scorer())
			s.round.beginPointOver(st)
			point = &PointEvent{
				Scorer:   out.Scorer(),
				Left:     st.Score.Left,
				Right:    st.Score.Right,
				Hits:     st.Hits,
				Practice: st.Practice,
			}
		}
	})

	for _, e := range s.pending {
		s.logger.Debug("button", "edge", e, "mode", mode)
	}
	s.observer.Stepped(out)
	if point != nil {
		point.At = time.Now()
		s.logger.Info("point", "scorer", point.Scorer, "left", point.Left, "right", point.Right, "hits", point.Hits)
		s.observer.Scored(*point)
		if s.recorder != nil {
			s.recorder.RecordPoint(*point)
		}
	}
	return out
}

// Run steps the simulation every physics period until ctx is cancelled.
func (s *Simulation) Run(ctx context.Context) error {
	s.logger.Info("physics task started", "period", s.period)
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("physics task stopped")
			return nil
		case <-ticker.C:
			s.Step()
		}
	}
}

// tick returns the running time since the previous call.
func (s *Simulation) tick() time.Duration {
	now := s.watch.Elapsed()
	dt := now - s.last
	s.last = now
	return dt
}

// serve launches a new point and re-reads both paddles. In practice mode
// the right paddle is placed by the assist on the new ball, not by its
// slider, matching every other practice step.
func (s *Simulation) serve(st *State, left, right float64) {
	s.engine.Serve(&st.Ball, s.rng)
	s.paddles.Update(st, left, right)
	st.Left.PrevRow = st.Left.Row
	st.Right.PrevRow = st.Right.Row
	st.Hits = 0
}
