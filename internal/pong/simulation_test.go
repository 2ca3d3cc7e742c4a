package pong

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

type pointLog struct {
	events []PointEvent
}

func (p *pointLog) RecordPoint(ev PointEvent) {
	p.events = append(p.events, ev)
}

func testOptions(clock core.Clock) Options {
	return Options{
		Geometry:       core.DefaultGeometry(),
		StartSpeed:     10,
		SpeedIncrement: 2,
		EdgeMargin:     1,
		PhysicsPeriod:  time.Millisecond,
		PointOver:      3 * time.Second,
		FlashPeriod:    250 * time.Millisecond,
		Seed:           42,
		Clock:          clock,
		Left:           core.FixedPosition(0.5),
		Right:          core.FixedPosition(0.5),
	}
}

func TestNewSimulationPowerOnState(t *testing.T) {
	sim := NewSimulation(testOptions(&core.ManualClock{}))
	st := sim.Table().State()

	if st.Mode != ModeIdle || !st.Practice || st.Overlay != OverlayIdleText {
		t.Errorf("power-on mode = %v practice=%v overlay=%v", st.Mode, st.Practice, st.Overlay)
	}
	if st.Score != (Score{}) {
		t.Errorf("Score = %+v, expected 0-0", st.Score)
	}
	if math.Abs(st.Ball.Speed()-10) > 1e-9 {
		t.Errorf("ball speed = %v, expected start speed", st.Ball.Speed())
	}
}

func TestIdleBallDoesNotMove(t *testing.T) {
	clock := &core.ManualClock{}
	sim := NewSimulation(testOptions(clock))
	before := sim.Table().State().Ball

	for range 100 {
		clock.Advance(time.Millisecond)
		sim.Step()
	}

	after := sim.Table().State().Ball
	if after.X != before.X || after.Y != before.Y {
		t.Errorf("ball moved while idle: (%v, %v) -> (%v, %v)", before.X, before.Y, after.X, after.Y)
	}
}

func TestPauseExcludesPausedTime(t *testing.T) {
	clock := &core.ManualClock{}
	sim := NewSimulation(testOptions(clock))

	sim.Send(core.EdgePause) // idle -> running
	sim.Step()
	if m := sim.Table().State().Mode; m != ModeRunning {
		t.Fatalf("Mode = %v, expected running", m)
	}

	sim.Send(core.EdgePause) // running -> paused
	sim.Step()
	paused := sim.Table().State()
	if paused.Mode != ModePaused {
		t.Fatalf("Mode = %v, expected paused", paused.Mode)
	}

	clock.Advance(10 * time.Second)
	sim.Step()
	if x := sim.Table().State().Ball.X; x != paused.Ball.X {
		t.Errorf("ball moved while paused: %v -> %v", paused.Ball.X, x)
	}

	sim.Send(core.EdgePause) // paused -> running
	sim.Step()
	clock.Advance(time.Millisecond)
	sim.Step()

	resumed := sim.Table().State().Ball
	want := paused.Ball.X + paused.Ball.VX*0.001
	if math.Abs(resumed.X-want) > 1e-9 {
		t.Errorf("X after resume = %v, expected %v (paused time must not count)", resumed.X, want)
	}
}

func TestPlayerChangeOnlyWhileRunning(t *testing.T) {
	sim := NewSimulation(testOptions(&core.ManualClock{}))

	sim.Send(core.EdgePlayerChange)
	sim.Step()
	if !sim.Table().State().Practice {
		t.Error("practice should not change while idle")
	}

	sim.Send(core.EdgePause)
	sim.Send(core.EdgePlayerChange)
	sim.Step()
	if sim.Table().State().Practice {
		t.Error("practice should toggle off while running")
	}
}

// setupMiss places the ball so that the next 150ms step passes the left
// paddle, which sits at the bottom.
func setupMiss(t *testing.T, rec PointRecorder) (*Simulation, *core.ManualClock) {
	t.Helper()
	clock := &core.ManualClock{}
	opts := testOptions(clock)
	opts.Left = core.FixedPosition(0)
	opts.Recorder = rec
	sim := NewSimulation(opts)

	sim.Send(core.EdgePause)
	sim.Step()
	sim.Table().Update(func(st *State) {
		st.Ball = Ball{X: 2, Y: 20, VX: -10, VY: 0, Color: core.ColorWhite}
		st.Hits = 3
	})

	clock.Advance(150 * time.Millisecond)
	if out := sim.Step(); out.Event != EventMiss {
		t.Fatalf("Step() = %+v, expected miss", out)
	}
	return sim, clock
}

func TestMissScoresOnceAndFlashes(t *testing.T) {
	rec := &pointLog{}
	sim, clock := setupMiss(t, rec)

	st := sim.Table().State()
	if st.Score != (Score{Left: 0, Right: 1}) {
		t.Errorf("Score = %+v, expected 0-1", st.Score)
	}
	if !st.Ball.Stopped() || st.Ball.Color != core.ColorMiss {
		t.Errorf("ball after miss = %+v", st.Ball)
	}
	if st.Overlay != OverlayScoreFlash || !st.FlashOn {
		t.Errorf("overlay = %v flash=%v, expected score flash on", st.Overlay, st.FlashOn)
	}
	if len(rec.events) != 1 || rec.events[0].Scorer != SideRight || rec.events[0].Hits != 3 {
		t.Errorf("recorded points = %+v", rec.events)
	}

	// Flash phase toggles during point-over and the score stays put
	clock.Advance(300 * time.Millisecond)
	sim.Step()
	st = sim.Table().State()
	if st.FlashOn {
		t.Error("flash should be off in the second period")
	}
	if st.Score.Right != 1 {
		t.Errorf("Score.Right = %d, expected 1", st.Score.Right)
	}

	clock.Advance(3 * time.Second)
	sim.Step()
	st = sim.Table().State()
	if st.Overlay != OverlayNone || st.Ball.Color != core.ColorWhite {
		t.Errorf("after point-over overlay=%v colour=%v", st.Overlay, st.Ball.Color)
	}
	if math.Abs(st.Ball.Speed()-10) > 1e-9 {
		t.Errorf("serve speed = %v, expected 10", st.Ball.Speed())
	}
	if st.Hits != 0 {
		t.Errorf("Hits = %d, expected 0 after serve", st.Hits)
	}
	if len(rec.events) != 1 {
		t.Errorf("recorded %d points, expected 1", len(rec.events))
	}
}

func TestRightMissScoresLeft(t *testing.T) {
	rec := &pointLog{}
	clock := &core.ManualClock{}
	opts := testOptions(clock)
	opts.Right = core.FixedPosition(0)
	opts.Recorder = rec
	sim := NewSimulation(opts)

	sim.Send(core.EdgePause)
	sim.Send(core.EdgePlayerChange) // two players: the right paddle follows its slider
	sim.Step()
	sim.Table().Update(func(st *State) {
		st.Ball = Ball{X: 62, Y: 20, VX: 10, VY: 0, Color: core.ColorWhite}
	})

	clock.Advance(150 * time.Millisecond)
	if out := sim.Step(); out.Event != EventMiss || out.Side != SideRight {
		t.Fatalf("Step() = %+v, expected right miss", out)
	}

	st := sim.Table().State()
	if st.Score != (Score{Left: 1, Right: 0}) {
		t.Errorf("Score = %+v, expected 1-0", st.Score)
	}
	if !st.Ball.Stopped() || st.Ball.Color != core.ColorMiss {
		t.Errorf("ball after miss = %+v", st.Ball)
	}
	if len(rec.events) != 1 || rec.events[0].Scorer != SideLeft || rec.events[0].Practice {
		t.Errorf("recorded points = %+v", rec.events)
	}
}

func TestPauseFreezesPointOver(t *testing.T) {
	sim, clock := setupMiss(t, nil)

	sim.Send(core.EdgePause)
	sim.Step()
	clock.Advance(10 * time.Second)
	sim.Step()

	st := sim.Table().State()
	if st.Mode != ModePaused || st.Overlay != OverlayScoreFlash || !st.FlashOn {
		t.Errorf("paused point-over mode=%v overlay=%v flash=%v", st.Mode, st.Overlay, st.FlashOn)
	}
	if !st.Ball.Stopped() {
		t.Errorf("ball served while paused: %+v", st.Ball)
	}

	sim.Send(core.EdgePause)
	sim.Step()
	clock.Advance(300 * time.Millisecond)
	sim.Step()
	st = sim.Table().State()
	if st.FlashOn || st.Overlay != OverlayScoreFlash {
		t.Errorf("after resume overlay=%v flash=%v, expected second flash period", st.Overlay, st.FlashOn)
	}
}

func TestPracticeServeUsesAssist(t *testing.T) {
	sim, clock := setupMiss(t, nil)

	clock.Advance(3300 * time.Millisecond)
	sim.Step()

	st := sim.Table().State()
	if st.Ball.Stopped() {
		t.Fatal("expected a new serve after point-over")
	}
	if want := sim.paddles.AssistRow(st.Ball.Y); st.Right.Row != want {
		t.Errorf("Right.Row = %d, expected assist row %d", st.Right.Row, want)
	}
	if st.Right.PrevRow != st.Right.Row {
		t.Errorf("Right.PrevRow = %d, expected %d", st.Right.PrevRow, st.Right.Row)
	}
}

func TestResetKeepsScore(t *testing.T) {
	sim, _ := setupMiss(t, nil)

	sim.Send(core.EdgeReset)
	sim.Step()

	st := sim.Table().State()
	if st.Mode != ModeIdle || !st.Practice || st.Overlay != OverlayIdleText {
		t.Errorf("after reset mode=%v practice=%v overlay=%v", st.Mode, st.Practice, st.Overlay)
	}
	if st.Score.Right != 1 {
		t.Errorf("Score.Right = %d, expected 1 (reset keeps score)", st.Score.Right)
	}
	if st.Ball.Stopped() || st.Ball.Color != core.ColorWhite {
		t.Errorf("ball after reset = %+v, expected a fresh serve", st.Ball)
	}
}

func TestSendDropsWhenFull(t *testing.T) {
	sim := NewSimulation(testOptions(&core.ManualClock{}))

	for i := range edgeQueueSize {
		if !sim.Send(core.EdgePlayerChange) {
			t.Fatalf("Send() #%d dropped", i)
		}
	}
	if sim.Send(core.EdgePlayerChange) {
		t.Error("Send() on a full queue should report a drop")
	}
}

func runReplay(steps int) []State {
	clock := &core.ManualClock{}
	opts := testOptions(clock)
	opts.Left = core.FixedPosition(0.3)
	opts.Right = core.FixedPosition(0.7)
	sim := NewSimulation(opts)
	sim.Send(core.EdgePause)
	sim.Send(core.EdgePlayerChange)

	states := make([]State, 0, steps)
	for range steps {
		clock.Advance(time.Millisecond)
		sim.Step()
		states = append(states, sim.Table().State())
	}
	return states
}

func TestDeterministicReplay(t *testing.T) {
	a := runReplay(20000)
	b := runReplay(20000)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("replay diverged at step %d:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestInvariantsOverLongRun(t *testing.T) {
	states := runReplay(60000)
	g := core.DefaultGeometry()

	prevSpeed := 0.0
	prevStopped := false
	prevScore := Score{}
	for i, st := range states {
		for _, p := range []Paddle{st.Left, st.Right} {
			if p.Row < 0 || p.Row > g.MaxPaddleRow() {
				t.Fatalf("step %d: paddle row %d out of range", i, p.Row)
			}
		}

		points := (st.Score.Left + st.Score.Right) - (prevScore.Left + prevScore.Right)
		if points < 0 || points > 1 {
			t.Fatalf("step %d: score jumped from %+v to %+v", i, prevScore, st.Score)
		}
		if points == 1 && !st.Ball.Stopped() {
			t.Fatalf("step %d: point scored but ball still moving", i)
		}

		speed := st.Ball.Speed()
		switch {
		case st.Ball.Stopped():
		case prevStopped:
			if math.Abs(speed-10) > 1e-9 {
				t.Fatalf("step %d: serve speed %v, expected 10", i, speed)
			}
		case speed < prevSpeed-1e-9:
			t.Fatalf("step %d: speed fell from %v to %v within a point", i, prevSpeed, speed)
		}

		prevSpeed = speed
		prevStopped = st.Ball.Stopped()
		prevScore = st.Score
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sim := NewSimulation(testOptions(core.NewSystemClock()))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, expected nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
