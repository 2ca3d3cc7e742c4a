package scanout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/matrix-pong/internal/core"
	"github.com/vovakirdan/matrix-pong/internal/pong"
)

type fixedSnapshot pong.Snapshot

func (f fixedSnapshot) Snapshot() pong.Snapshot {
	return pong.Snapshot(f)
}

func testDriver(s pong.Snapshot, sink PixelSink) *Driver {
	return NewDriver(fixedSnapshot(s), sink, Options{
		Geometry: core.DefaultGeometry(),
		BarUnit:  2,
	})
}

func TestPixelPriority(t *testing.T) {
	s := pong.Snapshot{
		BallX:     0,
		BallY:     3,
		BallColor: core.ColorWhite,
		LeftRow:   0,
		RightRow:  10,
		Score:     pong.Score{Left: 2, Right: 1},
		Overlay:   pong.OverlayNone,
	}
	d := testDriver(s, NewVirtualSink(core.DefaultGeometry()))

	tests := []struct {
		name     string
		x, y     int
		expected core.Color
	}{
		{"paddle beats ball", 0, 3, core.ColorGreen},
		{"left paddle top", 0, 7, core.ColorGreen},
		{"above left paddle", 0, 8, core.ColorOff},
		{"right paddle", 63, 10, core.ColorGreen},
		{"below right paddle", 63, 9, core.ColorOff},
		{"left bar", 2, 3, core.ColorYellow},
		{"left bar second column", 3, 0, core.ColorYellow},
		{"left bar top", 2, 4, core.ColorOff},
		{"right bar", 60, 1, core.ColorTeal},
		{"right bar second column", 61, 0, core.ColorTeal},
		{"right bar top", 60, 2, core.ColorOff},
		{"empty", 30, 30, core.ColorOff},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := d.Pixel(s, tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Pixel(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestPlayfieldRects(t *testing.T) {
	s := pong.Snapshot{LeftRow: 3, RightRow: 24, Score: pong.Score{Left: 4, Right: 40}}
	d := testDriver(s, NewVirtualSink(core.DefaultGeometry()))

	tests := []struct {
		name     string
		got      core.Rect
		expected core.Rect
	}{
		{"left paddle", d.PaddleRect(pong.SideLeft, s.LeftRow), core.NewRect(0, 3, 1, 8)},
		{"right paddle", d.PaddleRect(pong.SideRight, s.RightRow), core.NewRect(63, 24, 1, 8)},
		{"left bar", d.BarRect(s, pong.SideLeft), core.NewRect(2, 0, 2, 8)},
		{"right bar capped", d.BarRect(s, pong.SideRight), core.NewRect(60, 0, 2, 32)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("rect = %+v, expected %+v", tc.got, tc.expected)
			}
		})
	}

	if top := d.PaddleRect(pong.SideRight, s.RightRow).Top(); top != 32 {
		t.Errorf("right paddle Top() = %d, expected 32", top)
	}
	if right := d.BarRect(s, pong.SideLeft).Right(); right != 4 {
		t.Errorf("left bar Right() = %d, expected 4", right)
	}
}

func TestPixelBarBeatsBall(t *testing.T) {
	s := pong.Snapshot{BallX: 2, BallY: 0, BallColor: core.ColorRed, Score: pong.Score{Left: 1}}
	d := testDriver(s, NewVirtualSink(core.DefaultGeometry()))

	if c := d.Pixel(s, 2, 0); c != core.ColorYellow {
		t.Errorf("Pixel(2, 0) = %v, expected score bar", c)
	}

	s.Overlay = pong.OverlayScoreFlash
	s.FlashOn = false
	if c := d.Pixel(s, 2, 0); c != core.ColorRed {
		t.Errorf("Pixel(2, 0) with bars blinked off = %v, expected ball", c)
	}
}

func TestPixelBarCappedAtHeight(t *testing.T) {
	s := pong.Snapshot{BallX: 40, BallY: 40, Score: pong.Score{Right: 100}}
	d := testDriver(s, NewVirtualSink(core.DefaultGeometry()))

	if c := d.Pixel(s, 60, 31); c != core.ColorTeal {
		t.Errorf("Pixel(60, 31) = %v, expected full-height bar", c)
	}
}

func TestPixelIdleBanner(t *testing.T) {
	s := pong.Snapshot{BallX: 32, BallY: 16, BallColor: core.ColorWhite, LeftRow: 24, RightRow: 24, Overlay: pong.OverlayIdleText}
	d := testDriver(s, NewVirtualSink(core.DefaultGeometry()))

	// Top-left corner of the scaled "P"
	if c := d.Pixel(s, 17, 20); c != core.ColorWhite {
		t.Errorf("Pixel(17, 20) = %v, expected banner", c)
	}
	// Hole in the lower stem of "P"
	if c := d.Pixel(s, 19, 11); c != core.ColorOff {
		t.Errorf("Pixel(19, 11) = %v, expected off", c)
	}

	s.Overlay = pong.OverlayNone
	if c := d.Pixel(s, 17, 20); c != core.ColorOff {
		t.Errorf("Pixel(17, 20) without overlay = %v, expected off", c)
	}
}

func TestFrameFlipsRows(t *testing.T) {
	tests := []struct {
		simY     int
		panelRow int
	}{
		{31, 0},
		{16, 15},
		{15, 16},
		{0, 31},
	}

	for _, tc := range tests {
		s := pong.Snapshot{BallX: 20, BallY: tc.simY, BallColor: core.ColorBlue, LeftRow: 24, RightRow: 24}
		sink := NewVirtualSink(core.DefaultGeometry())
		d := testDriver(s, sink)

		if err := d.Frame(); err != nil {
			t.Fatalf("Frame() = %v", err)
		}
		f := sink.Latest()
		if f.Get(20, tc.panelRow) != core.ColorBlue {
			t.Errorf("ball at sim y=%d not on panel row %d:\n%s", tc.simY, tc.panelRow, f)
		}
		if sink.Frames() != 1 {
			t.Errorf("Frames() = %d, expected 1", sink.Frames())
		}
	}
}

func TestFrameOnHUB75(t *testing.T) {
	port := &recordingPort{}
	d := testDriver(pong.Snapshot{}, NewHUB75Sink(port, 0))

	if err := d.Frame(); err != nil {
		t.Fatalf("Frame() = %v", err)
	}

	perLine := 64*3 + 6
	if len(port.ops) != 16*perLine {
		t.Errorf("port ops = %d, expected %d", len(port.ops), 16*perLine)
	}

	// The last operation of every line unblanks
	for line := range 16 {
		op := port.ops[(line+1)*perLine-1]
		if op.set || op.mask != BitOE {
			t.Errorf("line %d ends with %+v, expected OE clear", line, op)
		}
		addr := port.ops[line*perLine+64*3+2]
		if !addr.set || addr.mask != uint32(line)<<3 {
			t.Errorf("line %d selects %+v, expected address %d", line, addr, line)
		}
	}
}

type failingSink struct {
	*VirtualSink
}

func (f *failingSink) PresentRow() error {
	return errors.New("gpio gone")
}

func TestRunStopsOnSinkError(t *testing.T) {
	sink := &failingSink{VirtualSink: NewVirtualSink(core.DefaultGeometry())}
	d := testDriver(pong.Snapshot{}, sink)

	if err := d.Run(context.Background()); err == nil {
		t.Error("Run() expected error from sink")
	}
}

type frameCounter struct {
	n int
}

func (c *frameCounter) FrameDone(time.Duration) {
	c.n++
}

func TestRunPacedUntilCancel(t *testing.T) {
	sink := NewVirtualSink(core.DefaultGeometry())
	counter := &frameCounter{}
	d := NewDriver(fixedSnapshot(pong.Snapshot{}), sink, Options{
		Geometry:     core.DefaultGeometry(),
		BarUnit:      2,
		MaxFrameRate: 100,
		Observer:     counter,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run() = %v, expected nil on cancel", err)
	}
	if counter.n == 0 || counter.n > 20 {
		t.Errorf("frames in 100ms at 100fps = %d", counter.n)
	}
	if sink.Frames() != uint64(counter.n) {
		t.Errorf("sink frames = %d, observer frames = %d", sink.Frames(), counter.n)
	}
}
