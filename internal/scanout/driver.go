package scanout

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/matrix-pong/internal/core"
	"github.com/vovakirdan/matrix-pong/internal/pong"
)

// Column layout of the fixed playfield elements.
const (
	leftBarCol  = 2 // First column of the left score bar
	rightBarGap = 4 // Right score bar starts this many columns from the right edge
	barWidth    = 2
)

// Snapshotter provides the state to draw. pong.Table implements it.
type Snapshotter interface {
	Snapshot() pong.Snapshot
}

// FrameObserver is told how long each frame took to scan out.
type FrameObserver interface {
	FrameDone(d time.Duration)
}

// Options configures a Driver.
type Options struct {
	Geometry     core.Geometry
	BarUnit      int           // Score bar pixels per point
	MaxFrameRate float64       // Frames per second, 0 = as fast as possible
	Observer     FrameObserver // Optional
	Logger       *log.Logger   // Optional
}

// Driver is the scan-out task. Each frame takes one snapshot and pushes
// every scan line of it into the sink.
type Driver struct {
	src      Snapshotter
	sink     PixelSink
	geom     core.Geometry
	barUnit  int
	banner   *Bitmap
	limiter  *rate.Limiter
	observer FrameObserver
	logger   *log.Logger
}

// NewDriver creates a driver reading from src and writing to sink.
func NewDriver(src Snapshotter, sink PixelSink, opts Options) *Driver {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	d := &Driver{
		src:      src,
		sink:     sink,
		geom:     opts.Geometry,
		barUnit:  opts.BarUnit,
		banner:   IdleBanner(opts.Geometry.Width, opts.Geometry.Height),
		observer: opts.Observer,
		logger:   opts.Logger,
	}
	if opts.MaxFrameRate > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(opts.MaxFrameRate), 1)
	}
	return d
}

// PaddleRect returns the pixels a paddle at row covers on side.
func (d *Driver) PaddleRect(side pong.Side, row int) core.Rect {
	x := 0
	if side == pong.SideRight {
		x = d.geom.Width - 1
	}
	return core.NewRect(x, row, 1, d.geom.PaddleHeight)
}

// BarRect returns the score bar of side in snapshot s. It grows up from
// the bottom row.
func (d *Driver) BarRect(s pong.Snapshot, side pong.Side) core.Rect {
	x := leftBarCol
	if side == pong.SideRight {
		x = d.geom.Width - rightBarGap
	}
	return core.NewRect(x, 0, barWidth, s.BarHeight(side, d.barUnit, d.geom.Height))
}

// Pixel returns the colour of simulation pixel (x, y) for snapshot s.
// Paddles win over score bars, score bars over the ball, and the ball
// over the idle banner.
func (d *Driver) Pixel(s pong.Snapshot, x, y int) core.Color {
	if d.PaddleRect(pong.SideLeft, s.LeftRow).Contains(x, y) ||
		d.PaddleRect(pong.SideRight, s.RightRow).Contains(x, y) {
		return core.ColorGreen
	}

	if s.BarsVisible() {
		if d.BarRect(s, pong.SideLeft).Contains(x, y) {
			return core.ColorYellow
		}
		if d.BarRect(s, pong.SideRight).Contains(x, y) {
			return core.ColorTeal
		}
	}

	if x == s.BallX && y == s.BallY {
		return s.BallColor
	}

	if s.Overlay == pong.OverlayIdleText && d.banner.Lit(x, y) {
		return core.ColorWhite
	}
	return core.ColorOff
}

// Frame scans out one complete frame. Scan line r carries panel row r in
// the upper half and panel row r+H/2 in the lower half; the panel counts
// rows from the top while the simulation counts from the bottom.
func (d *Driver) Frame() error {
	s := d.src.Snapshot()
	h := d.geom.Height

	for line := range d.geom.ScanLines() {
		upperY := h - 1 - line
		lowerY := h/2 - 1 - line

		d.sink.SetRow(line)
		for col := range d.geom.Width {
			d.sink.SetPixel(col, Pair(d.Pixel(s, col, upperY), d.Pixel(s, col, lowerY)))
		}
		if err := d.sink.PresentRow(); err != nil {
			return fmt.Errorf("scanout: present line %d: %w", line, err)
		}
	}
	return nil
}

// Run scans out frames until ctx is cancelled or the sink fails.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info("scan-out task started", "lines", d.geom.ScanLines(), "paced", d.limiter != nil)
	for {
		if d.limiter != nil {
			// Wait only fails when ctx ends before the next token.
			if err := d.limiter.Wait(ctx); err != nil {
				d.logger.Info("scan-out task stopped")
				return nil
			}
		}
		if err := ctx.Err(); err != nil {
			d.logger.Info("scan-out task stopped")
			return nil
		}

		start := time.Now()
		if err := d.Frame(); err != nil {
			d.logger.Error("scan-out failed", "err", err)
			return err
		}
		if d.observer != nil {
			d.observer.FrameDone(time.Since(start))
		}
	}
}
