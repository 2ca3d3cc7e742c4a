package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vovakirdan/matrix-pong/internal/input"
	"github.com/vovakirdan/matrix-pong/internal/platform/tui"
	"github.com/vovakirdan/matrix-pong/internal/scanout"
)

// virtualFrameRate paces the virtual panel when the configuration leaves
// scan-out unpaced.
const virtualFrameRate = 60

var (
	flagLogFile string
	flagFPS     int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on a virtual matrix in the terminal",
	Long: `Play on a virtual LED matrix drawn in the terminal.

The keyboard stands in for the sliders and buttons:
  W/S          - Left paddle up/down
  Up/Down      - Right paddle up/down
  P/Space      - Start, then pause/resume
  R            - Reset (new serve, score kept)
  C            - Practice mode on/off (while running)
  Ctrl+S       - Save a text screenshot of the matrix
  ?            - Toggle help
  Q/Ctrl+C     - Quit

The game starts in practice mode: the right paddle follows the ball.

Examples:
  matrixpong play
  matrixpong play --difficulty hard --seed 42
  matrixpong play --log-file /tmp/matrixpong.log`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
	playCmd.Flags().IntVar(&flagFPS, "fps", 30, "Terminal redraw rate")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := playTerminal(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func playTerminal() error {
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	a, err := newApp("play", logOut)
	if err != nil {
		return err
	}
	defer a.close()
	cfg := a.cfg
	geom := cfg.Geometry.Core()

	// The matrix needs a column per pixel and a line per two rows, plus
	// the border, the status line and the help line.
	needW, needH := geom.Width+2, geom.ScanLines()+4
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && (w < needW || h < needH) {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, needW, needH)
	}

	sliders := input.NewVirtualSliders()
	sink := scanout.NewVirtualSink(geom)
	sim := a.simulation(seedOrTime(), sliders.Left, sliders.Right)

	rate := cfg.Display.MaxFrameRate
	if rate <= 0 {
		rate = virtualFrameRate
	}
	drv := a.driver(sim, sink, rate)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	a.start(gctx, g, sim, drv)

	uiErr := tui.RunPlay(tui.PlayConfig{
		Edges:   sim,
		Sliders: sliders,
		Frames:  sink,
		State:   sim.Table(),
		Step:    cfg.Input.KeyboardStep,
		FPS:     flagFPS,
	})

	cancel()
	if err := g.Wait(); err != nil {
		return err
	}
	return uiErr
}
