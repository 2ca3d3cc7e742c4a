package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/matrix-pong/internal/input"
	"github.com/vovakirdan/matrix-pong/internal/scanout"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive the LED matrix over GPIO",
	Long: `Run the game on the real hardware.

The HUB75 connector is driven from the GPIO lines listed under
hardware.lines, the paddles are read from the IIO ADC channels under
input, and the three buttons raise edges on input.button_chip.

Buttons:
  reset        - New serve, back to idle (score kept)
  start/pause  - Start from idle, then pause/resume
  player       - Practice mode on/off while running

Examples:
  matrixpong run
  matrixpong run --difficulty easy --metrics :9100
  matrixpong run --config /etc/matrixpong.yaml --db /var/lib/matrixpong/points.db`,
	Run: runRun,
}

func runRun(_ *cobra.Command, _ []string) {
	if err := runHardware(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runHardware() error {
	a, err := newApp("run", os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()
	cfg := a.cfg

	left, err := input.NewIIOSlider(cfg.Input.LeftSlider, cfg.Input.FullScale)
	if err != nil {
		return err
	}
	right, err := input.NewIIOSlider(cfg.Input.RightSlider, cfg.Input.FullScale)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		noise, err := input.NewIIOSlider(cfg.Input.SeedSource, cfg.Input.FullScale)
		if err != nil {
			return err
		}
		seed = input.SeedFromAnalog(noise)
	}

	port, err := scanout.NewGPIOPort(cfg.Hardware.Chip, cfg.Hardware.Lines)
	if err != nil {
		return err
	}
	defer port.Close()

	sim := a.simulation(seed, left, right)
	sink := scanout.NewHUB75Sink(port, cfg.Display.RowDwell.Std())
	drv := a.driver(sim, sink, cfg.Display.MaxFrameRate)

	buttons, err := input.WatchButtons(cfg.Input.ButtonChip, input.ButtonLines{
		Reset:        cfg.Input.ResetLine,
		Pause:        cfg.Input.PauseLine,
		PlayerChange: cfg.Input.PlayerLine,
	}, cfg.Input.Debounce.Std(), sim.Send, a.logger)
	if err != nil {
		return err
	}
	defer buttons.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("running on hardware",
		"chip", cfg.Hardware.Chip,
		"seed", seed,
		"difficulty", cfg.Difficulty,
	)

	g, gctx := errgroup.WithContext(ctx)
	a.start(gctx, g, sim, drv)
	err = g.Wait()

	if left.Failures()+right.Failures() > 0 {
		a.logger.Warn("slider read failures", "left", left.Failures(), "right", right.Failures())
	}
	score := sim.Table().Snapshot().Score
	a.logger.Info("stopped", "left", score.Left, "right", score.Right)
	return err
}
