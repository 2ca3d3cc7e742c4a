package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/matrix-pong/internal/core"
	"github.com/vovakirdan/matrix-pong/internal/input"
	"github.com/vovakirdan/matrix-pong/internal/platform/tui"
	"github.com/vovakirdan/matrix-pong/internal/pong"
	"github.com/vovakirdan/matrix-pong/internal/scanout"
)

// attractPeriod is how often the computer-driven left paddle follows the ball.
const attractPeriod = 20 * time.Millisecond

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an attract-mode game to SSH spectators",
	Long: `Run a self-playing game on a virtual matrix and let anyone watch it
over SSH. Both paddles follow the ball; spectators cannot control it.

Host key handling:
  - Uses server.host_key_path from the configuration (relative to home)
  - The key is generated on first start

Examples:
  matrixpong serve                          # Listen on localhost:23234
  matrixpong serve --ssh :2222              # Listen on port 2222
  matrixpong serve --host-key /etc/mp_key   # Use a specific host key

Spectators connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if err := serveSpectators(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveSpectators() error {
	a, err := newApp("serve", os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()
	cfg := a.cfg
	geom := cfg.Geometry.Core()

	addr := flagSSHAddr
	if addr == "" {
		addr = net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	}
	hostKey := flagHostKey
	if hostKey == "" {
		hostKey = cfg.Server.HostKeyPath
	}

	sliders := input.NewVirtualSliders()
	sink := scanout.NewVirtualSink(geom)
	sim := a.simulation(seedOrTime(), sliders.Left, sliders.Right)

	rate := cfg.Display.MaxFrameRate
	if rate <= 0 {
		rate = virtualFrameRate
	}
	drv := a.driver(sim, sink, rate)

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     addr,
		HostKeyPath: hostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		FPS:         30,
	}, sink, sim.Table(), a.logger.WithPrefix("matrixpong-ssh"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving matrixpong spectators on %s\n", addr)
	fmt.Println("Press Ctrl+C to stop")

	// Leave the idle screen; point-over serves keep the game running.
	sim.Send(core.EdgePause)

	g, gctx := errgroup.WithContext(ctx)
	a.start(gctx, g, sim, drv)
	g.Go(func() error {
		return attract(gctx, sim.Table(), sliders.Left, geom)
	})
	g.Go(func() error {
		return server.ListenAndServe(gctx)
	})
	return g.Wait()
}

// attract moves slider so its paddle follows the ball until ctx is done.
func attract(ctx context.Context, table *pong.Table, slider *input.Slider, geom core.Geometry) error {
	ticker := time.NewTicker(attractPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			slider.Set(attractPosition(table.Snapshot(), geom))
		}
	}
}

// attractPosition returns the slider position that centres a paddle on the
// ball.
func attractPosition(s pong.Snapshot, geom core.Geometry) float64 {
	maxRow := geom.MaxPaddleRow()
	if maxRow <= 0 {
		return 0
	}
	row := float64(s.BallY) - float64(geom.PaddleHeight-1)/2
	return core.ClampF(row/float64(maxRow), 0, 1)
}
