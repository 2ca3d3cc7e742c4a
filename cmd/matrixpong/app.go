package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/matrix-pong/internal/config"
	"github.com/vovakirdan/matrix-pong/internal/core"
	"github.com/vovakirdan/matrix-pong/internal/metrics"
	"github.com/vovakirdan/matrix-pong/internal/pong"
	"github.com/vovakirdan/matrix-pong/internal/scanout"
	"github.com/vovakirdan/matrix-pong/internal/storage"
)

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (config.Config, string, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, source, err
	}

	name := string(cfg.Difficulty)
	if flagDifficulty != "" {
		name = flagDifficulty
	}
	preset, err := config.ParseDifficulty(name)
	if err != nil {
		return cfg, source, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagMetrics != "" {
		cfg.Metrics.Addr = flagMetrics
	}
	return cfg, source, cfg.Validate()
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "matrixpong",
		Level:           level,
	}), nil
}

// app holds what every front end shares: the configuration, the logger,
// metrics and the optional point log.
type app struct {
	cfg      config.Config
	logger   *log.Logger
	metrics  *metrics.Metrics
	store    *storage.Store
	recorder *storage.Recorder
}

// newApp loads the configuration and opens the point log when one is
// configured. source names the front end in the log ("run", "play", "serve").
func newApp(source string, logOut io.Writer) (*app, error) {
	logger, err := newLogger(logOut)
	if err != nil {
		return nil, err
	}
	cfg, cfgSource, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", "source", cfgSource, "difficulty", cfg.Difficulty)

	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	if cfg.Storage.Path != "" {
		store, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		matchID, err := store.StartMatch(source, time.Now())
		if err != nil {
			store.Close()
			return nil, err
		}
		a.store = store
		a.recorder = storage.NewRecorder(store, matchID, logger.WithPrefix("matrixpong-log"))
		logger.Info("point log opened", "path", cfg.Storage.Path, "match", matchID)
	}
	return a, nil
}

// simulation creates the physics task reading paddles from left and right.
func (a *app) simulation(seed int64, left, right core.PositionSource) *pong.Simulation {
	opts := pong.OptionsFromConfig(a.cfg)
	opts.Seed = seed
	opts.Left = left
	opts.Right = right
	opts.Observer = a.metrics
	opts.Logger = a.logger
	if a.recorder != nil {
		opts.Recorder = a.recorder
	}
	return pong.NewSimulation(opts)
}

// driver creates the scan-out task drawing sim into sink.
func (a *app) driver(sim *pong.Simulation, sink scanout.PixelSink, maxFrameRate float64) *scanout.Driver {
	return scanout.NewDriver(sim.Table(), sink, scanout.Options{
		Geometry:     a.cfg.Geometry.Core(),
		BarUnit:      a.cfg.Display.BarUnit,
		MaxFrameRate: maxFrameRate,
		Observer:     a.metrics,
		Logger:       a.logger,
	})
}

// start runs the physics and scan-out tasks, plus the metrics listener when
// configured, in g.
func (a *app) start(ctx context.Context, g *errgroup.Group, sim *pong.Simulation, drv *scanout.Driver) {
	g.Go(func() error {
		return sim.Run(ctx)
	})
	g.Go(func() error {
		return drv.Run(ctx)
	})
	if a.cfg.Metrics.Addr != "" {
		g.Go(func() error {
			return a.metrics.Serve(ctx, a.cfg.Metrics.Addr, a.logger)
		})
	}
}

// close flushes the point log.
func (a *app) close() {
	if a.recorder != nil {
		a.recorder.Close()
		if n := a.recorder.Dropped(); n > 0 {
			a.logger.Warn("points dropped from the log", "count", n)
		}
	}
	if a.store != nil {
		a.store.Close()
	}
}

// seedOrTime returns the --seed flag, or the current time when it is unset.
func seedOrTime() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
