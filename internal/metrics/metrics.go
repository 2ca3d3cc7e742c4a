// Package metrics exports game and scan-out counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/matrix-pong/internal/pong"
)

// Metrics holds the collectors. Label values are bounded: event names and
// the two sides only.
type Metrics struct {
	reg *prometheus.Registry

	steps         prometheus.Counter
	events        *prometheus.CounterVec
	points        *prometheus.CounterVec
	frames        prometheus.Counter
	frameDuration prometheus.Histogram
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		steps: factory.NewCounter(prometheus.CounterOpts{
			Name: "matrixpong_physics_steps_total",
			Help: "Physics steps executed",
		}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "matrixpong_ball_events_total",
			Help: "Wall bounces, paddle hits and misses",
		}, []string{"event"}),
		points: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "matrixpong_points_total",
			Help: "Points won per side",
		}, []string{"scorer"}),
		frames: factory.NewCounter(prometheus.CounterOpts{
			Name: "matrixpong_frames_total",
			Help: "Frames scanned out",
		}),
		frameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "matrixpong_frame_duration_seconds",
			Help:    "Time to scan out one frame",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05},
		}),
	}
}

// Stepped counts a physics step and its outcome.
func (m *Metrics) Stepped(out pong.Outcome) {
	m.steps.Inc()
	if out.Event != pong.EventNone {
		m.events.WithLabelValues(out.Event.String()).Inc()
	}
}

// Scored counts a finished point.
func (m *Metrics) Scored(ev pong.PointEvent) {
	m.points.WithLabelValues(ev.Scorer.String()).Inc()
}

// FrameDone records a scanned-out frame.
func (m *Metrics) FrameDone(d time.Duration) {
	m.frames.Inc()
	m.frameDuration.Observe(d.Seconds())
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics listener started", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics: listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics: shutdown: %w", err)
		}
		logger.Info("metrics listener stopped")
		return nil
	}
}
