//go:build linux

package input

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/warthog618/go-gpiocdev"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

// ButtonWatcher turns falling edges on active-low button lines into game
// edges. Debouncing is done by the kernel.
type ButtonWatcher struct {
	lines []*gpiocdev.Line
}

// WatchButtons requests the button lines with pull-ups and starts
// delivering edges to send. Edges the game cannot accept are dropped.
func WatchButtons(chip string, buttons ButtonLines, debounce time.Duration, send EdgeSink, logger *log.Logger) (*ButtonWatcher, error) {
	w := &ButtonWatcher{}
	handler := func(evt gpiocdev.LineEvent) {
		if evt.Type != gpiocdev.LineEventFallingEdge {
			return
		}
		edge := buttons.Edge(evt.Offset)
		if edge == core.EdgeNone {
			return
		}
		if !send(edge) {
			logger.Warn("button edge dropped", "edge", edge)
		}
	}

	for _, offset := range buttons.Offsets() {
		line, err := gpiocdev.RequestLine(chip, offset,
			gpiocdev.AsInput,
			gpiocdev.WithPullUp,
			gpiocdev.WithFallingEdge,
			gpiocdev.WithDebounce(debounce),
			gpiocdev.WithConsumer("matrixpong"),
			gpiocdev.WithEventHandler(handler),
		)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("input: request %s line %d: %w", chip, offset, err)
		}
		w.lines = append(w.lines, line)
	}
	logger.Info("watching buttons", "chip", chip, "lines", buttons.Offsets(), "debounce", debounce)
	return w, nil
}

// Close releases the button lines.
func (w *ButtonWatcher) Close() error {
	var errs []error
	for _, line := range w.lines {
		errs = append(errs, line.Close())
	}
	w.lines = nil
	return errors.Join(errs...)
}
