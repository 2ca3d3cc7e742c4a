//go:build !linux

package input

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

// ButtonWatcher is only available on Linux.
type ButtonWatcher struct{}

// WatchButtons always fails on this platform.
func WatchButtons(chip string, buttons ButtonLines, debounce time.Duration, send EdgeSink, logger *log.Logger) (*ButtonWatcher, error) {
	return nil, errors.New("input: gpio buttons need linux")
}

// Close is a no-op.
func (w *ButtonWatcher) Close() error { return nil }
