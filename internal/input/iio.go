package input

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

// IIOSlider reads a slide potentiometer through a Linux IIO ADC channel,
// such as /sys/bus/iio/devices/iio:device0/in_voltage0_raw.
type IIOSlider struct {
	path      string
	fullScale float64
	last      atomic.Uint64 // Last good position, float64 bits
	failures  atomic.Uint64
}

// NewIIOSlider opens an ADC channel. fullScale is the raw reading that
// corresponds to the top of the slider. The channel is read once to
// check that it exists.
func NewIIOSlider(path string, fullScale int) (*IIOSlider, error) {
	if fullScale <= 0 {
		return nil, fmt.Errorf("input: full scale must be positive, got %d", fullScale)
	}
	s := &IIOSlider{path: path, fullScale: float64(fullScale)}
	pos, err := s.Read()
	if err != nil {
		return nil, err
	}
	s.store(pos)
	return s, nil
}

// Read samples the channel.
func (s *IIOSlider) Read() (float64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("input: read %s: %w", s.path, err)
	}
	raw, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("input: parse %s: %w", s.path, err)
	}
	return core.ClampF(float64(raw)/s.fullScale, 0, 1), nil
}

// Position returns the current position, or the last good one if the
// channel cannot be read.
func (s *IIOSlider) Position() float64 {
	pos, err := s.Read()
	if err != nil {
		s.failures.Add(1)
		return s.load()
	}
	s.store(pos)
	return pos
}

// Failures returns how many reads have failed.
func (s *IIOSlider) Failures() uint64 {
	return s.failures.Load()
}

func (s *IIOSlider) store(pos float64) {
	s.last.Store(math.Float64bits(pos))
}

func (s *IIOSlider) load() float64 {
	return math.Float64frombits(s.last.Load())
}
