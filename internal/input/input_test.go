package input

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

func TestSliderClamps(t *testing.T) {
	s := NewSlider(0.5)

	tests := []struct {
		set      float64
		expected float64
	}{
		{0.25, 0.25},
		{-1, 0},
		{3, 1},
		{math.NaN(), 0},
	}

	for _, tc := range tests {
		s.Set(tc.set)
		if s.Position() != tc.expected {
			t.Errorf("Set(%v): Position() = %v, expected %v", tc.set, s.Position(), tc.expected)
		}
	}
}

func TestSliderNudgeConcurrent(t *testing.T) {
	s := NewSlider(0)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.Nudge(0.001)
			}
		}()
	}
	wg.Wait()

	if math.Abs(s.Position()-0.8) > 1e-9 {
		t.Errorf("Position() = %v, expected 0.8", s.Position())
	}
	if s.Nudge(5) != 1 {
		t.Error("Nudge() should clamp at 1")
	}
}

func TestVirtualSliders(t *testing.T) {
	v := NewVirtualSliders()
	v.Side(true).Set(0)
	v.Side(false).Set(1)

	if v.Left.Position() != 0 || v.Right.Position() != 1 {
		t.Errorf("positions = %v, %v", v.Left.Position(), v.Right.Position())
	}
}

func TestSeedFromAnalog(t *testing.T) {
	if seed := SeedFromAnalog(core.FixedPosition(1)); seed != 255 {
		t.Errorf("SeedFromAnalog(1) = %d, expected 255", seed)
	}
	if seed := SeedFromAnalog(core.FixedPosition(0)); seed != 0 {
		t.Errorf("SeedFromAnalog(0) = %d, expected 0", seed)
	}

	i := 0
	alternating := core.PositionFunc(func() float64 {
		defer func() { i++ }()
		if i%2 == 0 {
			return 1
		}
		return 0
	})
	if seed := SeedFromAnalog(alternating); seed != 0x55 {
		t.Errorf("SeedFromAnalog(alternating) = %#x, expected 0x55", seed)
	}
}

func TestIIOSlider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in_voltage0_raw")
	write := func(s string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(s), 0644); err != nil {
			t.Fatal(err)
		}
	}

	write("2048\n")
	s, err := NewIIOSlider(path, 4096)
	if err != nil {
		t.Fatalf("NewIIOSlider() error = %v", err)
	}
	if s.Position() != 0.5 {
		t.Errorf("Position() = %v, expected 0.5", s.Position())
	}

	write("9999\n")
	if s.Position() != 1 {
		t.Errorf("Position() over full scale = %v, expected 1", s.Position())
	}

	write("garbage")
	if s.Position() != 1 {
		t.Errorf("Position() on bad read = %v, expected last good value 1", s.Position())
	}
	if s.Failures() != 1 {
		t.Errorf("Failures() = %d, expected 1", s.Failures())
	}
}

func TestIIOSliderErrors(t *testing.T) {
	if _, err := NewIIOSlider(filepath.Join(t.TempDir(), "missing"), 4095); err == nil {
		t.Error("NewIIOSlider() on a missing channel expected error")
	}
	if _, err := NewIIOSlider("/dev/null", 0); err == nil {
		t.Error("NewIIOSlider() with zero full scale expected error")
	}
}

func TestButtonLinesEdge(t *testing.T) {
	b := ButtonLines{Reset: 5, Pause: 6, PlayerChange: 13}

	tests := []struct {
		offset   int
		expected core.Edge
	}{
		{5, core.EdgeReset},
		{6, core.EdgePause},
		{13, core.EdgePlayerChange},
		{7, core.EdgeNone},
	}

	for _, tc := range tests {
		if got := b.Edge(tc.offset); got != tc.expected {
			t.Errorf("Edge(%d) = %v, expected %v", tc.offset, got, tc.expected)
		}
	}
}
