package core

import (
	"strings"
	"testing"
)

func TestNewFrame(t *testing.T) {
	f := NewFrame(64, 32)

	if f.Width() != 64 {
		t.Errorf("Width() = %d, expected 64", f.Width())
	}
	if f.Height() != 32 {
		t.Errorf("Height() = %d, expected 32", f.Height())
	}

	for y := range f.Height() {
		for x := range f.Width() {
			if f.Get(x, y) != ColorOff {
				t.Fatalf("new frame should be dark, got %v at (%d, %d)", f.Get(x, y), x, y)
			}
		}
	}
}

func TestFrameSetGet(t *testing.T) {
	f := NewFrame(10, 10)

	f.Set(5, 5, ColorRed)
	if f.Get(5, 5) != ColorRed {
		t.Errorf("Get(5, 5) = %v, expected red", f.Get(5, 5))
	}

	// Bits above the channel mask are dropped
	f.Set(1, 1, Color(0xF0)|ColorBlue)
	if f.Get(1, 1) != ColorBlue {
		t.Errorf("Get(1, 1) = %v, expected blue", f.Get(1, 1))
	}

	// Out of bounds should be silent
	f.Set(-1, 0, ColorWhite)
	f.Set(100, 0, ColorWhite)
	f.Set(0, -1, ColorWhite)
	f.Set(0, 100, ColorWhite)

	if f.Get(-1, 0) != ColorOff || f.Get(0, 100) != ColorOff {
		t.Error("out of bounds Get should return ColorOff")
	}
}

func TestFrameCloneIsIndependent(t *testing.T) {
	f := NewFrame(4, 2)
	f.Set(0, 0, ColorGreen)

	c := f.Clone()
	f.Set(0, 0, ColorRed)

	if c.Get(0, 0) != ColorGreen {
		t.Errorf("clone changed with original: got %v", c.Get(0, 0))
	}
}

func TestFrameString(t *testing.T) {
	f := NewFrame(3, 2)
	f.Set(0, 0, ColorGreen)
	f.Set(2, 1, ColorWhite)

	expected := "G..\n..W"
	if f.String() != expected {
		t.Errorf("String() = %q, expected %q", f.String(), expected)
	}

	if f.Row(-1) != "..." {
		t.Errorf("out of bounds Row() = %q, expected dots", f.Row(-1))
	}
	if !strings.HasPrefix(f.Row(0), "G") {
		t.Errorf("Row(0) = %q", f.Row(0))
	}
}

func TestColorNames(t *testing.T) {
	if ColorYellow != ColorRed|ColorGreen {
		t.Error("yellow should combine red and green")
	}
	if !ColorWhite.Has(ColorTeal) {
		t.Error("white should contain teal")
	}
	if ColorMiss.String() != "red" {
		t.Errorf("ColorMiss.String() = %q, expected red", ColorMiss.String())
	}
	if EdgePlayerChange.String() != "PlayerChange" {
		t.Errorf("EdgePlayerChange.String() = %q", EdgePlayerChange.String())
	}
}
