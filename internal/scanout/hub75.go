package scanout

import (
	"fmt"
	"time"
)

// HUB75 port bit layout. OE is active low: setting it blanks the panel.
const (
	BitLAT uint32 = 1 << 0
	BitOE  uint32 = 1 << 1
	BitCLK uint32 = 1 << 2

	addrShift  = 3
	upperShift = 8
	lowerShift = 11

	AddrMask  uint32 = 0x1F << addrShift
	ColorBits uint32 = 0x3F << upperShift // Upper and lower colour bits
	PortWidth        = 14                 // Number of bits in use
)

// Port is a parallel output port with atomic set and clear of bit masks,
// like a microcontroller's set/clear registers.
type Port interface {
	Set(mask uint32) error
	Clear(mask uint32) error
}

// HUB75Sink implements PixelSink with the HUB75 shift-register protocol.
type HUB75Sink struct {
	port  Port
	line  int
	dwell time.Duration
	err   error // First port error since the last PresentRow
}

// NewHUB75Sink creates a sink writing to port. dwell is how long each line
// stays lit after it is presented.
func NewHUB75Sink(port Port, dwell time.Duration) *HUB75Sink {
	return &HUB75Sink{port: port, dwell: dwell}
}

// SetRow selects the scan line that PresentRow will latch.
func (s *HUB75Sink) SetRow(line int) {
	s.line = line
}

// SetPixel puts the colour bits on the data lines and pulses the clock.
func (s *HUB75Sink) SetPixel(col int, px PixelPair) {
	bits := (uint32(px) << upperShift) & ColorBits
	s.set(bits)
	s.set(BitCLK)
	s.clear(bits | BitCLK)
}

// PresentRow blanks the panel, selects the row, latches the shifted data
// and unblanks.
func (s *HUB75Sink) PresentRow() error {
	s.set(BitOE)
	s.clear(AddrMask)
	s.set((uint32(s.line) << addrShift) & AddrMask)
	s.set(BitLAT)
	s.clear(BitLAT)
	s.clear(BitOE)
	if s.dwell > 0 {
		time.Sleep(s.dwell)
	}

	err := s.err
	s.err = nil
	if err != nil {
		return fmt.Errorf("hub75 line %d: %w", s.line, err)
	}
	return nil
}

func (s *HUB75Sink) set(mask uint32) {
	if err := s.port.Set(mask); err != nil && s.err == nil {
		s.err = err
	}
}

func (s *HUB75Sink) clear(mask uint32) {
	if err := s.port.Clear(mask); err != nil && s.err == nil {
		s.err = err
	}
}

// portLevels expands port state into one 0/1 level per line, bit i into
// levels[i].
func portLevels(state uint32, levels []int) {
	for i := range levels {
		levels[i] = int((state >> uint(i)) & 1)
	}
}
