//go:build linux

package scanout

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOPort is a Port backed by one multi-line GPIO request. Port bit i is
// line i of the request, and every Set or Clear is a single SetValues
// call, so all masked bits change together.
type GPIOPort struct {
	lines  *gpiocdev.Lines
	state  uint32
	levels []int
}

// NewGPIOPort requests the given chip lines as outputs, low. offsets[i]
// is the line driven by port bit i.
func NewGPIOPort(chip string, offsets []int) (*GPIOPort, error) {
	if len(offsets) != PortWidth {
		return nil, fmt.Errorf("scanout: need %d gpio lines, got %d", PortWidth, len(offsets))
	}
	levels := make([]int, len(offsets))
	lines, err := gpiocdev.RequestLines(chip, offsets,
		gpiocdev.AsOutput(levels...),
		gpiocdev.WithConsumer("matrixpong"),
	)
	if err != nil {
		return nil, fmt.Errorf("scanout: request %s lines %v: %w", chip, offsets, err)
	}
	return &GPIOPort{lines: lines, levels: levels}, nil
}

// Set drives the masked bits high.
func (p *GPIOPort) Set(mask uint32) error {
	return p.write(p.state | mask)
}

// Clear drives the masked bits low.
func (p *GPIOPort) Clear(mask uint32) error {
	return p.write(p.state &^ mask)
}

// write drives every line to next in one call. Writes that change nothing
// are skipped.
func (p *GPIOPort) write(next uint32) error {
	if p.lines == nil {
		return errPortClosed
	}
	if next == p.state {
		return nil
	}
	portLevels(next, p.levels)
	if err := p.lines.SetValues(p.levels); err != nil {
		return err
	}
	p.state = next
	return nil
}

// Close blanks the panel and releases the lines.
func (p *GPIOPort) Close() error {
	if p.lines == nil {
		return nil
	}
	errs := []error{p.write(BitOE)}
	errs = append(errs, p.lines.Close())
	p.lines = nil
	return errors.Join(errs...)
}

var errPortClosed = errors.New("scanout: gpio port closed")
