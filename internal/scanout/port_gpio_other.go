//go:build !linux

package scanout

import "errors"

// GPIOPort is only available on Linux.
type GPIOPort struct{}

// NewGPIOPort always fails on this platform.
func NewGPIOPort(chip string, offsets []int) (*GPIOPort, error) {
	return nil, errors.New("scanout: gpio character devices need linux")
}

// Set is a no-op.
func (p *GPIOPort) Set(mask uint32) error { return nil }

// Clear is a no-op.
func (p *GPIOPort) Clear(mask uint32) error { return nil }

// Close is a no-op.
func (p *GPIOPort) Close() error { return nil }
