package scanout

import (
	"sync/atomic"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

// VirtualSink is a PixelSink that emulates the panel in memory. Completed
// frames are published without locking and can be read from any goroutine.
// Frames use panel coordinates: row 0 is the top row.
type VirtualSink struct {
	height int
	back   *core.Frame
	line   int
	front  atomic.Pointer[core.Frame]
	frames atomic.Uint64
}

// NewVirtualSink creates a sink for the given geometry.
func NewVirtualSink(geom core.Geometry) *VirtualSink {
	v := &VirtualSink{
		height: geom.Height,
		back:   core.NewFrame(geom.Width, geom.Height),
	}
	v.front.Store(core.NewFrame(geom.Width, geom.Height))
	return v
}

// SetRow selects the scan line being written.
func (v *VirtualSink) SetRow(line int) {
	v.line = line
}

// SetPixel writes both halves of one column.
func (v *VirtualSink) SetPixel(col int, px PixelPair) {
	v.back.Set(col, v.line, px.Upper())
	v.back.Set(col, v.line+v.height/2, px.Lower())
}

// PresentRow publishes the frame once its last scan line is written.
func (v *VirtualSink) PresentRow() error {
	if v.line == v.height/2-1 {
		v.front.Store(v.back.Clone())
		v.frames.Add(1)
	}
	return nil
}

// Latest returns the most recent complete frame. The caller must not
// modify it.
func (v *VirtualSink) Latest() *core.Frame {
	return v.front.Load()
}

// Frames returns the number of frames published.
func (v *VirtualSink) Frames() uint64 {
	return v.frames.Load()
}
