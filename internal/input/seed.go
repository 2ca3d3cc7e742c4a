package input

import (
	"math"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

// seedSamples is the number of analog readings folded into a seed.
const seedSamples = 8

// SeedFromAnalog builds a random seed from a floating analog input. Each
// reading is scaled to 0..255 and contributes the bit matching its sample
// index, so the noise in the low bits decides the seed.
func SeedFromAnalog(src core.PositionSource) int64 {
	var seed int64
	for i := range seedSamples {
		pos := src.Position()
		if math.IsNaN(pos) {
			pos = 0
		}
		v := int64(math.Round(core.ClampF(pos, 0, 1) * 255))
		seed |= v & (1 << i)
	}
	return seed
}
