package core

// Color is a 3-bit pixel colour as driven onto one sub-row of the matrix.
// Each bit is one LED channel, so channels combine by OR.
type Color uint8

// Channel bits and their combinations.
const (
	ColorOff     Color = 0
	ColorGreen   Color = 1
	ColorBlue    Color = 2
	ColorTeal    Color = ColorGreen | ColorBlue
	ColorRed     Color = 4
	ColorYellow  Color = ColorRed | ColorGreen
	ColorMagenta Color = ColorBlue | ColorRed
	ColorWhite   Color = ColorRed | ColorGreen | ColorBlue
)

// ColorMask selects the three channel bits.
const ColorMask Color = 7

// ColorMiss is the ball colour while a point is over.
const ColorMiss = ColorRed

// Has reports whether every channel in ch is lit in c.
func (c Color) Has(ch Color) bool {
	return c&ch == ch
}

// String returns the colour name.
func (c Color) String() string {
	switch c & ColorMask {
	case ColorOff:
		return "off"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorTeal:
		return "teal"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorMagenta:
		return "magenta"
	default:
		return "white"
	}
}

// Glyph returns a single ASCII character for text dumps of a frame.
func (c Color) Glyph() byte {
	switch c & ColorMask {
	case ColorOff:
		return '.'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	case ColorTeal:
		return 'T'
	case ColorRed:
		return 'R'
	case ColorYellow:
		return 'Y'
	case ColorMagenta:
		return 'M'
	default:
		return 'W'
	}
}
