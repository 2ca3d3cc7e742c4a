package scanout

import "github.com/vovakirdan/matrix-pong/internal/core"

// glyphHeight and glyphWidth are the dimensions of the built-in font.
const (
	glyphWidth  = 3
	glyphHeight = 5
)

// font is a 3x5 font, top row first. Only the letters the banner needs are
// defined; others render blank.
var font = map[rune][glyphHeight]string{
	'P': {"###", "#.#", "###", "#..", "#.."},
	'O': {"###", "#.#", "#.#", "#.#", "###"},
	'N': {"##.", "#.#", "#.#", "#.#", "#.#"},
	'G': {"###", "#..", "#.#", "#.#", "###"},
}

// Bitmap is a small one-bit image placed at a fixed origin on the matrix
// (bottom-left corner, simulation coordinates). Rows are indexed by offset
// from the origin, bottom row first, one word per row.
type Bitmap struct {
	core.Rect
	rows []uint64
}

// NewTextBitmap renders text with the built-in font scaled by scale. The
// bottom-left corner of the first glyph is at (x, y). The bitmap is sized to
// the text; columns past 64 are dropped.
func NewTextBitmap(text string, x, y, scale int) *Bitmap {
	if scale < 1 {
		scale = 1
	}
	runes := []rune(text)
	w := max(len(runes)*(glyphWidth+1)-1, 0) * scale
	b := &Bitmap{
		Rect: core.NewRect(x, y, min(w, 64), glyphHeight*scale),
		rows: make([]uint64, glyphHeight*scale),
	}
	for i, ch := range runes {
		glyph, ok := font[ch]
		if !ok {
			continue
		}
		gx := i * (glyphWidth + 1) * scale
		for r, line := range glyph {
			for c := range glyphWidth {
				if line[c] != '#' {
					continue
				}
				for dy := range scale {
					for dx := range scale {
						b.set(gx+c*scale+dx, (glyphHeight-1-r)*scale+dy)
					}
				}
			}
		}
	}
	return b
}

// set lights the pixel at offset (dx, dy) from the origin.
func (b *Bitmap) set(dx, dy int) {
	if dx < 0 || dx >= b.W || dy < 0 || dy >= b.H {
		return
	}
	b.rows[dy] |= 1 << uint(dx)
}

// Lit reports whether the matrix pixel at (x, y) is set.
func (b *Bitmap) Lit(x, y int) bool {
	if b == nil || !b.Contains(x, y) {
		return false
	}
	return b.rows[y-b.Y]>>uint(x-b.X)&1 == 1
}

// IdleBanner returns the "PONG" banner centred on a width x height matrix.
func IdleBanner(width, height int) *Bitmap {
	const (
		text  = "PONG"
		scale = 2
	)
	textW := (len(text)*(glyphWidth+1) - 1) * scale
	textH := glyphHeight * scale
	return NewTextBitmap(text, (width-textW)/2, (height-textH)/2, scale)
}
