package overlay

import (
	"image/color"
	"sync/atomic"
)

// Palette hands out colours from a fixed list, cycling with wraparound. The cursor
// is shared by everything that draws from the same palette; collisions after the
// list is exhausted are expected.
type Palette struct {
	colors []color.RGBA
	next   atomic.Uint64
}

// NewPalette creates a palette over the given colours.
func NewPalette(colors ...color.RGBA) *Palette {
	return &Palette{colors: append([]color.RGBA(nil), colors...)}
}

// Next returns the colour at the cursor and advances it. An empty palette yields white.
func (p *Palette) Next() color.RGBA {
	if len(p.colors) == 0 {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	i := p.next.Add(1) - 1
	return p.colors[i%uint64(len(p.colors))]
}

// Len returns the number of distinct colours.
func (p *Palette) Len() int {
	return len(p.colors)
}
