package graphics

import (
	"fmt"
	"sync/atomic"

	"github.com/nvr-ai/go-overlay/common"
	"github.com/nvr-ai/go-overlay/overlay"
)

// BoxGraphic outlines a detected region and writes its label under the bottom-left
// corner.
type BoxGraphic struct {
	identity
	overlay *overlay.Overlay
	style   overlay.Style
	box     atomic.Pointer[common.BoundingBox]
}

var _ overlay.TrackedGraphic[common.BoundingBox] = (*BoxGraphic)(nil)

// NewBoxGraphic creates a box annotation that requests redraws from ov.
func NewBoxGraphic(ov *overlay.Overlay, style overlay.Style) *BoxGraphic {
	return &BoxGraphic{overlay: ov, style: style}
}

// Style returns the style fixed at construction.
func (g *BoxGraphic) Style() overlay.Style {
	return g.style
}

// Box returns a copy of the latest payload and false if none has arrived yet.
func (g *BoxGraphic) Box() (common.BoundingBox, bool) {
	b := g.box.Load()
	if b == nil {
		return common.BoundingBox{}, false
	}
	return *b, true
}

// UpdateItem replaces the region from the most recent frame and requests a redraw.
func (g *BoxGraphic) UpdateItem(item common.BoundingBox) {
	g.box.Store(&item)
	g.overlay.Invalidate()
}

// Draw maps the region edge by edge, draws its outline and the label.
func (g *BoxGraphic) Draw(c overlay.Canvas, m overlay.Mapper) {
	box := g.box.Load()
	if box == nil {
		return
	}

	r := m.TranslateRect(*box)
	c.DrawRect(r.X1, r.Y1, r.X2, r.Y2, g.style.Outline())

	label := box.Label
	if label == "" {
		label = fmt.Sprintf("id: %d", g.ID())
	}
	c.DrawText(label, r.X1, r.Y2, g.style.Filled())
}
