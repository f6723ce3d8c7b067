package graphics

import (
	"fmt"
	"sync/atomic"

	"github.com/nvr-ai/go-overlay/common"
	"github.com/nvr-ai/go-overlay/overlay"
)

const (
	// PositionRadius is the radius of the dot marking a face centre, in destination pixels.
	PositionRadius = 10.0
	// IDOffsetX shifts the id label left of the centre.
	IDOffsetX = -50.0
	// IDOffsetY shifts the id label below the centre.
	IDOffsetY = 50.0
)

// CentroidGraphic marks the centre of a face, labels it with its id and surrounds it
// with an ellipse sized to the face.
type CentroidGraphic struct {
	identity
	overlay *overlay.Overlay
	style   overlay.Style
	face    atomic.Pointer[common.Face]
}

var _ overlay.TrackedGraphic[common.Face] = (*CentroidGraphic)(nil)

// NewCentroidGraphic creates a centroid annotation that requests redraws from ov.
func NewCentroidGraphic(ov *overlay.Overlay, style overlay.Style) *CentroidGraphic {
	return &CentroidGraphic{overlay: ov, style: style}
}

// Style returns the style fixed at construction.
func (g *CentroidGraphic) Style() overlay.Style {
	return g.style
}

// Face returns a copy of the latest payload and false if none has arrived yet.
func (g *CentroidGraphic) Face() (common.Face, bool) {
	f := g.face.Load()
	if f == nil {
		return common.Face{}, false
	}
	return *f, true
}

// UpdateItem replaces the face from the most recent frame and requests a redraw.
func (g *CentroidGraphic) UpdateItem(item common.Face) {
	g.face.Store(&item)
	g.overlay.Invalidate()
}

// Draw renders the centre dot, the id label and the surrounding ellipse.
func (g *CentroidGraphic) Draw(c overlay.Canvas, m overlay.Mapper) {
	face := g.face.Load()
	if face == nil {
		return
	}

	cx, cy := m.TranslatePoint(face.Center())
	c.DrawCircle(cx, cy, PositionRadius, g.style.Filled())
	c.DrawText(fmt.Sprintf("id: %d", g.ID()), cx+IDOffsetX, cy+IDOffsetY, g.style.Filled())

	// Half extents are sizes, not positions: scale them without translating.
	xOffset := m.ScaleX(face.Width / 2)
	yOffset := m.ScaleY(face.Height / 2)
	c.DrawEllipse(cx-xOffset, cy-yOffset, cx+xOffset, cy+yOffset, g.style.Outline())
}
