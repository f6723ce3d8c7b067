package overlay

import "github.com/nvr-ai/go-overlay/common"

// Axis selects the dimension a size is scaled along.
type Axis int

const (
	// AxisX scales by destination width over source width.
	AxisX Axis = iota
	// AxisY scales by destination height over source height.
	AxisY
)

// Mapper converts source-frame coordinates into destination-surface coordinates.
//
// A Mapper is a value: the overlay recomputes its own copy at the start of every
// draw pass and hands each graphic a snapshot, so graphics never observe factors
// changing mid-pass.
type Mapper struct {
	source SourceInfo
	width  int
	height int
	scaleX float32
	scaleY float32
}

// NewMapper returns a mapper with unit scale factors and no source information.
func NewMapper() Mapper {
	return Mapper{scaleX: 1, scaleY: 1}
}

// Update records the current source and destination dimensions and recomputes the
// scale factors. When the source size is not yet established the previous factors
// are kept, so mapping never divides by zero during startup.
//
// Arguments:
//   - source: The detection frame description.
//   - dstWidth: The width of the render target in pixels.
//   - dstHeight: The height of the render target in pixels.
func (m *Mapper) Update(source SourceInfo, dstWidth, dstHeight int) {
	m.source = source
	m.width = dstWidth
	m.height = dstHeight
	if source.Established() {
		m.scaleX = float32(dstWidth) / float32(source.Width)
		m.scaleY = float32(dstHeight) / float32(source.Height)
	}
}

// ScaleFactors returns the current horizontal and vertical scale factors.
func (m Mapper) ScaleFactors() (float32, float32) {
	return m.scaleX, m.scaleY
}

// ScaleX scales a horizontal size from source to destination space.
func (m Mapper) ScaleX(horizontal float32) float32 {
	return horizontal * m.scaleX
}

// ScaleY scales a vertical size from source to destination space.
func (m Mapper) ScaleY(vertical float32) float32 {
	return vertical * m.scaleY
}

// Scale scales a size along the given axis without translating it.
func (m Mapper) Scale(v float32, axis Axis) float32 {
	if axis == AxisY {
		return m.ScaleY(v)
	}
	return m.ScaleX(v)
}

// TranslateX maps a source x coordinate to destination space, mirroring it across
// the destination width when the source is front facing.
func (m Mapper) TranslateX(x float32) float32 {
	if m.source.Mirrored {
		return float32(m.width) - m.ScaleX(x)
	}
	return m.ScaleX(x)
}

// TranslateY maps a source y coordinate to destination space. Vertical mapping is
// never mirrored.
func (m Mapper) TranslateY(y float32) float32 {
	return m.ScaleY(y)
}

// TranslatePoint maps a source point to destination space.
func (m Mapper) TranslatePoint(x, y float32) (float32, float32) {
	return m.TranslateX(x), m.TranslateY(y)
}

// TranslateRect maps each edge of a source box independently. Mirroring swaps which
// source edge lands on the left, so the result is re-ordered to keep X1 <= X2.
//
// Arguments:
//   - box: The box in source coordinates.
//
// Returns:
//   - common.BoundingBox: The box in destination coordinates, label and confidence kept.
//
// @example
// m.Update(SourceInfo{Width: 100, Height: 100, Mirrored: true}, 200, 200)
// r := m.TranslateRect(common.BoundingBox{X1: 10, Y1: 10, X2: 30, Y2: 20})
// // r.X1 == 140, r.X2 == 180, r.Y1 == 20, r.Y2 == 40
func (m Mapper) TranslateRect(box common.BoundingBox) common.BoundingBox {
	left := m.TranslateX(box.X1)
	right := m.TranslateX(box.X2)
	if left > right {
		left, right = right, left
	}
	box.X1, box.X2 = left, right
	box.Y1 = m.TranslateY(box.Y1)
	box.Y2 = m.TranslateY(box.Y2)
	return box
}
