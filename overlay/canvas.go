package overlay

import "image/color"

// Style holds the visual attributes of an annotation. It is assigned once when the
// annotation is built and never changes afterwards.
type Style struct {
	Color       color.RGBA
	StrokeWidth float32
	TextSize    float32
	// Fill paints the interior of closed shapes instead of their outline.
	Fill bool
}

// Outline returns a copy of the style that strokes shapes.
func (s Style) Outline() Style {
	s.Fill = false
	return s
}

// Filled returns a copy of the style that fills shapes.
func (s Style) Filled() Style {
	s.Fill = true
	return s
}

// Canvas is a destination surface. All coordinates are destination pixels. Width
// and Height are read at the start of every draw pass and may change between passes.
type Canvas interface {
	Width() int
	Height() int
	DrawRect(left, top, right, bottom float32, style Style)
	DrawCircle(cx, cy, radius float32, style Style)
	DrawEllipse(left, top, right, bottom float32, style Style)
	DrawText(text string, x, y float32, style Style)
}
