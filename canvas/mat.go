package canvas

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-overlay/overlay"
)

// hersheyHeight is the approximate cap height of FontHersheySimplex at scale 1.
const hersheyHeight = 22.0

// Mat is an overlay.Canvas that draws onto a gocv.Mat in place.
type Mat struct {
	mat *gocv.Mat
}

var _ overlay.Canvas = (*Mat)(nil)

// NewMat wraps an existing Mat. The caller keeps ownership of the Mat.
func NewMat(mat *gocv.Mat) *Mat {
	return &Mat{mat: mat}
}

// ResizeInto scales src to width x height into dst and returns a canvas over dst.
// dst is reused across frames to avoid reallocating.
func ResizeInto(src gocv.Mat, dst *gocv.Mat, width, height int) (*Mat, error) {
	if src.Empty() {
		return nil, errors.New("source frame is empty")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid canvas size %dx%d", width, height)
	}
	gocv.Resize(src, dst, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)
	if dst.Empty() {
		return nil, errors.Errorf("failed to resize frame to %dx%d", width, height)
	}
	return NewMat(dst), nil
}

func (c *Mat) Width() int {
	return c.mat.Cols()
}

func (c *Mat) Height() int {
	return c.mat.Rows()
}

// DrawRect strokes or fills an axis-aligned rectangle.
func (c *Mat) DrawRect(left, top, right, bottom float32, style overlay.Style) {
	r := image.Rect(round(left), round(top), round(right), round(bottom))
	gocv.Rectangle(c.mat, r, style.Color, matThickness(style))
}

// DrawCircle strokes or fills a circle.
func (c *Mat) DrawCircle(cx, cy, radius float32, style overlay.Style) {
	gocv.Circle(c.mat, image.Pt(round(cx), round(cy)), round(radius), style.Color, matThickness(style))
}

// DrawEllipse strokes or fills the ellipse inscribed in the given rectangle.
func (c *Mat) DrawEllipse(left, top, right, bottom float32, style overlay.Style) {
	center := image.Pt(round((left+right)/2), round((top+bottom)/2))
	axes := image.Pt(round((right-left)/2), round((bottom-top)/2))
	if axes.X < 0 {
		axes.X = -axes.X
	}
	if axes.Y < 0 {
		axes.Y = -axes.Y
	}
	gocv.Ellipse(c.mat, center, axes, 0, 0, 360, style.Color, matThickness(style))
}

// DrawText draws text with its baseline starting at (x, y).
func (c *Mat) DrawText(text string, x, y float32, style overlay.Style) {
	scale := float64(style.TextSize) / hersheyHeight
	if scale <= 0 {
		scale = 1
	}
	gocv.PutText(c.mat, text, image.Pt(round(x), round(y)), gocv.FontHersheySimplex, scale, style.Color, 2)
}

func matThickness(style overlay.Style) int {
	if style.Fill {
		return -1
	}
	return thickness(style.StrokeWidth)
}
