// Package canvas - Destination surfaces the overlay can draw on.
//
// RGBA is a pure-Go surface over *image.RGBA for headless rendering and tests.
// Mat draws straight onto a gocv.Mat for OpenCV windows and video writers.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nvr-ai/go-overlay/overlay"
)

// RGBA is an overlay.Canvas backed by an in-memory RGBA image. Text is drawn with a
// fixed 7x13 bitmap face, so Style.TextSize is not honoured.
type RGBA struct {
	img *image.RGBA
}

var _ overlay.Canvas = (*RGBA)(nil)

// NewRGBA creates a transparent canvas of the given size.
func NewRGBA(width, height int) *RGBA {
	return &RGBA{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// FromImage creates a canvas of the given size with frame scaled to fill it. This is
// the preview layer the overlay is drawn on top of.
//
// Arguments:
//   - frame: The camera frame at source resolution.
//   - width: The destination width in pixels.
//   - height: The destination height in pixels.
//
// Returns:
//   - *RGBA: The canvas holding the scaled frame.
//   - error: An error if the frame or size is invalid.
func FromImage(frame image.Image, width, height int) (*RGBA, error) {
	if frame == nil {
		return nil, errors.New("frame is nil")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid canvas size %dx%d", width, height)
	}

	scaled := resize.Resize(uint(width), uint(height), frame, resize.Bilinear)
	c := NewRGBA(width, height)
	draw.Draw(c.img, c.img.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	return c, nil
}

// Image returns the underlying image.
func (c *RGBA) Image() *image.RGBA {
	return c.img
}

func (c *RGBA) Width() int {
	return c.img.Bounds().Dx()
}

func (c *RGBA) Height() int {
	return c.img.Bounds().Dy()
}

// DrawRect strokes or fills an axis-aligned rectangle.
func (c *RGBA) DrawRect(left, top, right, bottom float32, style overlay.Style) {
	x1, y1, x2, y2 := round(left), round(top), round(right), round(bottom)
	if style.Fill {
		c.fill(image.Rect(x1, y1, x2, y2), style.Color)
		return
	}

	t := thickness(style.StrokeWidth)
	half := t / 2
	c.fill(image.Rect(x1-half, y1-half, x2+t-half, y1+t-half), style.Color)
	c.fill(image.Rect(x1-half, y2-half, x2+t-half, y2+t-half), style.Color)
	c.fill(image.Rect(x1-half, y1-half, x1+t-half, y2+t-half), style.Color)
	c.fill(image.Rect(x2-half, y1-half, x2+t-half, y2+t-half), style.Color)
}

// DrawCircle strokes or fills a circle.
func (c *RGBA) DrawCircle(cx, cy, radius float32, style overlay.Style) {
	c.ellipse(cx, cy, radius, radius, style)
}

// DrawEllipse strokes or fills the ellipse inscribed in the given rectangle.
func (c *RGBA) DrawEllipse(left, top, right, bottom float32, style overlay.Style) {
	c.ellipse((left+right)/2, (top+bottom)/2, math32.Abs(right-left)/2, math32.Abs(bottom-top)/2, style)
}

// DrawText draws text with its baseline starting at (x, y).
func (c *RGBA) DrawText(text string, x, y float32, style overlay.Style) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(style.Color),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(round(x)), Y: fixed.I(round(y))},
	}
	d.DrawString(text)
}

func (c *RGBA) ellipse(cx, cy, rx, ry float32, style overlay.Style) {
	if rx <= 0 || ry <= 0 {
		return
	}

	half := float32(thickness(style.StrokeWidth)) / 2
	outerX, outerY := rx, ry
	if !style.Fill {
		outerX, outerY = rx+half, ry+half
	}
	innerX, innerY := rx-half, ry-half

	bounds := image.Rect(
		int(math32.Floor(cx-outerX)), int(math32.Floor(cy-outerY)),
		int(math32.Ceil(cx+outerX))+1, int(math32.Ceil(cy+outerY))+1,
	).Intersect(c.img.Bounds())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx, dy := float32(x)-cx, float32(y)-cy
			if !inside(dx, dy, outerX, outerY) {
				continue
			}
			if !style.Fill && innerX > 0 && innerY > 0 && inside(dx, dy, innerX, innerY) {
				continue
			}
			c.img.SetRGBA(x, y, style.Color)
		}
	}
}

func (c *RGBA) fill(r image.Rectangle, col color.RGBA) {
	r = r.Canon().Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func inside(dx, dy, rx, ry float32) bool {
	nx, ny := dx/rx, dy/ry
	return nx*nx+ny*ny <= 1
}

func round(v float32) int {
	return int(math32.Floor(v + 0.5))
}

func thickness(stroke float32) int {
	t := round(stroke)
	if t < 1 {
		return 1
	}
	return t
}
