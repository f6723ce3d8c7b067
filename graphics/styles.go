// Package graphics - Annotation variants drawn by the overlay.
//
// BoxGraphic outlines a rectangular region and labels it. CentroidGraphic marks
// the centre of a face with its track id and circles it with an ellipse. Both keep
// their latest payload in an atomic pointer so the render loop can draw while the
// detection side updates.
package graphics

import (
	"image/color"

	"github.com/nvr-ai/go-overlay/overlay"
)

var (
	// Blue is used for boxed regions.
	Blue = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	// Cyan is used for boxed regions.
	Cyan = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	// Green is used for boxed regions.
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	// Magenta is used for centroids.
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	// Red is used for centroids.
	Red = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	// Yellow is used for centroids.
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// StyleConfig sets the stroke and text sizes of one annotation kind, in destination pixels.
type StyleConfig struct {
	StrokeWidth float32 `json:"stroke_width"`
	TextSize    float32 `json:"text_size"`
}

// DefaultBoxStyle returns the stroke and text size for boxed regions.
func DefaultBoxStyle() StyleConfig {
	return StyleConfig{StrokeWidth: 4, TextSize: 36}
}

// DefaultCentroidStyle returns the stroke and text size for centroids.
func DefaultCentroidStyle() StyleConfig {
	return StyleConfig{StrokeWidth: 5, TextSize: 40}
}

// NewBoxPalette returns the colour rotation for boxed regions.
func NewBoxPalette() *overlay.Palette {
	return overlay.NewPalette(Blue, Cyan, Green)
}

// NewCentroidPalette returns the colour rotation for centroids.
func NewCentroidPalette() *overlay.Palette {
	return overlay.NewPalette(Magenta, Red, Yellow)
}

// style combines a picked colour with a size configuration.
func (c StyleConfig) style(col color.RGBA) overlay.Style {
	return overlay.Style{Color: col, StrokeWidth: c.StrokeWidth, TextSize: c.TextSize}
}
