// Package common - Detection payloads shared by the tracker and the annotation variants.
package common

import (
	"image"

	"github.com/nvr-ai/go-overlay/images"
)

// BoundingBox represents a detected region in source-frame coordinates with its label
// and confidence.
type BoundingBox struct {
	Label          string
	Confidence     float32
	X1, Y1, X2, Y2 float32
}

// Width returns the horizontal extent of the box.
func (b *BoundingBox) Width() float32 {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box.
func (b *BoundingBox) Height() float32 {
	return b.Y2 - b.Y1
}

// Center returns the midpoint of the box.
//
// Returns:
//   - float32: The x coordinate of the center.
//   - float32: The y coordinate of the center.
//
// @example
// box := BoundingBox{X1: 100, Y1: 100, X2: 200, Y2: 300}
// cx, cy := box.Center() // 150, 200
func (b *BoundingBox) Center() (float32, float32) {
	return b.X1 + b.Width()/2, b.Y1 + b.Height()/2
}

// ToRect converts the bounding box to an image.Rectangle.
//
// This loses the fractional part of each edge, which is fine for overlap estimation.
//
// Returns:
// - An image.Rectangle with canonicalized coordinates.
//
// @example
// box := BoundingBox{X1: 100.5, Y1: 100.5, X2: 200.5, Y2: 300.5}
// rect := box.ToRect()
// fmt.Printf("Rectangle: %v\n", rect) // Rectangle: (100,100)-(200,300)
func (b *BoundingBox) ToRect() image.Rectangle {
	return image.Rect(int(b.X1), int(b.Y1), int(b.X2), int(b.Y2)).Canon()
}

// Rect converts the bounding box to the lightweight images.Rect used for association.
func (b *BoundingBox) Rect() images.Rect {
	r := b.ToRect()
	return images.Rect{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// FromRectangle builds a labelled BoundingBox from an integer rectangle, as returned by
// classical detectors such as cascade classifiers.
func FromRectangle(r image.Rectangle, label string, confidence float32) BoundingBox {
	r = r.Canon()
	return BoundingBox{
		Label:      label,
		Confidence: confidence,
		X1:         float32(r.Min.X),
		Y1:         float32(r.Min.Y),
		X2:         float32(r.Max.X),
		Y2:         float32(r.Max.Y),
	}
}
