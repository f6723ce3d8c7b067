package common

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvr-ai/go-overlay/images"
)

func TestBoundingBoxGeometry(t *testing.T) {
	box := BoundingBox{Label: "qr", Confidence: 0.9, X1: 100, Y1: 100, X2: 200, Y2: 300}

	assert.Equal(t, float32(100), box.Width())
	assert.Equal(t, float32(200), box.Height())

	cx, cy := box.Center()
	assert.Equal(t, float32(150), cx)
	assert.Equal(t, float32(200), cy)

	assert.Equal(t, image.Rect(100, 100, 200, 300), box.ToRect())
}

func TestBoundingBoxRect(t *testing.T) {
	box := BoundingBox{X1: 10.4, Y1: 20, X2: 30.6, Y2: 40}
	assert.Equal(t, images.Rect{X1: 10, Y1: 20, X2: 30, Y2: 40}, box.Rect())
}

func TestFromRectangleCanonicalises(t *testing.T) {
	box := FromRectangle(image.Rectangle{Min: image.Pt(50, 60), Max: image.Pt(10, 20)}, "face", 1)

	assert.Equal(t, float32(10), box.X1)
	assert.Equal(t, float32(20), box.Y1)
	assert.Equal(t, float32(50), box.X2)
	assert.Equal(t, float32(60), box.Y2)

	face := FaceFromBox(box)
	cx, cy := face.Center()
	assert.Equal(t, float32(30), cx)
	assert.Equal(t, float32(40), cy)
}
