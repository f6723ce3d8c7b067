package images

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCalculateIoU validates the IoU implementation against known cases.
func TestCalculateIoU(t *testing.T) {
	tests := []struct {
		name     string
		r1       Rect
		r2       Rect
		expected float32
	}{
		{"Identical rectangles", Rect{0, 0, 100, 100}, Rect{0, 0, 100, 100}, 1.0},
		{"No overlap", Rect{0, 0, 100, 100}, Rect{200, 200, 300, 300}, 0.0},
		{"Touching edges", Rect{0, 0, 100, 100}, Rect{100, 0, 200, 100}, 0.0},
		// intersection=2500, union=17500
		{"Quarter overlap", Rect{0, 0, 100, 100}, Rect{50, 50, 150, 150}, 0.142857},
		// intersection=100, union=19900
		{"Corner overlap", Rect{0, 0, 100, 100}, Rect{90, 90, 190, 190}, 0.005025},
		{"One inside other", Rect{0, 0, 100, 100}, Rect{25, 25, 75, 75}, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateIoU(tt.r1, tt.r2)
			assert.InDelta(t, tt.expected, result, 0.001)
			assert.InDelta(t, result, CalculateIoU(tt.r2, tt.r1), 0.0001, "IoU must be symmetric")
		})
	}
}

// TestCalculateIoU_MatchesImageRectangle compares against an image.Rectangle based IoU.
func TestCalculateIoU_MatchesImageRectangle(t *testing.T) {
	cases := []struct {
		name string
		r1   Rect
		r2   Rect
	}{
		{"Partial overlap", Rect{0, 0, 100, 100}, Rect{50, 50, 150, 150}},
		{"Large boxes", Rect{0, 0, 1920, 1080}, Rect{960, 540, 1920, 1080}},
		{"Negative coordinates", Rect{-100, -100, 0, 0}, Rect{-50, -50, 50, 50}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ir1 := image.Rect(tc.r1.X1, tc.r1.Y1, tc.r1.X2, tc.r1.Y2)
			ir2 := image.Rect(tc.r2.X1, tc.r2.Y1, tc.r2.X2, tc.r2.Y2)

			intersect := ir1.Intersect(ir2)
			inter := intersect.Dx() * intersect.Dy()
			union := ir1.Dx()*ir1.Dy() + ir2.Dx()*ir2.Dy() - inter

			assert.InDelta(t, float32(inter)/float32(union), CalculateIoU(tc.r1, tc.r2), 0.0001)
		})
	}
}

func TestCalculateIoU_DegenerateRectangles(t *testing.T) {
	assert.Zero(t, CalculateIoU(Rect{0, 0, 0, 0}, Rect{0, 0, 100, 100}))
	assert.Zero(t, CalculateIoU(Rect{0, 0, 0, 0}, Rect{10, 10, 10, 10}))
	assert.Equal(t, float32(1), CalculateIoU(Rect{0, 0, 1, 1}, Rect{0, 0, 1, 1}))
}
