// Package images - Integer geometry and preview resolutions used by the overlay pipeline.
package images

// Rect is a lightweight bounding box in pixel coordinates.
type Rect struct {
	// X2,Y2 are exclusive (like image.Rectangle).
	X1, Y1, X2, Y2 int
}

// Area returns the pixel area of the rectangle, or 0 for an empty rectangle.
func (r Rect) Area() int {
	w, h := r.X2-r.X1, r.Y2-r.Y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// CalculateIoU returns the Intersection over Union of two rectangles: the area they
// share divided by the area they cover together.
//
//	IoU = Area of Intersection / Area of Union
//
// 1.0 means the rectangles are identical and 0.0 means they do not touch. The
// associator uses it to decide whether a box in the current frame is the same item
// as a box seen in an earlier frame.
//
// The intersection is the rectangle between the larger of the two top-left corners
// and the smaller of the two bottom-right corners. A non-positive width or height
// means there is no overlap and the result is 0 without dividing. The union follows
// inclusion-exclusion: Area(A) + Area(B) - Area(A∩B).
//
// Arguments:
//   - r: The first rectangle.
//   - o: The rectangle to compare against.
//
// Returns:
//   - float32: A value between 0.0 and 1.0.
//
// Example Usage:
// ```go
//
//	rect1 := Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}
//	rect2 := Rect{X1: 5, Y1: 5, X2: 15, Y2: 15}
//
//	iouScore := CalculateIoU(rect1, rect2) // 25 / 175 = 0.142857
//
// ```
func CalculateIoU(r, o Rect) float32 {
	ix1 := max(r.X1, o.X1)
	iy1 := max(r.Y1, o.Y1)
	ix2 := min(r.X2, o.X2)
	iy2 := min(r.Y2, o.Y2)

	interW := ix2 - ix1
	interH := iy2 - iy1
	if interW <= 0 || interH <= 0 {
		return 0.0
	}
	interArea := interW * interH

	unionArea := r.Area() + o.Area() - interArea
	if unionArea <= 0 {
		return 0.0
	}

	// Cast before dividing; integer division would truncate to 0.
	return float32(interArea) / float32(unionArea)
}
