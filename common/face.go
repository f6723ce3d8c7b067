package common

// Face is a detected face in source-frame coordinates. X and Y locate the top-left
// corner of the face region.
type Face struct {
	X, Y          float32
	Width, Height float32
}

// Center returns the midpoint of the face region.
func (f *Face) Center() (float32, float32) {
	return f.X + f.Width/2, f.Y + f.Height/2
}

// FaceFromBox converts a bounding box into a Face covering the same region.
func FaceFromBox(b BoundingBox) Face {
	return Face{X: b.X1, Y: b.Y1, Width: b.Width(), Height: b.Height()}
}
