package overlay

import "github.com/nvr-ai/go-overlay/images"

// Facing is the direction the video source points. Only two facings are modelled.
type Facing bool

const (
	// FacingBack is a rear camera; its frames are drawn as-is.
	FacingBack Facing = false
	// FacingFront is a selfie camera; its frames are mirrored horizontally.
	FacingFront Facing = true
)

// SourceInfo describes the frames the detection pipeline runs on.
type SourceInfo struct {
	Width    int  `json:"width"`
	Height   int  `json:"height"`
	Mirrored bool `json:"mirrored"`
}

// Established reports whether the source dimensions are known and positive. Before
// the first frame arrives both may be zero.
func (s SourceInfo) Established() bool {
	return s.Width > 0 && s.Height > 0
}

// SourceInfoFor builds the source description for a preview resolution and facing.
func SourceInfoFor(res images.Resolution, facing Facing) SourceInfo {
	return SourceInfo{
		Width:    res.Pixels.Width,
		Height:   res.Pixels.Height,
		Mirrored: bool(facing),
	}
}
