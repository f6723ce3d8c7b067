package images

import "fmt"

// ResolutionType names a camera preview resolution.
type ResolutionType string

// Preview resolutions a detection pipeline commonly runs at.
const (
	ResolutionTypeQVGA     ResolutionType = "QVGA"
	ResolutionTypeVGA      ResolutionType = "VGA"
	ResolutionTypeNHD      ResolutionType = "nHD"
	ResolutionTypeFWVGA    ResolutionType = "FWVGA"
	ResolutionTypeHD720p   ResolutionType = "HD 720p"
	ResolutionType1MP54    ResolutionType = "1MP (5:4)"
	ResolutionTypeWXGA16   ResolutionType = "WXGA+ (25:16)"
	ResolutionTypeFHD1080p ResolutionType = "Full HD 1080p"
)

// ResolutionPixels describes the exact dimensions of a resolution.
type ResolutionPixels struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Resolution is a named preview resolution.
type Resolution struct {
	Name   ResolutionType   `json:"name"`
	Pixels ResolutionPixels `json:"pixels"`
}

// String returns a human-readable summary of the resolution.
func (r Resolution) String() string {
	return fmt.Sprintf("%s (%dx%d)", r.Name, r.Pixels.Width, r.Pixels.Height)
}

var resolutions = map[ResolutionType]Resolution{
	ResolutionTypeQVGA:     {Name: ResolutionTypeQVGA, Pixels: ResolutionPixels{Width: 320, Height: 240}},
	ResolutionTypeVGA:      {Name: ResolutionTypeVGA, Pixels: ResolutionPixels{Width: 640, Height: 480}},
	ResolutionTypeNHD:      {Name: ResolutionTypeNHD, Pixels: ResolutionPixels{Width: 640, Height: 360}},
	ResolutionTypeFWVGA:    {Name: ResolutionTypeFWVGA, Pixels: ResolutionPixels{Width: 854, Height: 480}},
	ResolutionTypeHD720p:   {Name: ResolutionTypeHD720p, Pixels: ResolutionPixels{Width: 1280, Height: 720}},
	ResolutionType1MP54:    {Name: ResolutionType1MP54, Pixels: ResolutionPixels{Width: 1280, Height: 1024}},
	ResolutionTypeWXGA16:   {Name: ResolutionTypeWXGA16, Pixels: ResolutionPixels{Width: 1600, Height: 1024}},
	ResolutionTypeFHD1080p: {Name: ResolutionTypeFHD1080p, Pixels: ResolutionPixels{Width: 1920, Height: 1080}},
}

// GetResolutionByType retrieves a specific resolution by its type.
// It returns the Resolution and true if found, otherwise an empty Resolution and false.
func GetResolutionByType(t ResolutionType) (Resolution, bool) {
	res, ok := resolutions[t]
	return res, ok
}

// GetResolutionByPixels returns the named resolution with exactly the given dimensions.
// Cameras report their negotiated preview size, and this maps it back to a name for logs.
func GetResolutionByPixels(width, height int) (Resolution, bool) {
	for _, res := range resolutions {
		if res.Pixels.Width == width && res.Pixels.Height == height {
			return res, true
		}
	}
	return Resolution{}, false
}
