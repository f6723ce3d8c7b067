package tracker

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/nvr-ai/go-overlay/overlay"
)

// Creator builds a tracker and its annotation for a newly detected item.
type Creator[T any] interface {
	Create(item T) *Tracker[T]
}

// GraphicFunc builds an annotation drawn in the given colour.
type GraphicFunc[T any] func(col color.RGBA) overlay.TrackedGraphic[T]

// Factory creates trackers for one kind of item. It owns the palette, so every
// annotation it builds takes the next colour in the rotation.
type Factory[T any] struct {
	overlay    *overlay.Overlay
	palette    *overlay.Palette
	newGraphic GraphicFunc[T]
	logger     *zap.Logger
}

var _ Creator[struct{}] = (*Factory[struct{}])(nil)

// NewFactory creates a factory that places its annotations on ov.
//
// Arguments:
//   - ov: The overlay annotations are added to.
//   - palette: The colour rotation for this kind of item.
//   - newGraphic: Builds the annotation for a picked colour.
//   - logger: Passed to every tracker. May be nil.
func NewFactory[T any](ov *overlay.Overlay, palette *overlay.Palette, newGraphic GraphicFunc[T], logger *zap.Logger) *Factory[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory[T]{
		overlay:    ov,
		palette:    palette,
		newGraphic: newGraphic,
		logger:     logger,
	}
}

// Create builds a tracker with a freshly styled annotation. The item itself is not
// applied here; the caller follows with OnNewItem and OnUpdate.
func (f *Factory[T]) Create(item T) *Tracker[T] {
	g := f.newGraphic(f.palette.Next())
	return New(f.overlay, g, f.logger)
}
