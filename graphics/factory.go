package graphics

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/nvr-ai/go-overlay/common"
	"github.com/nvr-ai/go-overlay/overlay"
	"github.com/nvr-ai/go-overlay/tracker"
)

// NewBoxFactory returns a tracker factory for boxed regions on ov. Each factory
// has its own colour rotation.
func NewBoxFactory(ov *overlay.Overlay, cfg StyleConfig, logger *zap.Logger) *tracker.Factory[common.BoundingBox] {
	return tracker.NewFactory[common.BoundingBox](ov, NewBoxPalette(),
		func(col color.RGBA) overlay.TrackedGraphic[common.BoundingBox] {
			return NewBoxGraphic(ov, cfg.style(col))
		}, logger)
}

// NewCentroidFactory returns a tracker factory for face centroids on ov.
func NewCentroidFactory(ov *overlay.Overlay, cfg StyleConfig, logger *zap.Logger) *tracker.Factory[common.Face] {
	return tracker.NewFactory[common.Face](ov, NewCentroidPalette(),
		func(col color.RGBA) overlay.TrackedGraphic[common.Face] {
			return NewCentroidGraphic(ov, cfg.style(col))
		}, logger)
}
