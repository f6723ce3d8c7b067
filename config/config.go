// Package config - Configuration for the overlay demos, loaded from OVERLAY_* variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-overlay/graphics"
	"github.com/nvr-ai/go-overlay/images"
	"github.com/nvr-ai/go-overlay/overlay"
	"github.com/nvr-ai/go-overlay/render"
	"github.com/nvr-ai/go-overlay/tracker"
)

// Config is the complete configuration of an overlay pipeline.
type Config struct {
	Source        SourceConfig             `json:"source"`
	Display       DisplayConfig            `json:"display"`
	Processor     tracker.Config           `json:"processor"`
	Associator    tracker.AssociatorConfig `json:"associator"`
	Render        render.Config            `json:"render"`
	BoxStyle      graphics.StyleConfig     `json:"box_style"`
	CentroidStyle graphics.StyleConfig     `json:"centroid_style"`
	Logging       LoggingConfig            `json:"logging"`
}

// SourceConfig describes the camera feeding the detector.
type SourceConfig struct {
	DeviceID   int                   `json:"device_id"`
	Resolution images.ResolutionType `json:"resolution"`
	// Facing is "back" or "front". Front facing sources are mirrored.
	Facing string `json:"facing"`
}

// DisplayConfig is the initial size of the destination surface.
type DisplayConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LoggingConfig selects the zap encoder and level.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// DefaultConfig returns a configuration for a back facing VGA camera shown at 800x480.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			DeviceID:   0,
			Resolution: images.ResolutionTypeVGA,
			Facing:     "back",
		},
		Display:       DisplayConfig{Width: 800, Height: 480},
		Processor:     tracker.DefaultConfig(),
		Associator:    tracker.DefaultAssociatorConfig(),
		Render:        render.DefaultConfig(),
		BoxStyle:      graphics.DefaultBoxStyle(),
		CentroidStyle: graphics.DefaultCentroidStyle(),
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// LoadConfig builds a configuration from the defaults overridden by environment variables.
func LoadConfig() Config {
	def := DefaultConfig()
	return Config{
		Source: SourceConfig{
			DeviceID:   getEnvAsInt("OVERLAY_DEVICE_ID", def.Source.DeviceID),
			Resolution: images.ResolutionType(getEnv("OVERLAY_SOURCE_RESOLUTION", string(def.Source.Resolution))),
			Facing:     strings.ToLower(getEnv("OVERLAY_SOURCE_FACING", def.Source.Facing)),
		},
		Display: DisplayConfig{
			Width:  getEnvAsInt("OVERLAY_DISPLAY_WIDTH", def.Display.Width),
			Height: getEnvAsInt("OVERLAY_DISPLAY_HEIGHT", def.Display.Height),
		},
		Processor: tracker.Config{
			MaxGapFrames: getEnvAsInt("OVERLAY_MAX_GAP_FRAMES", def.Processor.MaxGapFrames),
		},
		Associator: tracker.AssociatorConfig{
			IoUThreshold: getEnvAsFloat32("OVERLAY_IOU_THRESHOLD", def.Associator.IoUThreshold),
			MaxGapFrames: getEnvAsInt("OVERLAY_MAX_GAP_FRAMES", def.Associator.MaxGapFrames),
		},
		Render: render.Config{
			FrameInterval: getEnvAsDuration("OVERLAY_FRAME_INTERVAL", def.Render.FrameInterval),
		},
		BoxStyle: graphics.StyleConfig{
			StrokeWidth: getEnvAsFloat32("OVERLAY_BOX_STROKE", def.BoxStyle.StrokeWidth),
			TextSize:    getEnvAsFloat32("OVERLAY_BOX_TEXT_SIZE", def.BoxStyle.TextSize),
		},
		CentroidStyle: graphics.StyleConfig{
			StrokeWidth: getEnvAsFloat32("OVERLAY_CENTROID_STROKE", def.CentroidStyle.StrokeWidth),
			TextSize:    getEnvAsFloat32("OVERLAY_CENTROID_TEXT_SIZE", def.CentroidStyle.TextSize),
		},
		Logging: LoggingConfig{
			Level:  getEnv("OVERLAY_LOG_LEVEL", def.Logging.Level),
			Format: getEnv("OVERLAY_LOG_FORMAT", def.Logging.Format),
		},
	}
}

// Validate checks every section and reports the first problem found.
func (c Config) Validate() error {
	if _, ok := images.GetResolutionByType(c.Source.Resolution); !ok {
		return errors.Errorf("unknown source resolution %q", c.Source.Resolution)
	}
	if c.Source.Facing != "back" && c.Source.Facing != "front" {
		return errors.Errorf("source facing must be back or front, got %q", c.Source.Facing)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return errors.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if err := c.Processor.Validate(); err != nil {
		return errors.Wrap(err, "processor")
	}
	if err := c.Associator.Validate(); err != nil {
		return errors.Wrap(err, "associator")
	}
	if err := c.Render.Validate(); err != nil {
		return errors.Wrap(err, "render")
	}
	if c.BoxStyle.StrokeWidth <= 0 || c.CentroidStyle.StrokeWidth <= 0 {
		return errors.New("stroke widths must be positive")
	}
	if _, err := zap.ParseAtomicLevel(c.Logging.Level); err != nil {
		return errors.Wrapf(err, "invalid log level %q", c.Logging.Level)
	}
	return nil
}

// SourceInfo returns the overlay source description for the configured camera.
func (c Config) SourceInfo() overlay.SourceInfo {
	res, _ := images.GetResolutionByType(c.Source.Resolution)
	return overlay.SourceInfoFor(res, overlay.Facing(c.Source.Facing == "front"))
}

// NewLogger builds a zap logger: JSON production encoding for format "json",
// human readable development encoding otherwise.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Logging.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", c.Logging.Level)
	}

	var zc zap.Config
	if c.Logging.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level

	logger, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}
	return logger, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
