package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-overlay/images"
	"github.com/nvr-ai/go-overlay/overlay"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, overlay.SourceInfo{Width: 640, Height: 480}, cfg.SourceInfo())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("OVERLAY_SOURCE_RESOLUTION", string(images.ResolutionTypeWXGA16))
	t.Setenv("OVERLAY_SOURCE_FACING", "FRONT")
	t.Setenv("OVERLAY_DISPLAY_WIDTH", "1024")
	t.Setenv("OVERLAY_MAX_GAP_FRAMES", "5")
	t.Setenv("OVERLAY_IOU_THRESHOLD", "0.5")
	t.Setenv("OVERLAY_FRAME_INTERVAL", "16ms")
	t.Setenv("OVERLAY_LOG_FORMAT", "json")

	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, overlay.SourceInfo{Width: 1600, Height: 1024, Mirrored: true}, cfg.SourceInfo())
	assert.Equal(t, 1024, cfg.Display.Width)
	assert.Equal(t, 480, cfg.Display.Height)
	assert.Equal(t, 5, cfg.Processor.MaxGapFrames)
	assert.Equal(t, 5, cfg.Associator.MaxGapFrames)
	assert.Equal(t, float32(0.5), cfg.Associator.IoUThreshold)
	assert.Equal(t, 16*time.Millisecond, cfg.Render.FrameInterval)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("OVERLAY_DISPLAY_WIDTH", "wide")
	t.Setenv("OVERLAY_FRAME_INTERVAL", "soon")

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig().Display.Width, cfg.Display.Width)
	assert.Equal(t, DefaultConfig().Render.FrameInterval, cfg.Render.FrameInterval)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown resolution", func(c *Config) { c.Source.Resolution = "8K" }, "unknown source resolution"},
		{"bad facing", func(c *Config) { c.Source.Facing = "up" }, "source facing"},
		{"zero display", func(c *Config) { c.Display.Height = 0 }, "display size"},
		{"negative gap", func(c *Config) { c.Processor.MaxGapFrames = -1 }, "processor"},
		{"bad iou", func(c *Config) { c.Associator.IoUThreshold = 2 }, "associator"},
		{"negative interval", func(c *Config) { c.Render.FrameInterval = -time.Second }, "render"},
		{"zero stroke", func(c *Config) { c.BoxStyle.StrokeWidth = 0 }, "stroke"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := DefaultConfig()
		cfg.Logging.Format = format
		logger, err := cfg.NewLogger()
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}

	cfg := DefaultConfig()
	cfg.Logging.Level = "loud"
	_, err := cfg.NewLogger()
	assert.Error(t, err)
}
