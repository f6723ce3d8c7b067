// Command replay draws a recorded detection log over recorded preview frames and
// writes the annotated frames as PNG files.
//
// Usage:
//
//	replay -frames ./frames -log detections.jsonl -out ./annotated
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-overlay/canvas"
	"github.com/nvr-ai/go-overlay/common"
	"github.com/nvr-ai/go-overlay/config"
	"github.com/nvr-ai/go-overlay/graphics"
	"github.com/nvr-ai/go-overlay/overlay"
	"github.com/nvr-ai/go-overlay/profiler"
	"github.com/nvr-ai/go-overlay/render"
	"github.com/nvr-ai/go-overlay/tracker"
	"github.com/nvr-ai/go-overlay/util"
)

func main() {
	framesDir := flag.String("frames", "", "directory of frame-<n>.png/jpg files")
	logPath := flag.String("log", "", "JSON lines detection log")
	outDir := flag.String("out", "annotated", "output directory")
	flag.Parse()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.With(zap.String("session", uuid.NewString()))

	if *framesDir == "" || *logPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := replay(cfg, *framesDir, *logPath, *outDir, logger); err != nil {
		logger.Fatal("replay failed", zap.Error(err))
	}
}

func replay(cfg config.Config, framesDir, logPath, outDir string, logger *zap.Logger) error {
	frames, err := util.LoadDirectoryImageFiles(framesDir)
	if err != nil {
		return err
	}

	f, err := os.Open(logPath)
	if err != nil {
		return errors.Wrap(err, "failed to open detection log")
	}
	defer f.Close()
	records, err := util.LoadDetectionLog(f)
	if err != nil {
		return err
	}
	byFrame := make(map[int]util.FrameDetections, len(records))
	for _, r := range records {
		byFrame[r.Frame] = r
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	ov := overlay.New()
	associator := tracker.NewAssociator(cfg.Associator)
	boxFactory := graphics.NewBoxFactory(ov, cfg.BoxStyle, logger)
	// Associated ids and detector ids live in separate processors so they cannot collide.
	boxes := tracker.NewProcessor[common.BoundingBox](boxFactory, cfg.Processor, logger.Named("boxes"))
	associated := tracker.NewProcessor[common.BoundingBox](boxFactory, cfg.Processor, logger.Named("associated"))
	faces := tracker.NewProcessor[common.Face](
		graphics.NewCentroidFactory(ov, cfg.CentroidStyle, logger), cfg.Processor, logger.Named("faces"))
	defer boxes.Release()
	defer associated.Release()
	defer faces.Release()

	target := &pngTarget{width: cfg.Display.Width, height: cfg.Display.Height, outDir: outDir}
	loop := render.NewLoop(ov, target, cfg.Render, logger.Named("render"))
	mirrored := cfg.SourceInfo().Mirrored
	prof := profiler.New(profiler.Options{}, logger.Named("profiler"))
	prof.AddMetricsCollector(loop)

	for _, frame := range frames {
		img, err := frame.Decode()
		if err != nil {
			return err
		}
		b := img.Bounds()
		if src := ov.SourceInfo(); src.Width != b.Dx() || src.Height != b.Dy() {
			ov.SetSourceInfo(b.Dx(), b.Dy(), mirrored)
		}

		fd := byFrame[frame.Frame]
		associated.ReceiveDetections(associator.Assign(fd.Boxes))
		boxes.ReceiveDetections(fd.Tracked)
		faces.ReceiveDetections(fd.Faces)

		target.frame = img
		target.index = frame.Frame
		done := prof.StartOperation("render")
		err = loop.Pass()
		done()
		if err != nil {
			return errors.Wrapf(err, "frame %d", frame.Frame)
		}
		prof.RecordMetric("tracked_items", float64(len(boxes.Tracked())+len(associated.Tracked())+len(faces.Tracked())))
		prof.RecordMetric("visible_annotations", float64(ov.Len()))
	}

	prof.Report()
	stats := loop.Stats()
	logger.Info("replay complete",
		zap.Int("frames", len(frames)),
		zap.Uint64("processed", faces.Frames()),
		zap.Uint64("passes", stats.Passes),
		zap.String("out", outDir))
	return nil
}

// pngTarget renders the current frame into an RGBA canvas and saves it on Present.
type pngTarget struct {
	width  int
	height int
	outDir string

	frame image.Image
	index int
}

func (t *pngTarget) Canvas() (overlay.Canvas, error) {
	c, err := canvas.FromImage(t.frame, t.width, t.height)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (t *pngTarget) Present(c overlay.Canvas) error {
	rgba, ok := c.(*canvas.RGBA)
	if !ok {
		return errors.Errorf("unexpected canvas type %T", c)
	}

	path := filepath.Join(t.outDir, fmt.Sprintf("frame-%d.png", t.index))
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer out.Close()

	if err := png.Encode(out, rgba.Image()); err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return nil
}
