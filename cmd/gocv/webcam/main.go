// Command webcam detects faces on a local camera and draws tracked boxes and
// centroids over a resized preview window.
package main

import (
	"context"
	"flag"
	"image"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-overlay/canvas"
	"github.com/nvr-ai/go-overlay/common"
	"github.com/nvr-ai/go-overlay/config"
	"github.com/nvr-ai/go-overlay/graphics"
	"github.com/nvr-ai/go-overlay/images"
	"github.com/nvr-ai/go-overlay/overlay"
	"github.com/nvr-ai/go-overlay/profiler"
	"github.com/nvr-ai/go-overlay/render"
	"github.com/nvr-ai/go-overlay/tracker"
)

const escKey = 27

func main() {
	cascade := flag.String("cascade", "haarcascade_frontalface_default.xml", "path to the face cascade")
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

	if err := run(cfg, *cascade, logger); err != nil {
		logger.Fatal("webcam stopped", zap.Error(err))
	}
}

func run(cfg config.Config, cascade string, logger *zap.Logger) error {
	webcam, err := gocv.OpenVideoCapture(cfg.Source.DeviceID)
	if err != nil {
		return errors.Wrapf(err, "failed to open device %d", cfg.Source.DeviceID)
	}
	defer webcam.Close()

	src := cfg.SourceInfo()
	webcam.Set(gocv.VideoCaptureFrameWidth, float64(src.Width))
	webcam.Set(gocv.VideoCaptureFrameHeight, float64(src.Height))

	classifier := gocv.NewCascadeClassifier()
	defer classifier.Close()
	if !classifier.Load(cascade) {
		return errors.Errorf("error reading cascade file: %s", cascade)
	}

	window := gocv.NewWindow("Overlay")
	defer window.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ov := overlay.New()
	boxes := tracker.NewProcessor[common.BoundingBox](
		graphics.NewBoxFactory(ov, cfg.BoxStyle, logger), cfg.Processor, logger.Named("boxes"))
	faces := tracker.NewProcessor[common.Face](
		graphics.NewCentroidFactory(ov, cfg.CentroidStyle, logger), cfg.Processor, logger.Named("faces"))
	defer boxes.Release()
	defer faces.Release()

	prof := profiler.New(profiler.Options{}, logger.Named("profiler"))

	preview := newPreview(window, cfg.Display.Width, cfg.Display.Height, src.Mirrored, cancel)
	defer preview.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		d := &detector{
			webcam:     webcam,
			classifier: &classifier,
			associator: tracker.NewAssociator(cfg.Associator),
			overlay:    ov,
			mirrored:   src.Mirrored,
			boxes:      boxes,
			faces:      faces,
			preview:    preview,
			profiler:   prof,
			logger:     logger,
		}
		if err := d.run(ctx); err != nil {
			logger.Error("detection stopped", zap.Error(err))
		}
	}()

	// gocv windows must be driven from the main goroutine.
	loop := render.NewLoop(ov, preview, cfg.Render, logger.Named("render"))
	prof.AddMetricsCollector(loop)
	wg.Add(1)
	go func() {
		defer wg.Done()
		prof.Run(ctx)
	}()

	err = loop.Run(ctx)
	cancel()
	wg.Wait()

	stats := loop.Stats()
	logger.Info("render summary",
		zap.Uint64("passes", stats.Passes),
		zap.Uint64("errors", stats.Errors),
		zap.Duration("last_pass", stats.LastPass))
	return err
}

// detector reads frames, finds faces and feeds both processors.
type detector struct {
	webcam     *gocv.VideoCapture
	classifier *gocv.CascadeClassifier
	associator *tracker.Associator
	overlay    *overlay.Overlay
	mirrored   bool
	boxes      *tracker.Processor[common.BoundingBox]
	faces      *tracker.Processor[common.Face]
	preview    *preview
	profiler   *profiler.Profiler
	logger     *zap.Logger
}

func (d *detector) run(ctx context.Context) error {
	img := gocv.NewMat()
	defer img.Close()

	frameCount := 0
	lastTime := time.Now()
	var size image.Point

	for {
		if ctx.Err() != nil {
			return nil
		}
		if ok := d.webcam.Read(&img); !ok {
			return errors.New("cannot read from capture device")
		}
		if img.Empty() {
			continue
		}

		if pt := image.Pt(img.Cols(), img.Rows()); pt != size {
			size = pt
			d.overlay.SetSourceInfo(size.X, size.Y, d.mirrored)
			fields := []zap.Field{zap.Int("width", size.X), zap.Int("height", size.Y)}
			if res, ok := images.GetResolutionByPixels(size.X, size.Y); ok {
				fields = append(fields, zap.Stringer("resolution", res))
			}
			d.logger.Info("source frame size", fields...)
		}

		done := d.profiler.StartOperation("detect")
		rects := d.classifier.DetectMultiScale(img)
		done()
		found := make([]common.BoundingBox, 0, len(rects))
		for _, r := range rects {
			found = append(found, common.FromRectangle(r, "", 1))
		}

		dets := d.associator.Assign(found)
		d.boxes.ReceiveDetections(dets)
		d.faces.ReceiveDetections(tracker.Convert(dets, common.FaceFromBox))
		d.preview.Update(img)

		frameCount++
		if elapsed := time.Since(lastTime); elapsed >= time.Second {
			d.profiler.RecordMetric("detect_fps", float64(frameCount)/elapsed.Seconds())
			d.profiler.RecordMetric("tracked_items", float64(len(d.boxes.Tracked())))
			d.profiler.RecordMetric("associated_ids", float64(d.associator.Live()))
			d.profiler.RecordMetric("visible_annotations", float64(d.overlay.Len()))
			frameCount = 0
			lastTime = time.Now()
		}
	}
}

// preview is the render target: the latest camera frame resized to the window.
type preview struct {
	window   *gocv.Window
	width    int
	height   int
	mirrored bool
	quit     context.CancelFunc

	mu      sync.Mutex
	latest  gocv.Mat
	display gocv.Mat
}

var _ render.Target = (*preview)(nil)

func newPreview(window *gocv.Window, width, height int, mirrored bool, quit context.CancelFunc) *preview {
	return &preview{
		window:   window,
		width:    width,
		height:   height,
		mirrored: mirrored,
		quit:     quit,
		latest:   gocv.NewMat(),
		display:  gocv.NewMat(),
	}
}

// Update stores a copy of the newest camera frame.
func (p *preview) Update(frame gocv.Mat) {
	p.mu.Lock()
	defer p.mu.Unlock()
	frame.CopyTo(&p.latest)
}

func (p *preview) Canvas() (overlay.Canvas, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.latest.Empty() {
		return nil, errors.New("no frame captured yet")
	}
	c, err := canvas.ResizeInto(p.latest, &p.display, p.width, p.height)
	if err != nil {
		return nil, err
	}
	if p.mirrored {
		gocv.Flip(p.display, &p.display, 1)
	}
	return c, nil
}

func (p *preview) Present(overlay.Canvas) error {
	p.window.IMShow(p.display)
	if p.window.WaitKey(1) == escKey {
		p.quit()
	}
	return nil
}

func (p *preview) Close() {
	p.latest.Close()
	p.display.Close()
}
