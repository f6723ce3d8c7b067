package graphics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-overlay/common"
	"github.com/nvr-ai/go-overlay/overlay"
	"github.com/nvr-ai/go-overlay/test"
)

// TestTrackersUpdateWhileDrawing is meant to run under -race. Each goroutine owns one
// identity and drives it through a tracker while a render goroutine draws the
// mirrored overlay. Every drawn shape must come from one whole payload.
func TestTrackersUpdateWhileDrawing(t *testing.T) {
	const (
		perKind = 3
		rounds  = 300
		boxW    = 10
		faceW   = 20
	)

	ov := overlay.New()
	ov.SetSourceInfo(1600, 960, true)
	boxes := NewBoxFactory(ov, DefaultBoxStyle(), nil)
	faces := NewCentroidFactory(ov, DefaultCentroidStyle(), nil)

	c := test.NewRecordingCanvas(800, 480)
	done := make(chan struct{})
	var torn []test.Op
	var drawWG sync.WaitGroup
	drawWG.Add(1)
	go func() {
		defer drawWG.Done()
		for {
			select {
			case <-done:
				return
			default:
				ov.Draw(c)
				for _, op := range c.Ops() {
					width := op.Args[len(op.Args)-2] - op.Args[0]
					switch {
					case op.Kind == test.OpRect && (width < 0 || width != boxW*0.5):
						torn = append(torn, op)
					case op.Kind == test.OpEllipse && width != faceW*0.5:
						torn = append(torn, op)
					}
				}
				c.Reset()
			}
		}
	}()

	var boxGraphics []*BoxGraphic
	var faceGraphics []*CentroidGraphic
	var wg sync.WaitGroup
	for i := 0; i < perKind; i++ {
		bt := boxes.Create(common.BoundingBox{})
		ft := faces.Create(common.Face{})
		boxGraphics = append(boxGraphics, bt.Graphic().(*BoxGraphic))
		faceGraphics = append(faceGraphics, ft.Graphic().(*CentroidGraphic))

		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			bt.OnNewItem(id, common.BoundingBox{})
			for r := 0; r < rounds; r++ {
				x := float32(r % 1500)
				bt.OnUpdate(common.BoundingBox{Label: "box", X1: x, Y1: 10, X2: x + boxW, Y2: 20})
				if r%7 == 0 {
					bt.OnMissing()
				}
			}
			bt.OnUpdate(common.BoundingBox{Label: "box", X1: 100, Y1: 10, X2: 100 + boxW, Y2: 20})
		}(i + 1)
		go func(id int) {
			defer wg.Done()
			ft.OnNewItem(id, common.Face{})
			for r := 0; r < rounds; r++ {
				ft.OnUpdate(common.Face{X: float32(r % 1500), Y: 50, Width: faceW, Height: 40})
				if r%5 == 0 {
					ft.OnMissing()
				}
			}
			ft.OnDone()
		}(100 + i)
	}

	wg.Wait()
	close(done)
	drawWG.Wait()

	assert.Empty(t, torn, "shapes must come from whole payloads and stay canonical")

	assert.Equal(t, perKind, ov.Len(), "only the box trackers remain visible")
	for _, g := range boxGraphics {
		assert.True(t, ov.Contains(g))
		box, ok := g.Box()
		require.True(t, ok)
		assert.Equal(t, float32(100), box.X1)
	}
	for _, g := range faceGraphics {
		assert.False(t, ov.Contains(g))
		face, ok := g.Face()
		require.True(t, ok)
		assert.Equal(t, float32(faceW), face.Width)
	}
}
