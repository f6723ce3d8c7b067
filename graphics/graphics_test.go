package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-overlay/common"
	"github.com/nvr-ai/go-overlay/overlay"
	"github.com/nvr-ai/go-overlay/test"
)

func TestBoxGraphicWithoutPayloadDrawsNothing(t *testing.T) {
	ov := overlay.New()
	g := NewBoxGraphic(ov, DefaultBoxStyle().style(Blue))
	c := test.NewRecordingCanvas(800, 480)

	g.Draw(c, overlay.NewMapper())

	assert.Empty(t, c.Ops())
	_, ok := g.Box()
	assert.False(t, ok)
}

func TestBoxGraphicDraw(t *testing.T) {
	tests := []struct {
		name      string
		mirrored  bool
		wantRect  []float32
		wantLabel []float32
	}{
		{"back facing", false, []float32{50, 60, 150, 120}, []float32{50, 120}},
		{"front facing", true, []float32{650, 60, 750, 120}, []float32{650, 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ov := overlay.New()
			ov.SetSourceInfo(1600, 960, tt.mirrored)
			g := NewBoxGraphic(ov, DefaultBoxStyle().style(Cyan))
			g.SetID(7)
			g.UpdateItem(common.BoundingBox{Label: "4006381333931", X1: 100, Y1: 120, X2: 300, Y2: 240})
			ov.Add(g)

			c := test.NewRecordingCanvas(800, 480)
			ov.Draw(c)

			rects := c.OpsOf(test.OpRect)
			require.Len(t, rects, 1)
			assert.Equal(t, tt.wantRect, rects[0].Args)
			assert.False(t, rects[0].Style.Fill)
			assert.Equal(t, Cyan, rects[0].Style.Color)
			assert.Equal(t, float32(4), rects[0].Style.StrokeWidth)

			texts := c.OpsOf(test.OpText)
			require.Len(t, texts, 1)
			assert.Equal(t, "4006381333931", texts[0].Text)
			assert.Equal(t, tt.wantLabel, texts[0].Args)
			assert.Equal(t, float32(36), texts[0].Style.TextSize)
		})
	}
}

func TestBoxGraphicFallsBackToIDLabel(t *testing.T) {
	ov := overlay.New()
	g := NewBoxGraphic(ov, DefaultBoxStyle().style(Green))
	g.SetID(3)
	g.UpdateItem(common.BoundingBox{X1: 0, Y1: 0, X2: 10, Y2: 10})

	c := test.NewRecordingCanvas(10, 10)
	g.Draw(c, overlay.NewMapper())

	texts := c.OpsOf(test.OpText)
	require.Len(t, texts, 1)
	assert.Equal(t, "id: 3", texts[0].Text)
}

func TestCentroidGraphicDraw(t *testing.T) {
	ov := overlay.New()
	ov.SetSourceInfo(1600, 1024, false)
	g := NewCentroidGraphic(ov, DefaultCentroidStyle().style(Magenta))
	g.SetID(12)
	g.UpdateItem(common.Face{X: 700, Y: 412, Width: 200, Height: 200})
	ov.Add(g)

	c := test.NewRecordingCanvas(800, 480)
	ov.Draw(c)

	// Centre (800, 512) maps to (400, 240); half extents 100x100 scale to 50x46.875.
	circles := c.OpsOf(test.OpCircle)
	require.Len(t, circles, 1)
	assert.Equal(t, []float32{400, 240, PositionRadius}, circles[0].Args)
	assert.True(t, circles[0].Style.Fill)

	texts := c.OpsOf(test.OpText)
	require.Len(t, texts, 1)
	assert.Equal(t, "id: 12", texts[0].Text)
	assert.Equal(t, []float32{350, 290}, texts[0].Args)

	ellipses := c.OpsOf(test.OpEllipse)
	require.Len(t, ellipses, 1)
	assert.InDeltaSlice(t, []float32{350, 193.125, 450, 286.875}, ellipses[0].Args, 0.001)
	assert.False(t, ellipses[0].Style.Fill)
	assert.Equal(t, float32(5), ellipses[0].Style.StrokeWidth)
}

func TestCentroidGraphicMirrored(t *testing.T) {
	ov := overlay.New()
	ov.SetSourceInfo(1600, 1024, true)
	g := NewCentroidGraphic(ov, DefaultCentroidStyle().style(Red))
	g.UpdateItem(common.Face{X: 0, Y: 0, Width: 200, Height: 200})
	ov.Add(g)

	c := test.NewRecordingCanvas(800, 480)
	ov.Draw(c)

	circles := c.OpsOf(test.OpCircle)
	require.Len(t, circles, 1)
	assert.InDelta(t, 750, circles[0].Args[0], 0.001)
	assert.InDelta(t, 46.875, circles[0].Args[1], 0.001)
}

func TestIDIsWriteOnce(t *testing.T) {
	g := NewCentroidGraphic(overlay.New(), DefaultCentroidStyle().style(Yellow))
	g.SetID(5)
	g.SetID(9)
	assert.Equal(t, 5, g.ID())
}

func TestUpdateItemRequestsRedraw(t *testing.T) {
	ov := overlay.New()
	g := NewBoxGraphic(ov, DefaultBoxStyle().style(Blue))

	g.UpdateItem(common.BoundingBox{X2: 1, Y2: 1})

	select {
	case <-ov.Redraw():
	default:
		t.Fatal("expected a redraw request after UpdateItem")
	}
}

func TestFactoriesRotateColours(t *testing.T) {
	ov := overlay.New()
	boxes := NewBoxFactory(ov, DefaultBoxStyle(), nil)
	faces := NewCentroidFactory(ov, DefaultCentroidStyle(), nil)

	var boxColours, faceColours []any
	for i := 0; i < 3; i++ {
		boxColours = append(boxColours, boxes.Create(common.BoundingBox{}).Graphic().(*BoxGraphic).Style().Color)
		faceColours = append(faceColours, faces.Create(common.Face{}).Graphic().(*CentroidGraphic).Style().Color)
	}

	assert.ElementsMatch(t, []any{Blue, Cyan, Green}, boxColours)
	assert.ElementsMatch(t, []any{Magenta, Red, Yellow}, faceColours)

	fourth := boxes.Create(common.BoundingBox{}).Graphic().(*BoxGraphic).Style().Color
	assert.Equal(t, boxColours[0], fourth)
}
