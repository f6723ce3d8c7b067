package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-overlay/overlay"
)

func TestMatCanvasDraws(t *testing.T) {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer m.Close()

	c := NewMat(&m)
	assert.Equal(t, 160, c.Width())
	assert.Equal(t, 120, c.Height())

	c.DrawRect(10, 10, 50, 50, overlay.Style{Color: red, Fill: true})

	// Mats are BGR; red lands in channel 2.
	assert.Equal(t, uint8(255), m.GetVecbAt(30, 30)[2])
	assert.Equal(t, uint8(0), m.GetVecbAt(100, 100)[2])
}

func TestResizeInto(t *testing.T) {
	src := gocv.NewMatWithSize(100, 200, gocv.MatTypeCV8UC3)
	defer src.Close()
	dst := gocv.NewMat()
	defer dst.Close()

	c, err := ResizeInto(src, &dst, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, 100, c.Width())
	assert.Equal(t, 50, c.Height())

	empty := gocv.NewMat()
	defer empty.Close()
	_, err = ResizeInto(empty, &dst, 100, 50)
	assert.Error(t, err)
}
