// Package test - Deterministic fakes for exercising the overlay without a display.
package test

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/nvr-ai/go-overlay/overlay"
)

// OpKind names a drawing primitive recorded by RecordingCanvas.
type OpKind string

// Drawing primitives.
const (
	OpRect    OpKind = "rect"
	OpCircle  OpKind = "circle"
	OpEllipse OpKind = "ellipse"
	OpText    OpKind = "text"
)

// Op is one recorded drawing call. Args holds the numeric arguments in call order.
type Op struct {
	Kind  OpKind
	Args  []float32
	Text  string
	Style overlay.Style
}

// RecordingCanvas is an overlay.Canvas that records every call instead of painting.
//
// @example
// c := NewRecordingCanvas(800, 480)
// ov.Draw(c)
// rects := c.OpsOf(OpRect)
type RecordingCanvas struct {
	mu     sync.Mutex
	width  int
	height int
	ops    []Op
}

// NewRecordingCanvas creates a recording canvas with the given size.
func NewRecordingCanvas(width, height int) *RecordingCanvas {
	return &RecordingCanvas{width: width, height: height}
}

// Resize changes the reported canvas size, as a window resize would.
func (c *RecordingCanvas) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
}

func (c *RecordingCanvas) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

func (c *RecordingCanvas) Height() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

func (c *RecordingCanvas) DrawRect(left, top, right, bottom float32, style overlay.Style) {
	c.record(Op{Kind: OpRect, Args: []float32{left, top, right, bottom}, Style: style})
}

func (c *RecordingCanvas) DrawCircle(cx, cy, radius float32, style overlay.Style) {
	c.record(Op{Kind: OpCircle, Args: []float32{cx, cy, radius}, Style: style})
}

func (c *RecordingCanvas) DrawEllipse(left, top, right, bottom float32, style overlay.Style) {
	c.record(Op{Kind: OpEllipse, Args: []float32{left, top, right, bottom}, Style: style})
}

func (c *RecordingCanvas) DrawText(text string, x, y float32, style overlay.Style) {
	c.record(Op{Kind: OpText, Args: []float32{x, y}, Text: text, Style: style})
}

func (c *RecordingCanvas) record(op Op) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, op)
}

// Ops returns a copy of every recorded call.
func (c *RecordingCanvas) Ops() []Op {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Op(nil), c.ops...)
}

// OpsOf returns the recorded calls of one kind.
func (c *RecordingCanvas) OpsOf(kind OpKind) []Op {
	var out []Op
	for _, op := range c.Ops() {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset discards recorded calls.
func (c *RecordingCanvas) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = nil
}

// StubGraphic is a TrackedGraphic over any payload that counts draws and keeps the
// mapper it was last drawn with.
type StubGraphic[T any] struct {
	overlay *overlay.Overlay
	id      atomic.Int64
	idSet   atomic.Bool
	item    atomic.Pointer[T]
	draws   atomic.Int64

	mu         sync.Mutex
	lastMapper overlay.Mapper
}

// NewStubGraphic creates a stub bound to an overlay for redraw requests. ov may be nil.
func NewStubGraphic[T any](ov *overlay.Overlay) *StubGraphic[T] {
	return &StubGraphic[T]{overlay: ov}
}

func (g *StubGraphic[T]) ID() int {
	return int(g.id.Load())
}

func (g *StubGraphic[T]) SetID(id int) {
	if g.idSet.CompareAndSwap(false, true) {
		g.id.Store(int64(id))
	}
}

func (g *StubGraphic[T]) UpdateItem(item T) {
	g.item.Store(&item)
	if g.overlay != nil {
		g.overlay.Invalidate()
	}
}

// Item returns the latest payload, or nil before the first update.
func (g *StubGraphic[T]) Item() *T {
	return g.item.Load()
}

func (g *StubGraphic[T]) Draw(c overlay.Canvas, m overlay.Mapper) {
	item := g.item.Load()
	if item == nil {
		return
	}
	g.draws.Add(1)
	g.mu.Lock()
	g.lastMapper = m
	g.mu.Unlock()
	c.DrawText(fmt.Sprint(*item), 0, 0, overlay.Style{})
}

// Draws returns how many times the stub rendered a payload.
func (g *StubGraphic[T]) Draws() int {
	return int(g.draws.Load())
}

// LastMapper returns the mapper from the most recent draw.
func (g *StubGraphic[T]) LastMapper() overlay.Mapper {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastMapper
}

// MockFrameGenerator creates deterministic preview frames.
//
// @example
// gen := NewMockFrameGenerator(640, 480)
// frame := gen.GenerateStaticFrame()
type MockFrameGenerator struct {
	width  int
	height int
}

// NewMockFrameGenerator creates a new frame generator with specified dimensions.
func NewMockFrameGenerator(width, height int) *MockFrameGenerator {
	return &MockFrameGenerator{width: width, height: height}
}

// GenerateStaticFrame creates a mid-gray frame.
func (g *MockFrameGenerator) GenerateStaticFrame() *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	gray := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			frame.SetRGBA(x, y, gray)
		}
	}
	return frame
}

// GenerateObjectFrame creates a frame with a white square standing in for a detected
// object at the given position.
func (g *MockFrameGenerator) GenerateObjectFrame(x, y, size int) *image.RGBA {
	frame := g.GenerateStaticFrame()
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for py := y; py < y+size && py < g.height; py++ {
		for px := x; px < x+size && px < g.width; px++ {
			frame.SetRGBA(px, py, white)
		}
	}
	return frame
}
