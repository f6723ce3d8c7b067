// Package overlay - Thread-safe registry of visible annotations drawn over a camera preview.
//
// The detection pipeline adds, removes and updates annotations from its own
// goroutine while a render loop calls Draw at the display's cadence. A single mutex
// per Overlay serialises the visibility set, the source description and the mapper,
// so a draw pass never sees any of them half updated. Redraw requests are coalesced
// into a capacity-one channel that the render loop drains.
package overlay

import "sync"

// Overlay owns the set of annotations that are currently visible and the source
// frame description used to map them onto a destination surface.
type Overlay struct {
	mu       sync.Mutex
	source   SourceInfo
	mapper   Mapper
	graphics map[Graphic]struct{}

	redraw chan struct{}
}

// New creates an empty overlay with no source information.
func New() *Overlay {
	return &Overlay{
		mapper:   NewMapper(),
		graphics: make(map[Graphic]struct{}),
		redraw:   make(chan struct{}, 1),
	}
}

// SetSourceInfo replaces the source frame description and requests a redraw.
//
// Arguments:
//   - width: Width of the detection frames. Zero only before the first frame.
//   - height: Height of the detection frames. Zero only before the first frame.
//   - mirrored: True when the source is front facing.
func (o *Overlay) SetSourceInfo(width, height int, mirrored bool) {
	o.mu.Lock()
	o.source = SourceInfo{Width: width, Height: height, Mirrored: mirrored}
	o.mu.Unlock()
	o.Invalidate()
}

// SourceInfo returns the current source frame description.
func (o *Overlay) SourceInfo() SourceInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.source
}

// Add inserts a graphic into the visibility set. Adding a graphic that is already
// present leaves the set unchanged.
func (o *Overlay) Add(g Graphic) {
	o.mu.Lock()
	o.graphics[g] = struct{}{}
	o.mu.Unlock()
	o.Invalidate()
}

// Remove deletes a graphic from the visibility set. Removing an absent graphic is a no-op.
func (o *Overlay) Remove(g Graphic) {
	o.mu.Lock()
	delete(o.graphics, g)
	o.mu.Unlock()
	o.Invalidate()
}

// Clear empties the visibility set.
func (o *Overlay) Clear() {
	o.mu.Lock()
	clear(o.graphics)
	o.mu.Unlock()
	o.Invalidate()
}

// Len returns the number of visible graphics.
func (o *Overlay) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.graphics)
}

// Contains reports whether the graphic is currently visible.
func (o *Overlay) Contains(g Graphic) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.graphics[g]
	return ok
}

// Mapper returns the mapper computed by the most recent draw pass.
func (o *Overlay) Mapper() Mapper {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mapper
}

// Draw recomputes the scale factors for the canvas and renders every visible graphic.
// It is called by the render loop, never by the detection side.
//
// The whole pass runs under the overlay lock. Graphics must therefore not call Add,
// Remove, Clear or SetSourceInfo from their Draw method.
func (o *Overlay) Draw(c Canvas) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.mapper.Update(o.source, c.Width(), c.Height())
	m := o.mapper
	for g := range o.graphics {
		g.Draw(c, m)
	}
}

// Invalidate requests an asynchronous redraw. It never blocks: if a request is
// already pending the new one is folded into it.
func (o *Overlay) Invalidate() {
	select {
	case o.redraw <- struct{}{}:
	default:
	}
}

// Redraw returns the channel the render loop waits on for redraw requests.
func (o *Overlay) Redraw() <-chan struct{} {
	return o.redraw
}
