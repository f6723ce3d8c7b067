// Package tracker - Per-item lifecycle that decides when an annotation is visible.
//
// A Tracker exists for every item the detector is following. It separates "tracked"
// from "visible": a missed frame hides the annotation but keeps its identity, style and
// last payload, so the next update can show it again without rebuilding anything.
package tracker

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/nvr-ai/go-overlay/overlay"
)

// State is the lifecycle state of a tracked item.
type State int

const (
	// StateUnseen is the initial state before the detector reports the item.
	StateUnseen State = iota
	// StatePending means the identity is known but no payload has been drawn yet.
	StatePending
	// StateVisible means the annotation is in the overlay's visibility set.
	StateVisible
	// StateHidden means the item is still tracked but was missing from the last frame.
	StateHidden
	// StateGone is terminal. The tracker and its annotation can be discarded.
	StateGone
)

func (s State) String() string {
	switch s {
	case StateUnseen:
		return "unseen"
	case StatePending:
		return "pending"
	case StateVisible:
		return "visible"
	case StateHidden:
		return "hidden"
	case StateGone:
		return "gone"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Tracker drives one annotation on the overlay from the detection events of one item.
//
// Events for a single item arrive in order from one goroutine. Events delivered after
// OnDone are ignored and logged at debug level.
type Tracker[T any] struct {
	mu      sync.Mutex
	overlay *overlay.Overlay
	graphic overlay.TrackedGraphic[T]
	state   State
	logger  *zap.Logger
}

// New creates a tracker for graphic on ov. A nil logger disables logging.
func New[T any](ov *overlay.Overlay, graphic overlay.TrackedGraphic[T], logger *zap.Logger) *Tracker[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker[T]{
		overlay: ov,
		graphic: graphic,
		state:   StateUnseen,
		logger:  logger,
	}
}

// Graphic returns the annotation owned by this tracker.
func (t *Tracker[T]) Graphic() overlay.TrackedGraphic[T] {
	return t.graphic
}

// State returns the current lifecycle state.
func (t *Tracker[T]) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// OnNewItem starts tracking the item and records its identity on the annotation.
// Nothing is drawn until the first OnUpdate.
func (t *Tracker[T]) OnNewItem(id int, item T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ignore("new_item") {
		return
	}
	t.graphic.SetID(id)
	if t.state == StateUnseen {
		t.state = StatePending
	}
	t.logger.Debug("tracking item", zap.Int("id", id))
}

// OnUpdate shows the annotation and replaces its payload with the latest state.
func (t *Tracker[T]) OnUpdate(item T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ignore("update") {
		return
	}
	t.overlay.Add(t.graphic)
	t.graphic.UpdateItem(item)
	t.state = StateVisible
}

// OnMissing hides the annotation for a frame in which the item was not detected.
// The payload is kept so a later OnUpdate restores it.
func (t *Tracker[T]) OnMissing() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ignore("missing") {
		return
	}
	t.overlay.Remove(t.graphic)
	if t.state == StateVisible {
		t.state = StateHidden
	}
}

// OnDone removes the annotation for good. Every later event is ignored.
func (t *Tracker[T]) OnDone() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ignore("done") {
		return
	}
	t.overlay.Remove(t.graphic)
	t.state = StateGone
	t.logger.Debug("item gone", zap.Int("id", t.graphic.ID()))
}

// ignore reports whether the tracker is terminal. Caller holds t.mu.
func (t *Tracker[T]) ignore(event string) bool {
	if t.state != StateGone {
		return false
	}
	t.logger.Debug("event after done ignored",
		zap.Int("id", t.graphic.ID()),
		zap.String("event", event))
	return true
}
