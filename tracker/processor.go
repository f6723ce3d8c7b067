package tracker

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Detection is one item reported by the detector in a frame.
type Detection[T any] struct {
	ID   int
	Item T
}

// Convert maps the payloads of a frame's detections, keeping their ids.
func Convert[T, U any](detections []Detection[T], fn func(T) U) []Detection[U] {
	out := make([]Detection[U], len(detections))
	for i, d := range detections {
		out[i] = Detection[U]{ID: d.ID, Item: fn(d.Item)}
	}
	return out
}

// Config controls how the processor turns frames into tracker events.
type Config struct {
	// MaxGapFrames is how many consecutive frames an item may be missing before
	// its tracker is told it is done.
	MaxGapFrames int `json:"max_gap_frames"`
}

// DefaultConfig returns the processor defaults.
func DefaultConfig() Config {
	return Config{MaxGapFrames: 3}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MaxGapFrames < 0 {
		return errors.Errorf("max gap frames must be >= 0, got %d", c.MaxGapFrames)
	}
	return nil
}

type entry[T any] struct {
	tracker *Tracker[T]
	misses  int
}

// Processor fans one detector's per-frame results out to per-item trackers,
// creating a tracker on first sighting and retiring it after too many missed frames.
type Processor[T any] struct {
	mu       sync.Mutex
	cfg      Config
	factory  Creator[T]
	trackers map[int]*entry[T]
	frames   uint64
	logger   *zap.Logger
}

// NewProcessor creates a processor that builds trackers with factory.
func NewProcessor[T any](factory Creator[T], cfg Config, logger *zap.Logger) *Processor[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor[T]{
		cfg:      cfg,
		factory:  factory,
		trackers: make(map[int]*entry[T]),
		logger:   logger,
	}
}

// ReceiveDetections processes the detections of one frame.
//
// Items seen for the first time get a tracker (OnNewItem then OnUpdate). Items
// already tracked get OnUpdate. Tracked items absent from the frame get OnMissing,
// or OnDone once they have been missing for more than MaxGapFrames frames. If an id
// appears twice in one frame, the last detection wins.
func (p *Processor[T]) ReceiveDetections(detections []Detection[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frames++

	// Trackers are created in input order so palette colours follow first sighting.
	// A repeated id keeps its first position and its last payload.
	latest := make(map[int]int, len(detections))
	order := make([]int, 0, len(detections))
	for i, d := range detections {
		if _, ok := latest[d.ID]; !ok {
			order = append(order, d.ID)
		}
		latest[d.ID] = i
	}

	for _, id := range order {
		item := detections[latest[id]].Item
		e, ok := p.trackers[id]
		if !ok {
			e = &entry[T]{tracker: p.factory.Create(item)}
			p.trackers[id] = e
			e.tracker.OnNewItem(id, item)
			p.logger.Debug("new item",
				zap.Int("id", id),
				zap.Uint64("frame", p.frames))
		}
		e.misses = 0
		e.tracker.OnUpdate(item)
	}

	for _, id := range p.sortedIDs() {
		if _, ok := latest[id]; ok {
			continue
		}
		e := p.trackers[id]
		e.misses++
		if e.misses > p.cfg.MaxGapFrames {
			e.tracker.OnDone()
			delete(p.trackers, id)
			p.logger.Debug("item retired",
				zap.Int("id", id),
				zap.Int("missed_frames", e.misses))
			continue
		}
		e.tracker.OnMissing()
	}
}

// sortedIDs returns the tracked ids in ascending order. Caller holds p.mu.
func (p *Processor[T]) sortedIDs() []int {
	ids := make([]int, 0, len(p.trackers))
	for id := range p.trackers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Release ends every tracker, for example when the detector stops.
func (p *Processor[T]) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, id := range p.sortedIDs() {
		p.trackers[id].tracker.OnDone()
		delete(p.trackers, id)
	}
	p.logger.Debug("processor released", zap.Uint64("frames", p.frames))
}

// Tracker returns the live tracker for an id.
func (p *Processor[T]) Tracker(id int) (*Tracker[T], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.trackers[id]
	if !ok {
		return nil, false
	}
	return e.tracker, true
}

// Tracked returns the ids with a live tracker in ascending order.
func (p *Processor[T]) Tracked() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sortedIDs()
}

// Frames returns how many frames have been processed.
func (p *Processor[T]) Frames() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}
