package tracker

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-overlay/common"
	"github.com/nvr-ai/go-overlay/images"
)

// AssociatorConfig controls identity assignment for detectors that do not track.
type AssociatorConfig struct {
	// IoUThreshold is the minimum overlap for a box to keep a previous id.
	IoUThreshold float32 `json:"iou_threshold"`
	// MaxGapFrames is how long an unmatched id stays available for re-matching.
	MaxGapFrames int `json:"max_gap_frames"`
}

// DefaultAssociatorConfig returns the associator defaults.
func DefaultAssociatorConfig() AssociatorConfig {
	return AssociatorConfig{IoUThreshold: 0.3, MaxGapFrames: 3}
}

// Validate checks the configuration.
func (c AssociatorConfig) Validate() error {
	if c.IoUThreshold <= 0 || c.IoUThreshold > 1 {
		return errors.Errorf("iou threshold must be in (0, 1], got %v", c.IoUThreshold)
	}
	if c.MaxGapFrames < 0 {
		return errors.Errorf("max gap frames must be >= 0, got %d", c.MaxGapFrames)
	}
	return nil
}

type track struct {
	rect   images.Rect
	misses int
}

// Associator gives stable ids to boxes from a detector that reports each frame in
// isolation, such as a cascade classifier. Boxes are matched greedily to the
// previous positions of live ids by IoU. It is not safe for concurrent use.
type Associator struct {
	cfg    AssociatorConfig
	nextID int
	tracks map[int]*track
}

// NewAssociator creates an associator. Ids start at 1.
func NewAssociator(cfg AssociatorConfig) *Associator {
	return &Associator{
		cfg:    cfg,
		nextID: 1,
		tracks: make(map[int]*track),
	}
}

type candidate struct {
	id  int
	box int
	iou float32
}

// Assign labels the boxes of one frame with ids.
//
// Arguments:
//   - boxes: The frame's detections in source coordinates.
//
// Returns:
//   - []Detection[common.BoundingBox]: One detection per box, in input order.
func (a *Associator) Assign(boxes []common.BoundingBox) []Detection[common.BoundingBox] {
	rects := make([]images.Rect, len(boxes))
	for i := range boxes {
		rects[i] = boxes[i].Rect()
	}

	var candidates []candidate
	for id, t := range a.tracks {
		for i, r := range rects {
			if iou := images.CalculateIoU(t.rect, r); iou >= a.cfg.IoUThreshold {
				candidates = append(candidates, candidate{id: id, box: i, iou: iou})
			}
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].iou == candidates[j].iou {
			if candidates[i].id == candidates[j].id {
				return candidates[i].box < candidates[j].box
			}
			return candidates[i].id < candidates[j].id
		}
		return candidates[i].iou > candidates[j].iou
	})

	ids := make([]int, len(boxes))
	usedID := make(map[int]bool)
	for _, c := range candidates {
		if usedID[c.id] || ids[c.box] != 0 {
			continue
		}
		usedID[c.id] = true
		ids[c.box] = c.id
	}

	for id, t := range a.tracks {
		if usedID[id] {
			t.misses = 0
			continue
		}
		t.misses++
		if t.misses > a.cfg.MaxGapFrames {
			delete(a.tracks, id)
		}
	}

	out := make([]Detection[common.BoundingBox], len(boxes))
	for i := range boxes {
		if ids[i] == 0 {
			ids[i] = a.nextID
			a.nextID++
			a.tracks[ids[i]] = &track{}
		}
		a.tracks[ids[i]].rect = rects[i]
		out[i] = Detection[common.BoundingBox]{ID: ids[i], Item: boxes[i]}
	}
	return out
}

// Live returns how many ids are currently available for matching.
func (a *Associator) Live() int {
	return len(a.tracks)
}
