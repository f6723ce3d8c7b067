package graphics

import "sync/atomic"

// identity is the write-once track id shared by every annotation variant.
type identity struct {
	id  atomic.Int64
	set atomic.Bool
}

// ID returns the identity assigned at first sighting, or 0 before that.
func (i *identity) ID() int {
	return int(i.id.Load())
}

// SetID records the identity. Later calls are ignored.
func (i *identity) SetID(id int) {
	if i.set.CompareAndSwap(false, true) {
		i.id.Store(int64(id))
	}
}
