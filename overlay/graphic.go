package overlay

// Graphic is a drawable annotation in the overlay's visibility set.
//
// Implementations must be pointer types: the overlay keys its set by the interface
// value. Draw runs while the overlay lock is held, so it must not call back into
// the overlay except through Invalidate.
type Graphic interface {
	// ID returns the identity assigned at first sighting.
	ID() int
	// Draw renders the annotation. It is a no-op until the first payload arrives.
	Draw(c Canvas, m Mapper)
}

// TrackedGraphic is a Graphic driven by a tracker for items of type T.
type TrackedGraphic[T any] interface {
	Graphic
	// SetID records the identity. Only the first call has an effect.
	SetID(id int)
	// UpdateItem replaces the latest payload and requests a redraw. It is safe to
	// call concurrently with Draw.
	UpdateItem(item T)
}
