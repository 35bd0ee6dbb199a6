package sim

// AdvanceState classifies the outcome of advancing a biker's schedule cursor.
type AdvanceState int

const (
	// AdvanceOK means the cursor moved and a further destination exists.
	AdvanceOK AdvanceState = iota
	// AdvanceLastStop means the cursor moved past the final itinerary entry:
	// the biker has no further destination.
	AdvanceLastStop
	// AdvanceExhausted means the cursor was already past the end before the
	// call. Callers must treat this as "no further destination", not as an
	// error.
	AdvanceExhausted
)

// Biker is a mobile agent with an identity, an ordered itinerary of
// destination locale names, a cursor into it, and a current location.
// Bikers are created by ScheduleGen and mutated every simulation step.
type Biker struct {
	name      string
	itinerary []string
	cursor    int

	locale string
	coord  Coordinate
}

// NewBiker creates a biker at the given starting coordinate. The starting
// locale is empty until the first relocation parks the biker somewhere.
func NewBiker(name string, itinerary []string, start Coordinate) *Biker {
	return &Biker{
		name:      name,
		itinerary: itinerary,
		coord:     start,
	}
}

// Name returns the biker's unique name.
func (b *Biker) Name() string { return b.name }

// Location returns the biker's current locale (empty before first parking)
// and coordinate.
func (b *Biker) Location() (string, Coordinate) {
	return b.locale, b.coord
}

// Coordinates returns the biker's current coordinate.
func (b *Biker) Coordinates() Coordinate { return b.coord }

// Destination returns the next scheduled destination without advancing the
// cursor. ok is false once the itinerary is exhausted.
func (b *Biker) Destination() (dest string, ok bool) {
	if b.cursor >= len(b.itinerary) {
		return "", false
	}
	return b.itinerary[b.cursor], true
}

// AdvanceSchedule moves the cursor forward one entry and classifies the
// result.
func (b *Biker) AdvanceSchedule() AdvanceState {
	prev := b.cursor
	b.cursor++
	switch {
	case prev >= len(b.itinerary):
		return AdvanceExhausted
	case b.cursor >= len(b.itinerary):
		return AdvanceLastStop
	default:
		return AdvanceOK
	}
}

// relocateTo updates the biker's stored location. Only RackPad.AddBiker calls
// this, so location always matches the owning pad.
func (b *Biker) relocateTo(coord Coordinate, locale string) {
	b.coord = coord
	b.locale = locale
}

// Snapshot captures the biker's identity and schedule progress for a cycle
// report document.
func (b *Biker) Snapshot() BikerSnapshot {
	return BikerSnapshot{
		Name:      b.name,
		Itinerary: append([]string(nil), b.itinerary...),
		Cursor:    b.cursor,
	}
}
