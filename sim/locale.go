package sim

// Locale is one campus building (or the special "campus" catch-all): a fixed
// headcount used as demand weight plus an ordered collection of rack pads.
type Locale struct {
	name      string
	occupancy int
	pads      []*RackPad
}

// NewLocale builds a locale and its pads from the compiled dataset spec.
// Pad registration order follows the spec order and is the nearest-pad
// tie-break order.
func NewLocale(name string, spec LocaleSpec) *Locale {
	l := &Locale{
		name:      name,
		occupancy: spec.Occupancy,
	}
	for _, ps := range spec.RackPads {
		c := Coordinate{Lon: ps.Lon, Lat: ps.Lat}
		l.pads = append(l.pads, NewRackPad(name, c, ps.Cap, ps.Racks))
	}
	return l
}

// Name returns the locale name.
func (l *Locale) Name() string { return l.name }

// Occupancy returns the locale's headcount (demand weight).
func (l *Locale) Occupancy() int { return l.occupancy }

// Pads returns the locale's pads in registration order.
func (l *Locale) Pads() []*RackPad {
	out := make([]*RackPad, len(l.pads))
	copy(out, l.pads)
	return out
}

// TotalCapacity sums the slot capacity across the locale's pads.
func (l *Locale) TotalCapacity() int {
	total := 0
	for _, p := range l.pads {
		total += p.Capacity()
	}
	return total
}

// HasFreeSlot reports whether any pad in the locale has a free slot.
func (l *Locale) HasFreeSlot() bool {
	for _, p := range l.pads {
		if p.HasFreeSlot() {
			return true
		}
	}
	return false
}

// NearestPad returns the pad closest to coords, ignoring capacity. Pads whose
// names appear in exclude are skipped. Ties keep the first-registered pad.
// Returns nil for a locale with no (non-excluded) pads.
func (l *Locale) NearestPad(coords Coordinate, exclude map[string]bool) *RackPad {
	var best *RackPad
	var bestDist float64
	for _, p := range l.pads {
		if exclude[p.Name()] {
			continue
		}
		d := Distance(coords, p.Coordinates())
		if best == nil || d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

// NearestAvailablePad returns the closest pad with a free slot, or nil when
// no pad in the locale has free capacity.
func (l *Locale) NearestAvailablePad(coords Coordinate) *RackPad {
	if !l.HasFreeSlot() {
		return nil
	}
	exclude := make(map[string]bool)
	for {
		p := l.NearestPad(coords, exclude)
		if p == nil {
			return nil
		}
		if p.HasFreeSlot() {
			return p
		}
		exclude[p.Name()] = true
	}
}

// Snapshot captures the locale and all its pads for a cycle report document.
func (l *Locale) Snapshot() LocaleSnapshot {
	s := LocaleSnapshot{
		Locale:    l.name,
		Occupancy: l.occupancy,
		TotalCap:  l.TotalCapacity(),
	}
	for _, p := range l.pads {
		ps := p.Snapshot()
		s.TotalOpenCap += ps.OpenCap
		s.RackPads = append(s.RackPads, ps)
	}
	return s
}
