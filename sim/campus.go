package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// CampusLocale is the reserved name of the catch-all locale. It participates
// in capacity and nearest-pad searches but is never a scheduled destination.
const CampusLocale = "campus"

// ErrUnknownLocale reports a reference to a locale name absent from the
// compiled dataset. Fatal to the run that produced it.
var ErrUnknownLocale = errors.New("unknown locale")

// Campus aggregates every locale plus the special "campus" locale and answers
// campus-wide spatial queries. It also maintains the biker→pad back-reference
// that makes relocation a single atomic remove-then-add.
type Campus struct {
	locales    map[string]*Locale
	buildNames []string
	campus     *Locale

	maxPopulation   int
	maxBikeCapacity int

	// bikerPad is a lookup relation, not an ownership edge: pads own their
	// occupant lists, this index just answers "where is biker X" in O(1).
	bikerPad map[string]*RackPad
}

// NewCampus builds the campus from a validated compiled dataset.
func NewCampus(ds *CompiledDataset) (*Campus, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("compiled dataset: %w", err)
	}
	c := &Campus{
		locales:         make(map[string]*Locale, len(ds.BuildNames)),
		buildNames:      append([]string(nil), ds.BuildNames...),
		campus:          NewLocale(CampusLocale, ds.Campus),
		maxPopulation:   ds.TotalOcc,
		maxBikeCapacity: ds.TotalBikeCap,
		bikerPad:        make(map[string]*RackPad),
	}
	for _, name := range c.buildNames {
		c.locales[name] = NewLocale(name, ds.Locs[name])
	}
	return c, nil
}

// BuildNames returns the destination locale names in dataset order.
func (c *Campus) BuildNames() []string {
	return append([]string(nil), c.buildNames...)
}

// MaxPopulation returns the campus-wide headcount total.
func (c *Campus) MaxPopulation() int { return c.maxPopulation }

// MaxBikeCapacity returns the campus-wide slot capacity total.
func (c *Campus) MaxBikeCapacity() int { return c.maxBikeCapacity }

// Locale resolves a locale by name, including the special "campus" locale.
func (c *Campus) Locale(name string) (*Locale, error) {
	if name == CampusLocale {
		return c.campus, nil
	}
	l, ok := c.locales[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, name)
	}
	return l, nil
}

// DestinationLocale resolves a scheduled destination. "campus" is never a
// valid destination.
func (c *Campus) DestinationLocale(name string) (*Locale, error) {
	l, ok := c.locales[name]
	if !ok {
		return nil, fmt.Errorf("%w: destination %q", ErrUnknownLocale, name)
	}
	return l, nil
}

// AllPads returns every pad on campus: locales in dataset order, the campus
// locale last, pads in registration order within each.
func (c *Campus) AllPads() []*RackPad {
	var pads []*RackPad
	for _, name := range c.buildNames {
		pads = append(pads, c.locales[name].Pads()...)
	}
	pads = append(pads, c.campus.Pads()...)
	return pads
}

// NearestPad returns the pad in the destination locale closest to
// startCoords, ignoring capacity.
func (c *Campus) NearestPad(startCoords Coordinate, destLocale string) (*RackPad, error) {
	logrus.Debugf("finding nearest %s pad from (%v, %v)", destLocale, startCoords.Lon, startCoords.Lat)
	l, err := c.DestinationLocale(destLocale)
	if err != nil {
		return nil, err
	}
	return l.NearestPad(startCoords, nil), nil
}

// NearestAvailablePad returns the closest pad with free capacity inside the
// destination locale, or nil when the locale is exhausted. It does not look
// at other locales; NearestCampusWidePad is the fallback for that.
func (c *Campus) NearestAvailablePad(startCoords Coordinate, destLocale string) (*RackPad, error) {
	l, err := c.DestinationLocale(destLocale)
	if err != nil {
		return nil, err
	}
	return l.NearestAvailablePad(startCoords), nil
}

// NearestCampusWidePad scans every pad on campus, including the "campus"
// locale, and returns the closest one with a free slot. Full pads are
// skipped. When ignoreStart is set, a pad whose coordinate exactly equals
// startCoords is also skipped. Returns nil when every pad is full.
func (c *Campus) NearestCampusWidePad(startCoords Coordinate, ignoreStart bool) *RackPad {
	var best *RackPad
	var bestDist float64
	for _, p := range c.AllPads() {
		if !p.HasFreeSlot() {
			continue
		}
		pc := p.Coordinates()
		if ignoreStart && pc == startCoords {
			continue
		}
		d := Distance(startCoords, pc)
		if best == nil || d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

// RelocateBiker removes the biker from its current pad (if any) and places it
// on dest, updating both the pad occupant lists and the biker→pad index as
// one logical operation. The caller must have verified dest has a free slot.
func (c *Campus) RelocateBiker(b *Biker, dest *RackPad) {
	if prev, ok := c.bikerPad[b.Name()]; ok {
		prev.RemoveBiker(b.Name())
	}
	dest.AddBiker(b)
	c.bikerPad[b.Name()] = dest
}

// PadOf returns the pad the biker currently occupies, or nil when the biker
// has not been parked yet.
func (c *Campus) PadOf(b *Biker) *RackPad {
	return c.bikerPad[b.Name()]
}

// Snapshot captures the entire campus hierarchy for a cycle report document.
func (c *Campus) Snapshot() CampusSnapshot {
	s := CampusSnapshot{
		MaxPop:  c.maxPopulation,
		BikeCap: c.maxBikeCapacity,
	}
	for _, name := range c.buildNames {
		s.Locales = append(s.Locales, c.locales[name].Snapshot())
	}
	s.Locales = append(s.Locales, c.campus.Snapshot())
	return s
}
