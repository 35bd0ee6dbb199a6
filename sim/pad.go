package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// RequestCounts tracks how many placement requests a pad has seen and how
// many of them found a free slot at request time.
type RequestCounts struct {
	Satisfied   int `yaml:"sat"`
	Unsatisfied int `yaml:"unsat"`
	Total       int `yaml:"total"`
}

// RackPad is a physical cluster of bike racks at one coordinate with a fixed
// total slot capacity. It tracks its current occupants and cumulative request
// counters for the cycle.
type RackPad struct {
	name       string
	localeName string
	coord      Coordinate
	capacity   int
	rackCount  int

	occupants []*Biker
	requests  RequestCounts
}

// PadName derives the canonical pad name from its owning locale and
// coordinate.
func PadName(locale string, c Coordinate) string {
	return fmt.Sprintf("%s_(%v, %v)", locale, c.Lon, c.Lat)
}

// NewRackPad creates a pad owned by the named locale.
func NewRackPad(localeName string, coord Coordinate, capacity, racks int) *RackPad {
	return &RackPad{
		name:       PadName(localeName, coord),
		localeName: localeName,
		coord:      coord,
		capacity:   capacity,
		rackCount:  racks,
	}
}

// Name returns the pad's unique name.
func (p *RackPad) Name() string { return p.name }

// LocaleName returns the name of the locale that owns this pad.
func (p *RackPad) LocaleName() string { return p.localeName }

// Coordinates returns the pad's location.
func (p *RackPad) Coordinates() Coordinate { return p.coord }

// Capacity returns the pad's total slot count.
func (p *RackPad) Capacity() int { return p.capacity }

// RackCount returns the number of physical racks on the pad.
func (p *RackPad) RackCount() int { return p.rackCount }

// Requests returns the pad's cumulative request counters.
func (p *RackPad) Requests() RequestCounts { return p.requests }

// FreeSlots returns the number of unoccupied slots.
func (p *RackPad) FreeSlots() int {
	return p.capacity - len(p.occupants)
}

// HasFreeSlot reports whether at least one slot is unoccupied.
func (p *RackPad) HasFreeSlot() bool {
	return len(p.occupants) < p.capacity
}

// RegisterRequest records one placement request against the pad, counted as
// satisfied or unsatisfied based on availability at call time. Call it before
// changing occupancy.
func (p *RackPad) RegisterRequest() {
	p.requests.Total++
	if p.HasFreeSlot() {
		p.requests.Satisfied++
	} else {
		p.requests.Unsatisfied++
	}
}

// AddBiker places the biker on this pad and updates the biker's stored
// location. It does NOT check capacity: the caller must have verified
// availability first. Campus.RelocateBiker is the gated entry point.
func (p *RackPad) AddBiker(b *Biker) {
	b.relocateTo(p.coord, p.localeName)
	p.occupants = append(p.occupants, b)
}

// RemoveBiker removes the named biker from this pad, reporting whether it was
// present.
func (p *RackPad) RemoveBiker(name string) bool {
	for i, b := range p.occupants {
		if b.Name() == name {
			p.occupants = append(p.occupants[:i], p.occupants[i+1:]...)
			logrus.Debugf("removed biker %s from pad %s", name, p.name)
			return true
		}
	}
	return false
}

// Occupants returns the bikers currently parked on the pad, in arrival order.
func (p *RackPad) Occupants() []*Biker {
	out := make([]*Biker, len(p.occupants))
	copy(out, p.occupants)
	return out
}

// Snapshot captures the pad's full state for a cycle report document.
func (p *RackPad) Snapshot() PadSnapshot {
	s := PadSnapshot{
		Lon:      p.coord.Lon,
		Lat:      p.coord.Lat,
		Cap:      p.capacity,
		Racks:    p.rackCount,
		OpenCap:  p.FreeSlots(),
		Requests: p.requests,
	}
	for _, b := range p.occupants {
		s.Bikers = append(s.Bikers, b.Snapshot())
	}
	return s
}
