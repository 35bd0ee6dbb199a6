package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/bikepark-sim/bikepark-sim/sim"
)

// Pad is the optimizer-side view of a rack pad: its capacity split into
// per-rack chunks, the usage statistics of the simulation cycle just
// completed, and the precomputed distance to the nearest other pad.
type Pad struct {
	name   string
	locale string
	coord  sim.Coordinate

	usage         int
	extraDistance float64
	requests      sim.RequestCounts
	schedFactor   float64

	startingCapacity int
	totalCapacity    int
	totalRacks       int
	racks            map[int]*Rack

	// Set once per layout by CampusLayout.
	nearestDistance float64
}

// newPad splits capacity into ceil(cap/racks)-sized chunks assigned in order
// until capacity runs out; the final rack absorbs the remainder and
// zero-capacity racks are dropped.
func newPad(locale, name string, coord sim.Coordinate, capacity, racks, usage int,
	extraDistance float64, requests sim.RequestCounts, schedFactor float64) *Pad {

	p := &Pad{
		name:             name,
		locale:           locale,
		coord:            coord,
		usage:            usage,
		extraDistance:    extraDistance,
		requests:         requests,
		schedFactor:      schedFactor,
		startingCapacity: capacity,
		totalCapacity:    capacity,
		totalRacks:       racks,
		racks:            make(map[int]*Rack),
	}

	chunk := 0
	if racks > 0 {
		chunk = int(math.Ceil(float64(capacity) / float64(racks)))
	}

	avail := capacity
	for i := 0; i < racks; i++ {
		rackCap := chunk
		if avail < chunk {
			rackCap = avail
		}
		avail -= rackCap
		if rackCap >= 1 {
			p.racks[i] = &Rack{name: fmt.Sprintf("%s/%d", name, i), capacity: rackCap}
		}
	}

	logrus.Debugf("pad %s at (%v, %v): %d racks, %d capacity", name, coord.Lon, coord.Lat, racks, capacity)
	return p
}

// Name returns the pad's layout name.
func (p *Pad) Name() string { return p.name }

// Locale returns the owning locale name.
func (p *Pad) Locale() string { return p.locale }

// Coordinates returns the pad's location.
func (p *Pad) Coordinates() sim.Coordinate { return p.coord }

// Capacity returns the pad's current total capacity.
func (p *Pad) Capacity() int { return p.totalCapacity }

// RackCount returns the pad's current rack count.
func (p *Pad) RackCount() int { return p.totalRacks }

// ExtraDistance returns the locale-level summed excess distance attributed
// to this pad's locale in the prior cycle.
func (p *Pad) ExtraDistance() float64 { return p.extraDistance }

// NearestDistance returns the precomputed distance to the nearest other pad.
func (p *Pad) NearestDistance() float64 { return p.nearestDistance }

func (p *Pad) setNearestDistance(d float64) { p.nearestDistance = d }

// UtilizationScore grades the pad. Low capacity with high usage scores high
// (over-utilized), high capacity with low usage scores low (under-utilized);
// the nearest-alternative distance scales how much a misfit matters. Pads
// with no request history fall back to raw usage.
func (p *Pad) UtilizationScore() float64 {
	if p.requests.Total < 1 {
		return float64(p.usage)
	}
	useFactor := float64(p.usage) / p.schedFactor
	score := (useFactor - float64(p.totalCapacity)) * p.nearestDistance
	logrus.Debugf("%s: score=%v usage=%d capacity=%d dist=%v",
		p.name, score, p.usage, p.totalCapacity, p.nearestDistance)
	return score
}

// RemoveRack detaches the lowest-indexed rack and returns it, or nil when
// the pad has no rack left to give.
func (p *Pad) RemoveRack() *Rack {
	if len(p.racks) == 0 {
		return nil
	}
	idxs := make([]int, 0, len(p.racks))
	for i := range p.racks {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)

	i := idxs[0]
	rack := p.racks[i]
	delete(p.racks, i)
	p.totalCapacity -= rack.capacity
	p.totalRacks--
	logrus.Infof("removing rack %s (%d capacity) from %s", rack.name, rack.capacity, p.name)
	return rack
}

// AddRack attaches a rack at the lowest free index.
func (p *Pad) AddRack(rack *Rack) {
	logrus.Infof("adding rack %s (%d capacity) to %s", rack.name, rack.capacity, p.name)
	i := 0
	for p.racks[i] != nil {
		i++
	}
	p.racks[i] = rack
	p.totalRacks++
	p.totalCapacity += rack.capacity
}

// Spec serializes the pad back into the compiled-dataset shape.
func (p *Pad) Spec() sim.PadSpec {
	return sim.PadSpec{
		Lon:   p.coord.Lon,
		Lat:   p.coord.Lat,
		Racks: p.totalRacks,
		Cap:   p.totalCapacity,
	}
}
