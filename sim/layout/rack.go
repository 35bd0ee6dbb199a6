// Package layout rebuilds a mutable rack topology from the compiled dataset
// and a cycle's aggregated statistics, then runs greedy rebalancing passes
// that move indivisible rack units between pads.
//
// The rebuild is a pure "snapshot in, new topology out" transform: nothing
// carries over between cycles except the reserialized dataset.
package layout

// Rack is an indivisible capacity-bearing unit owned by exactly one Pad at a
// time. It is the unit transferred during rebalancing.
type Rack struct {
	name     string
	capacity int
}

// Name returns the rack's name ("<pad>/<index>" at creation).
func (r *Rack) Name() string { return r.name }

// Capacity returns the rack's slot capacity.
func (r *Rack) Capacity() int { return r.capacity }
