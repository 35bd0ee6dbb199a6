// Tracks run-wide placement metrics for final reporting.

package sim

import "fmt"

// Metrics aggregates statistics about a simulation run. Useful for a quick
// read on how well the current rack layout served the generated demand.
type Metrics struct {
	PlacedMoves         int     // step records emitted
	TotalDistance       float64 // sum of reported travel distances
	TotalExcessDistance float64 // sum of reported excess distances
	WrongLocaleArrivals int     // moves that ended outside the destination locale
	IdealPlacements     int     // moves where the real pad was the ideal pad
	ExhaustedSchedules  int     // biker-steps skipped because the itinerary ran out
	UnplacedBikers      int     // biker-steps where no pad had capacity campus-wide
	SkippedNoPads       int     // biker-steps whose destination locale has zero pads
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Observe folds one emitted step record into the totals.
func (m *Metrics) Observe(rec StepRecord) {
	m.PlacedMoves++
	m.TotalDistance += rec.Distance
	m.TotalExcessDistance += rec.ExcessDistance
	if rec.EndLocale != rec.DestLocale {
		m.WrongLocaleArrivals++
	}
	if rec.ExcessDistance == 0 {
		m.IdealPlacements++
	}
}

// Print displays aggregated metrics at the end of the run.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Placed Moves         : %d\n", m.PlacedMoves)
	if m.PlacedMoves > 0 {
		avgDist := m.TotalDistance / float64(m.PlacedMoves)
		avgExcess := m.TotalExcessDistance / float64(m.PlacedMoves)
		fmt.Printf("Average Distance     : %.2f m\n", avgDist)
		fmt.Printf("Average Excess       : %.2f m\n", avgExcess)
		fmt.Printf("Ideal Placements     : %d\n", m.IdealPlacements)
		fmt.Printf("Wrong-Locale Arrivals: %d\n", m.WrongLocaleArrivals)
	}
	if m.UnplacedBikers > 0 {
		fmt.Printf("Unplaced Biker-Steps : %d\n", m.UnplacedBikers)
	}
	if m.SkippedNoPads > 0 {
		fmt.Printf("Padless Destinations : %d\n", m.SkippedNoPads)
	}
}
