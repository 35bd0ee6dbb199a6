package layout

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bikepark-sim/bikepark-sim/sim"
	"github.com/bikepark-sim/bikepark-sim/sim/report"
)

// ErrUnknownPad reports a move referencing a pad name absent from the layout.
var ErrUnknownPad = errors.New("unknown pad")

// ErrNoRackToGive reports a donor pad with no rack left to transfer.
var ErrNoRackToGive = errors.New("no rack to give")

// MoveRecord documents one successful rack transfer.
type MoveRecord struct {
	RackCap     int            `yaml:"rack_cap"`
	MoveOrder   int            `yaml:"move_order"`
	StartLocale string         `yaml:"start_locale"`
	StartCoords sim.Coordinate `yaml:"start_coords"`
	EndLocale   string         `yaml:"end_locale"`
	EndCoords   sim.Coordinate `yaml:"end_coords"`
}

// OptimizeResult bundles the move logs of both rebalancing passes.
type OptimizeResult struct {
	FlatDist []MoveRecord `yaml:"flat_dist"`
	FlatUtil []MoveRecord `yaml:"flat_util"`
}

// CampusLayout is the full optimizer topology, rebuilt fresh each cycle from
// the compiled dataset and the aggregated statistics of the run just
// completed. Pad iteration follows padOrder so results are deterministic.
type CampusLayout struct {
	schedFactor float64
	dataset     *sim.CompiledDataset

	buildNames  []string
	localeNames []string

	pads     map[string]*Pad
	padOrder []string
}

// NewCampusLayout rebuilds pads from the dataset and the cycle report.
// schedFactor normalizes usage by the number of schedule steps that produced
// it.
func NewCampusLayout(ds *sim.CompiledDataset, rep report.Report, schedFactor int) (*CampusLayout, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("compiled dataset: %w", err)
	}
	l := &CampusLayout{
		schedFactor: float64(schedFactor),
		dataset:     ds,
		buildNames:  append([]string(nil), ds.BuildNames...),
		pads:        make(map[string]*Pad),
	}
	l.localeNames = append(append([]string(nil), l.buildNames...), sim.CampusLocale)

	for _, locale := range l.localeNames {
		lr, ok := rep[locale]
		if !ok {
			return nil, fmt.Errorf("report missing locale %q", locale)
		}
		exDist := 0.0
		if lr.LocationStats != nil {
			exDist = lr.LocationStats.ExDist
		}
		for i, ps := range lr.PadStats {
			name := fmt.Sprintf("l-%s p-%d", locale, i)
			coord := sim.Coordinate{Lon: ps.Lon, Lat: ps.Lat}
			l.pads[name] = newPad(locale, name, coord, ps.Cap, ps.Racks, ps.Usage,
				exDist, ps.Requests, l.schedFactor)
			l.padOrder = append(l.padOrder, name)
		}
	}

	l.setNearestDistances()
	logrus.Debugf("built campus layout with %d pads", len(l.pads))
	return l, nil
}

// Pad looks up a pad by layout name.
func (l *CampusLayout) Pad(name string) *Pad {
	return l.pads[name]
}

// Pads returns the layout's pads in deterministic order.
func (l *CampusLayout) Pads() []*Pad {
	out := make([]*Pad, 0, len(l.padOrder))
	for _, name := range l.padOrder {
		out = append(out, l.pads[name])
	}
	return out
}

// setNearestDistances precomputes, once per layout, each pad's distance to
// the nearest other pad. Exact-coordinate twins are skipped so duplicated
// entrances do not zero everything out. O(pads^2).
func (l *CampusLayout) setNearestDistances() {
	coords := make([]sim.Coordinate, 0, len(l.padOrder))
	for _, name := range l.padOrder {
		coords = append(coords, l.pads[name].coord)
	}
	for _, name := range l.padOrder {
		p := l.pads[name]
		found := false
		min := 0.0
		for _, c := range coords {
			if c == p.coord {
				continue
			}
			d := sim.Distance(p.coord, c)
			if !found || d < min {
				found = true
				min = d
			}
		}
		p.setNearestDistance(min)
	}
}

// worstUtilization returns the pad name with the lowest (or highest)
// utilization score, skipping banned pads. Empty string when every pad is
// banned.
func (l *CampusLayout) worstUtilization(lowest bool, ban map[string]bool) string {
	best := ""
	var bestScore float64
	for _, name := range l.padOrder {
		if ban[name] {
			continue
		}
		score := l.pads[name].UtilizationScore()
		if best == "" || (lowest && score < bestScore) || (!lowest && score > bestScore) {
			best = name
			bestScore = score
		}
	}
	return best
}

// extremeDistance returns the pad name with the highest (or lowest) excess
// distance, skipping banned pads.
func (l *CampusLayout) extremeDistance(most bool, ban map[string]bool) string {
	best := ""
	var bestDist float64
	for _, name := range l.padOrder {
		if ban[name] {
			continue
		}
		d := l.pads[name].ExtraDistance()
		if best == "" || (most && d > bestDist) || (!most && d < bestDist) {
			best = name
			bestDist = d
		}
	}
	return best
}

// moveRack transfers one rack unit donor→recipient and documents it. Total
// capacity is conserved across the transfer.
func (l *CampusLayout) moveRack(from, to string, order int) (*MoveRecord, error) {
	logrus.Debugf("moving rack from %q to %q", from, to)
	donor := l.pads[from]
	recipient := l.pads[to]
	if donor == nil || recipient == nil {
		return nil, fmt.Errorf("%w: %q -> %q", ErrUnknownPad, from, to)
	}
	rack := donor.RemoveRack()
	if rack == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoRackToGive, from)
	}
	rec := &MoveRecord{
		RackCap:     rack.Capacity(),
		MoveOrder:   order,
		StartLocale: donor.Locale(),
		StartCoords: donor.Coordinates(),
		EndLocale:   recipient.Locale(),
		EndCoords:   recipient.Coordinates(),
	}
	recipient.AddRack(rack)
	return rec, nil
}

// zeroCapacityPads returns the initial donor ban list: a zero-capacity pad
// may never act as a donor.
func (l *CampusLayout) zeroCapacityPads() map[string]bool {
	ban := make(map[string]bool)
	for _, name := range l.padOrder {
		if l.pads[name].totalCapacity <= 0 {
			ban[name] = true
		}
	}
	return ban
}

// FlattenDistances moves racks toward the pads whose locales accumulated the
// most excess distance. Each successful recipient is excluded from later
// picks; each failed donor is permanently banned within the pass. The pass
// ends after moves successes or once failures exceed maxFailures.
func (l *CampusLayout) FlattenDistances(moves, maxFailures int) []MoveRecord {
	logrus.Debugf("flattening excess distances over %d moves", moves)
	var out []MoveRecord
	banned := l.zeroCapacityPads()
	recipients := make(map[string]bool)
	failures := 0
	for len(out) < moves {
		to := l.extremeDistance(true, recipients)
		from := l.extremeDistance(false, banned)
		rec, err := l.moveRack(from, to, len(out))
		if err != nil {
			logrus.Warnf("distance move failed: %v", err)
			banned[from] = true
			failures++
			if failures > maxFailures {
				break
			}
			continue
		}
		out = append(out, *rec)
		recipients[to] = true
	}
	return out
}

// FlattenUtilization moves racks from the lowest-scoring pad to the
// highest-scoring pad. Unlike FlattenDistances, prior recipients stay
// eligible.
func (l *CampusLayout) FlattenUtilization(moves, maxFailures int) []MoveRecord {
	logrus.Debugf("flattening utilization over %d moves", moves)
	var out []MoveRecord
	banned := l.zeroCapacityPads()
	failures := 0
	for len(out) < moves {
		to := l.worstUtilization(false, nil)
		from := l.worstUtilization(true, banned)
		rec, err := l.moveRack(from, to, len(out))
		if err != nil {
			logrus.Warnf("utilization move failed: %v", err)
			banned[from] = true
			failures++
			if failures > maxFailures {
				break
			}
			continue
		}
		out = append(out, *rec)
	}
	return out
}

// Optimize runs the distance pass then the utilization pass and returns both
// move logs.
func (l *CampusLayout) Optimize(moves, maxFailures int) OptimizeResult {
	logrus.Infof("optimizing rack distribution, %d moves per pass", moves)
	return OptimizeResult{
		FlatDist: l.FlattenDistances(moves, maxFailures),
		FlatUtil: l.FlattenUtilization(moves, maxFailures),
	}
}

// Dataset reserializes the current topology into the compiled-dataset shape
// consumed by the next simulation cycle. Occupancies carry over from the
// input dataset; capacities and totals come from the rebalanced pads.
func (l *CampusLayout) Dataset() *sim.CompiledDataset {
	campusSpec := sim.LocaleSpec{Occupancy: l.dataset.Campus.Occupancy}
	locs := make(map[string]sim.LocaleSpec, len(l.buildNames))

	totalOcc := campusSpec.Occupancy
	for _, b := range l.buildNames {
		occ := l.dataset.Locs[b].Occupancy
		totalOcc += occ
		locs[b] = sim.LocaleSpec{Occupancy: occ}
	}

	totalCap := 0
	for _, name := range l.padOrder {
		p := l.pads[name]
		totalCap += p.Capacity()
		if p.Locale() == sim.CampusLocale {
			campusSpec.RackPads = append(campusSpec.RackPads, p.Spec())
			continue
		}
		ls := locs[p.Locale()]
		ls.RackPads = append(ls.RackPads, p.Spec())
		locs[p.Locale()] = ls
	}

	return &sim.CompiledDataset{
		Locs:         locs,
		TotalBikeCap: totalCap,
		TotalOcc:     totalOcc,
		BuildNames:   append([]string(nil), l.buildNames...),
		Campus:       campusSpec,
	}
}
