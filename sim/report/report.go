// Package report reduces simulation output (step records and cycle
// snapshots) into the per-locale statistics the optimizer consumes.
package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bikepark-sim/bikepark-sim/sim"
)

// OverallKey is the pseudo-locale aggregating every step record.
const OverallKey = "overall"

// LocationStats accumulates step-record statistics for one destination
// locale.
type LocationStats struct {
	RowCount      int     `yaml:"row_count"`      // records with this locale as destination
	ExDist        float64 `yaml:"ex_dist"`        // summed excess distance
	IdealSpot     int     `yaml:"ideal_spot"`     // right-building rows that hit the ideal pad exactly
	RightBuilding int     `yaml:"right_building"` // rows that ended in the destination locale
	Appears       int     `yaml:"appears"`        // appearances as destination or actual arrival
}

// PadStats carries one pad's demand profile out of the final cycle snapshot.
type PadStats struct {
	Cap      int               `yaml:"cap"`
	Racks    int               `yaml:"racks"`
	Lat      float64           `yaml:"lat"`
	Lon      float64           `yaml:"lon"`
	Demand   float64           `yaml:"demand"` // unsatisfied / total requests, 0 when no requests
	Usage    int               `yaml:"usage"`  // total requests
	Requests sim.RequestCounts `yaml:"requests"`
}

// LocaleReport combines a locale's location-level and pad-level statistics.
type LocaleReport struct {
	LocationStats *LocationStats `yaml:"location_stats"`
	PadStats      []PadStats     `yaml:"pad_stats"`
}

// Report is the aggregated statistics structure keyed by locale name,
// including the "campus" locale and the "overall" pseudo-locale.
type Report map[string]LocaleReport

// Aggregator folds records and snapshots incrementally. Snapshots of the
// same locale overwrite earlier pad stats, so the final snapshot of a cycle
// wins; it carries the cumulative counters.
type Aggregator struct {
	order   []string
	stats   map[string]*LocationStats
	pads    map[string][]PadStats
	exDists map[string][]float64
}

// NewAggregator creates an empty aggregator with the "overall" bucket
// registered.
func NewAggregator() *Aggregator {
	a := &Aggregator{
		stats:   make(map[string]*LocationStats),
		pads:    make(map[string][]PadStats),
		exDists: make(map[string][]float64),
	}
	a.ensure(OverallKey)
	return a
}

func (a *Aggregator) ensure(locale string) *LocationStats {
	if s, ok := a.stats[locale]; ok {
		return s
	}
	s := &LocationStats{}
	a.stats[locale] = s
	a.order = append(a.order, locale)
	return s
}

// AddSnapshot folds one cycle snapshot document into the pad statistics.
func (a *Aggregator) AddSnapshot(snap sim.CycleSnapshot) {
	for _, loc := range snap.Campus.Locales {
		a.ensure(loc.Locale)
		pads := make([]PadStats, 0, len(loc.RackPads))
		for _, p := range loc.RackPads {
			demand := 0.0
			if p.Requests.Total >= 1 {
				demand = float64(p.Requests.Unsatisfied) / float64(p.Requests.Total)
			}
			pads = append(pads, PadStats{
				Cap:      p.Cap,
				Racks:    p.Racks,
				Lat:      p.Lat,
				Lon:      p.Lon,
				Demand:   demand,
				Usage:    p.Requests.Total,
				Requests: p.Requests,
			})
		}
		a.pads[loc.Locale] = pads
	}
}

// AddRecord folds one step record into the location statistics.
func (a *Aggregator) AddRecord(rec sim.StepRecord) {
	overall := a.stats[OverallKey]
	overall.RowCount++
	overall.ExDist += rec.ExcessDistance
	a.exDists[OverallKey] = append(a.exDists[OverallKey], rec.ExcessDistance)

	dest := a.ensure(rec.DestLocale)
	dest.RowCount++
	dest.ExDist += rec.ExcessDistance
	a.exDists[rec.DestLocale] = append(a.exDists[rec.DestLocale], rec.ExcessDistance)

	if rec.DestLocale == rec.EndLocale {
		overall.RightBuilding++
		dest.RightBuilding++
		dest.Appears++
		if rec.IdealLon == rec.EndLon && rec.IdealLat == rec.EndLat {
			overall.IdealSpot++
			dest.IdealSpot++
		}
	} else {
		dest.Appears++
		a.ensure(rec.EndLocale).Appears++
	}
}

// Report assembles the merged per-locale structure.
func (a *Aggregator) Report() Report {
	out := make(Report, len(a.order))
	for _, locale := range a.order {
		out[locale] = LocaleReport{
			LocationStats: a.stats[locale],
			PadStats:      a.pads[locale],
		}
	}
	return out
}

// Aggregate reduces a full cycle's records and snapshots in one call.
func Aggregate(records []sim.StepRecord, snaps []sim.CycleSnapshot) Report {
	a := NewAggregator()
	for _, s := range snaps {
		a.AddSnapshot(s)
	}
	for _, r := range records {
		a.AddRecord(r)
	}
	return a.Report()
}

// Save writes the report as a YAML document.
func (r Report) Save(path string) error {
	raw, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return os.WriteFile(path, append([]byte("---\n"), raw...), 0o644)
}

// LoadReport reads a report written by Save.
func LoadReport(path string) (Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return r, nil
}
