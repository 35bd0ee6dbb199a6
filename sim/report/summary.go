package report

import "gonum.org/v1/gonum/stat"

// Averages are the derived per-locale ratios used by the human-readable
// summary. Locales with zero destination rows are excluded rather than
// producing undefined values.
type Averages struct {
	AvgDist    float64 `yaml:"avg_dist"`   // mean excess distance per destination row
	StdevDist  float64 `yaml:"stdev_dist"` // spread of excess distances
	IdealRatio float64 `yaml:"ideal"`      // ideal-spot fraction
	BuildRatio float64 `yaml:"build"`      // right-building fraction
}

// Averages derives per-locale ratios from the accumulated rows. Only locales
// with at least one destination row appear in the result.
func (a *Aggregator) Averages() map[string]Averages {
	out := make(map[string]Averages)
	for _, locale := range a.order {
		s := a.stats[locale]
		if s.RowCount < 1 {
			continue
		}
		dists := a.exDists[locale]
		avg := Averages{
			AvgDist:    stat.Mean(dists, nil),
			IdealRatio: float64(s.IdealSpot) / float64(s.RowCount),
			BuildRatio: float64(s.RightBuilding) / float64(s.RowCount),
		}
		if len(dists) > 1 {
			avg.StdevDist = stat.StdDev(dists, nil)
		}
		out[locale] = avg
	}
	return out
}
