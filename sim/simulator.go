// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"
)

// Simulator holds the state of one simulation cycle: the campus topology, the
// generated bikers, and the record/snapshot streams the cycle produces.
//
// The run is strictly sequential: within a global step every biker is placed
// one at a time, so relocation and capacity checks never interleave.
type Simulator struct {
	Campus  *Campus
	Gen     *ScheduleGen
	Bikers  []*Biker
	Metrics *Metrics

	Config SimConfig
	RunID  string

	Records   []StepRecord
	Snapshots []CycleSnapshot

	// Progress, when set, is called after every biker placement. The CLI
	// hangs its progress bar off this.
	Progress func(step, biker int)
}

// NewSimulator builds a campus from the dataset, seeds the RNG partitions,
// and generates the biker population.
func NewSimulator(ds *CompiledDataset, cfg SimConfig, schedCfg ScheduleConfig, runID string) (*Simulator, error) {
	campus, err := NewCampus(ds)
	if err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	gen := NewScheduleGen(ds, schedCfg.SpawnPoints, rng)

	s := &Simulator{
		Campus:  campus,
		Gen:     gen,
		Metrics: NewMetrics(),
		Config:  cfg,
		RunID:   runID,
	}
	for i := 0; i < cfg.Bikers; i++ {
		b, err := gen.NewBiker(cfg.ScheduleLength, schedCfg.NameLength, schedCfg.NameTries)
		if err != nil {
			return nil, err
		}
		s.Bikers = append(s.Bikers, b)
	}
	return s, nil
}

// Run executes every global step. Each step places all bikers synchronously
// and then appends one full campus snapshot document.
func (s *Simulator) Run() error {
	for step := 0; step < s.Config.ScheduleLength; step++ {
		logrus.Infof("schedule step #%d (seed %d)", step, s.Config.Seed)
		for i, b := range s.Bikers {
			rec, ok, err := s.stepBiker(step, b)
			if err != nil {
				return err
			}
			if ok {
				s.Records = append(s.Records, rec)
				s.Metrics.Observe(rec)
			}
			if s.Progress != nil {
				s.Progress(step, i)
			}
		}
		s.Snapshots = append(s.Snapshots, s.snapshot(step))
	}
	logrus.Infof("simulation ended after %d steps", s.Config.ScheduleLength)
	return nil
}

// stepBiker performs one biker's placement: ideal pad in the destination
// locale, real pad campus-wide, relocation, distance accounting, cursor
// advance. ok is false when the biker produced no record this step.
func (s *Simulator) stepBiker(step int, b *Biker) (rec StepRecord, ok bool, err error) {
	dest, hasDest := b.Destination()
	if !hasDest {
		// Exhausted itinerary: no further destination, not an error.
		s.Metrics.ExhaustedSchedules++
		return rec, false, nil
	}

	startLocale, startCoords := b.Location()

	ideal, err := s.Campus.NearestPad(startCoords, dest)
	if err != nil {
		return rec, false, err
	}
	if ideal == nil {
		logrus.Warnf("destination %q has no pads; skipping biker %s", dest, b.Name())
		s.Metrics.SkippedNoPads++
		b.AdvanceSchedule()
		return rec, false, nil
	}
	ideal.RegisterRequest()
	idealCoords := ideal.Coordinates()

	// The real pad search runs from the ideal pad's coordinate with
	// ignoreStart off, so the ideal pad reselects itself whenever it still
	// has capacity.
	end := s.Campus.NearestCampusWidePad(idealCoords, false)
	if end == nil {
		logrus.Warnf("campus-wide capacity exhausted; biker %s stays at %q", b.Name(), startLocale)
		s.Metrics.UnplacedBikers++
		b.AdvanceSchedule()
		return rec, false, nil
	}

	s.Campus.RelocateBiker(b, end)
	endCoords := end.Coordinates()

	distance, excess := calcDistances(startCoords, dest, ideal, end)
	if excess > 0 {
		// Not the ideal pad: register the detour so every used pad carries
		// request history.
		end.RegisterRequest()
	}

	b.AdvanceSchedule()

	rec = StepRecord{
		Step:           step,
		BikerID:        b.Name(),
		StartLon:       startCoords.Lon,
		StartLat:       startCoords.Lat,
		StartLocale:    startLocale,
		IdealLon:       idealCoords.Lon,
		IdealLat:       idealCoords.Lat,
		DestLocale:     dest,
		EndLon:         endCoords.Lon,
		EndLat:         endCoords.Lat,
		EndLocale:      end.LocaleName(),
		Distance:       distance,
		ExcessDistance: excess,
	}
	return rec, true, nil
}

// calcDistances compares the real path against the ideal path. When the real
// pad is the ideal pad the excess is exactly zero and the reported distance
// is the direct leg. When the real pad sits outside the destination locale,
// the walk back to the ideal pad is added to the actual distance.
func calcDistances(start Coordinate, destLocale string, ideal, end *RackPad) (distance, excess float64) {
	ic := ideal.Coordinates()
	ec := end.Coordinates()

	if ideal.Name() == end.Name() {
		return round2(Distance(start, ic)), 0.0
	}

	actual := Distance(start, ec)
	if end.LocaleName() != destLocale {
		actual += Distance(ic, ec)
	}
	minimal := Distance(start, ic)

	return round2(actual), round2(actual - minimal)
}

// snapshot captures the whole campus after a completed global step.
func (s *Simulator) snapshot(step int) CycleSnapshot {
	return CycleSnapshot{
		RunID:          s.RunID,
		Seed:           s.Config.Seed,
		Step:           step,
		Bikers:         len(s.Bikers),
		ScheduleLength: s.Config.ScheduleLength,
		Campus:         s.Campus.Snapshot(),
	}
}
