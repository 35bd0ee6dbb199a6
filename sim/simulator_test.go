package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpawn = Coordinate{Lon: -111.049, Lat: 45.669}

func newScenarioSimulator(t *testing.T, seed int64, bikers, steps int) *Simulator {
	t.Helper()
	cfg := NewSimConfig(seed, bikers, steps)
	schedCfg := ScheduleConfig{
		NameLength:  7,
		NameTries:   10,
		SpawnPoints: []Coordinate{testSpawn},
	}
	s, err := NewSimulator(twoLocaleDataset(), cfg, schedCfg, "test-run")
	require.NoError(t, err)
	return s
}

func TestSimulator_OverflowRelocatesToNeighborLocale(t *testing.T) {
	// GIVEN locales A (occupancy 10, one pad cap 5) and B (occupancy 0, one
	// pad cap 5) and 10 bikers all scheduled once to A
	s := newScenarioSimulator(t, 1036, 10, 1)

	// WHEN the single step runs
	require.NoError(t, s.Run())

	// THEN exactly 5 bikers park in place and 5 overflow to B with excess
	// distance
	require.Len(t, s.Records, 10)
	inPlace, overflow := 0, 0
	for _, rec := range s.Records {
		assert.Equal(t, "A", rec.DestLocale)
		switch rec.EndLocale {
		case "A":
			inPlace++
			assert.Zero(t, rec.ExcessDistance)
		case "B":
			overflow++
			assert.Greater(t, rec.ExcessDistance, 0.0)
		default:
			t.Errorf("unexpected end locale %q", rec.EndLocale)
		}
	}
	assert.Equal(t, 5, inPlace)
	assert.Equal(t, 5, overflow)

	// AND A's pad reports 10 total / 5 unsatisfied requests
	locA, err := s.Campus.Locale("A")
	require.NoError(t, err)
	got := locA.Pads()[0].Requests()
	assert.Equal(t, RequestCounts{Satisfied: 5, Unsatisfied: 5, Total: 10}, got)
}

func TestSimulator_IdealPadReuse_ZeroExcess(t *testing.T) {
	// GIVEN a single biker with room at its destination
	s := newScenarioSimulator(t, 7, 1, 1)

	require.NoError(t, s.Run())

	// THEN the ideal pad is the real pad: excess is exactly 0.0 and the
	// reported distance is the direct start-to-pad distance
	require.Len(t, s.Records, 1)
	rec := s.Records[0]
	assert.Equal(t, rec.DestLocale, rec.EndLocale)
	assert.Equal(t, 0.0, rec.ExcessDistance)

	padA := Coordinate{Lon: rec.IdealLon, Lat: rec.IdealLat}
	assert.Equal(t, round2(Distance(testSpawn, padA)), rec.Distance)
}

func TestSimulator_BacktrackDistanceAddedOutsideDestination(t *testing.T) {
	// GIVEN an overflow placement that lands outside the destination locale
	s := newScenarioSimulator(t, 1036, 10, 1)
	require.NoError(t, s.Run())

	var overflow *StepRecord
	for i := range s.Records {
		if s.Records[i].EndLocale == "B" {
			overflow = &s.Records[i]
			break
		}
	}
	require.NotNil(t, overflow)

	// THEN the reported distance includes the backtrack leg ideal→real
	ideal := Coordinate{Lon: overflow.IdealLon, Lat: overflow.IdealLat}
	end := Coordinate{Lon: overflow.EndLon, Lat: overflow.EndLat}
	wantActual := round2(Distance(testSpawn, end) + Distance(ideal, end))
	wantExcess := round2(Distance(testSpawn, end) + Distance(ideal, end) - Distance(testSpawn, ideal))
	assert.Equal(t, wantActual, overflow.Distance)
	assert.Equal(t, wantExcess, overflow.ExcessDistance)
}

func TestSimulator_Deterministic(t *testing.T) {
	s1 := newScenarioSimulator(t, 1036, 10, 3)
	s2 := newScenarioSimulator(t, 1036, 10, 3)

	require.NoError(t, s1.Run())
	require.NoError(t, s2.Run())

	assert.Equal(t, s1.Records, s2.Records)
	assert.Equal(t, s1.Snapshots, s2.Snapshots)
}

func TestSimulator_SnapshotPerStep(t *testing.T) {
	s := newScenarioSimulator(t, 5, 4, 2)
	require.NoError(t, s.Run())

	require.Len(t, s.Snapshots, 2)
	snap := s.Snapshots[1]
	assert.Equal(t, "test-run", snap.RunID)
	assert.Equal(t, 1, snap.Step)
	assert.Equal(t, 4, snap.Bikers)

	// Locales appear in dataset order with the campus locale last.
	var names []string
	for _, l := range snap.Campus.Locales {
		names = append(names, l.Locale)
	}
	assert.Equal(t, []string{"A", "B", CampusLocale}, names)
}

func TestSimulator_ExhaustedItineraryIsSkippedQuietly(t *testing.T) {
	// GIVEN a biker whose itinerary is shorter than the run
	s := newScenarioSimulator(t, 3, 0, 2)
	s.Bikers = append(s.Bikers, NewBiker("shortie", []string{"A"}, testSpawn))

	// WHEN running two steps
	require.NoError(t, s.Run())

	// THEN the second step yields no record and counts as exhausted
	assert.Len(t, s.Records, 1)
	assert.Equal(t, 1, s.Metrics.ExhaustedSchedules)
}

func TestSimulator_ProgressCallback(t *testing.T) {
	s := newScenarioSimulator(t, 11, 3, 2)
	calls := 0
	s.Progress = func(step, biker int) { calls++ }

	require.NoError(t, s.Run())

	assert.Equal(t, 6, calls)
}
