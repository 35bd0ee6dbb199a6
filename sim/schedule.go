package sim

import (
	"errors"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// ErrNameSpaceExhausted reports that random-name generation ran out of
// retries without finding an unused name. The caller may retry with a larger
// budget or abort biker creation.
var ErrNameSpaceExhausted = errors.New("biker name space exhausted")

const nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DefaultSpawnPoints are the street corners bikers start their day from when
// the run configuration does not override them.
var DefaultSpawnPoints = []Coordinate{
	{Lon: -111.048614, Lat: 45.670256}, // near Johnstone
	{Lon: -111.052060, Lat: 45.665160}, // corner of 11th and Grant
	{Lon: -111.059246, Lat: 45.671103}, // Grant Chamberlain
	{Lon: -111.045374, Lat: 45.669165}, // 6th and Cleveland
}

// ScheduleGen produces biker itineraries from an occupancy-weighted pool of
// locale names. A locale with occupancy N contributes N pool entries, so
// long-run per-locale draw frequency approximates the occupancy weights.
type ScheduleGen struct {
	weights []regenEntry
	pool    []string
	names   map[string]bool
	spawns  []Coordinate

	scheduleRNG *rand.Rand
	nameRNG     *rand.Rand
	spawnRNG    *rand.Rand
}

type regenEntry struct {
	locale string
	count  int
}

// NewScheduleGen builds a generator from the compiled dataset. The initial
// pool holds one weighted multiset, shuffled.
func NewScheduleGen(ds *CompiledDataset, spawns []Coordinate, rng *PartitionedRNG) *ScheduleGen {
	if len(spawns) == 0 {
		spawns = DefaultSpawnPoints
	}
	g := &ScheduleGen{
		names:       make(map[string]bool),
		spawns:      spawns,
		scheduleRNG: rng.ForSubsystem(SubsystemSchedule),
		nameRNG:     rng.ForSubsystem(SubsystemNames),
		spawnRNG:    rng.ForSubsystem(SubsystemSpawn),
	}
	for _, name := range ds.BuildNames {
		g.weights = append(g.weights, regenEntry{locale: name, count: ds.Locs[name].Occupancy})
	}
	g.refresh()
	return g
}

// refresh re-appends the full weighted multiset and reshuffles the whole
// pool uniformly at random.
func (g *ScheduleGen) refresh() {
	for _, e := range g.weights {
		for i := 0; i < e.count; i++ {
			g.pool = append(g.pool, e.locale)
		}
	}
	g.scheduleRNG.Shuffle(len(g.pool), func(i, j int) {
		g.pool[i], g.pool[j] = g.pool[j], g.pool[i]
	})
}

// Entries draws n locale names from the end of the pool, refilling first
// whenever the draw would underflow.
func (g *ScheduleGen) Entries(n int) []string {
	for len(g.pool) < n {
		logrus.Info("refreshing schedule pool")
		g.refresh()
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		last := len(g.pool) - 1
		out = append(out, g.pool[last])
		g.pool = g.pool[:last]
	}
	return out
}

// NewName generates a random ASCII name of the given length, regenerating on
// collision up to maxTries times.
func (g *ScheduleGen) NewName(length, maxTries int) (string, error) {
	for try := 0; try <= maxTries; try++ {
		buf := make([]byte, length)
		for i := range buf {
			buf[i] = nameAlphabet[g.nameRNG.Intn(len(nameAlphabet))]
		}
		name := string(buf)
		if !g.names[name] {
			g.names[name] = true
			return name, nil
		}
	}
	return "", ErrNameSpaceExhausted
}

// NewBiker creates a biker with a fresh itinerary, a unique name, and a
// random spawn coordinate.
func (g *ScheduleGen) NewBiker(scheduleEntries, nameLen, nameTries int) (*Biker, error) {
	itinerary := g.Entries(scheduleEntries)
	name, err := g.NewName(nameLen, nameTries)
	if err != nil {
		return nil, err
	}
	start := g.spawns[g.spawnRNG.Intn(len(g.spawns))]
	return NewBiker(name, itinerary, start), nil
}
