package sim

// SimConfig groups the parameters of one simulation cycle.
type SimConfig struct {
	Seed           int64 // master seed for the partitioned RNG
	Bikers         int   // number of bikers generated for the run
	ScheduleLength int   // itinerary entries per biker == global steps per cycle
}

// NewSimConfig creates a SimConfig.
func NewSimConfig(seed int64, bikers, scheduleLength int) SimConfig {
	return SimConfig{Seed: seed, Bikers: bikers, ScheduleLength: scheduleLength}
}

// ScheduleConfig groups biker-creation parameters.
type ScheduleConfig struct {
	NameLength  int          // characters per generated biker name
	NameTries   int          // collision retries before giving up
	SpawnPoints []Coordinate // starting coordinates (empty = DefaultSpawnPoints)
}

// DefaultScheduleConfig returns the generation defaults.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		NameLength: 7,
		NameTries:  10,
	}
}
