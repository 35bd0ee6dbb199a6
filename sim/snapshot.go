package sim

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// BikerSnapshot records one parked biker inside a pad snapshot.
type BikerSnapshot struct {
	Name      string   `yaml:"name"`
	Itinerary []string `yaml:"itinerary"`
	Cursor    int      `yaml:"cursor"`
}

// PadSnapshot records one pad's full counter state.
type PadSnapshot struct {
	Lat      float64         `yaml:"lat"`
	Lon      float64         `yaml:"lon"`
	Cap      int             `yaml:"cap"`
	Racks    int             `yaml:"racks"`
	OpenCap  int             `yaml:"open_cap"`
	Requests RequestCounts   `yaml:"requests"`
	Bikers   []BikerSnapshot `yaml:"bikers"`
}

// LocaleSnapshot records one locale and its pads.
type LocaleSnapshot struct {
	Locale       string        `yaml:"locale"`
	Occupancy    int           `yaml:"occupancy"`
	TotalCap     int           `yaml:"total_cap"`
	TotalOpenCap int           `yaml:"total_open_cap"`
	RackPads     []PadSnapshot `yaml:"rack_pads"`
}

// CampusSnapshot mirrors the Campus/Locale/RackPad hierarchy at the end of
// one global step. The "campus" locale appears last.
type CampusSnapshot struct {
	MaxPop  int              `yaml:"max_pop"`
	BikeCap int              `yaml:"bike_cap"`
	Locales []LocaleSnapshot `yaml:"locales"`
}

// CycleSnapshot is one report document: the full campus counter state after
// every biker completed a global step, plus run identity.
type CycleSnapshot struct {
	RunID          string         `yaml:"run_id"`
	Seed           int64          `yaml:"seed"`
	Step           int            `yaml:"step"`
	Bikers         int            `yaml:"bikers"`
	ScheduleLength int            `yaml:"schedule_length"`
	Campus         CampusSnapshot `yaml:"campus"`
}

// WriteSnapshots appends snapshots to w as a YAML document stream.
func WriteSnapshots(w io.Writer, snaps []CycleSnapshot) error {
	for _, s := range snaps {
		raw, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if _, err := fmt.Fprintf(w, "---\n%s\n", raw); err != nil {
			return err
		}
	}
	return nil
}

// ReadSnapshots parses a YAML document stream produced by WriteSnapshots.
func ReadSnapshots(r io.Reader) ([]CycleSnapshot, error) {
	dec := yaml.NewDecoder(r)
	var out []CycleSnapshot
	for {
		var s CycleSnapshot
		if err := dec.Decode(&s); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		out = append(out, s)
	}
}
