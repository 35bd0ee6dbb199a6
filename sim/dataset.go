package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PadSpec describes one rack pad in the compiled dataset.
type PadSpec struct {
	Lon   float64 `yaml:"lon"`
	Lat   float64 `yaml:"lat"`
	Racks int     `yaml:"racks"`
	Cap   int     `yaml:"cap"`
}

// LocaleSpec describes one locale in the compiled dataset.
type LocaleSpec struct {
	RackPads  []PadSpec `yaml:"rack_pads"`
	Occupancy int       `yaml:"occupancy"`
}

// CompiledDataset is the interchange shape shared by the data compiler, the
// simulation, and the optimizer: the optimizer reserializes its topology into
// this same shape for the next cycle. The "campus" locale lives in its own
// field and must never appear inside Locs or BuildNames.
type CompiledDataset struct {
	Locs         map[string]LocaleSpec `yaml:"locs"`
	TotalBikeCap int                   `yaml:"total_bike_cap"`
	TotalOcc     int                   `yaml:"total_occ"`
	BuildNames   []string              `yaml:"build_names"`
	Campus       LocaleSpec            `yaml:"campus"`
}

// Validate checks the dataset shape at the boundary so later lookups cannot
// dereference missing locales or negative capacities.
func (d *CompiledDataset) Validate() error {
	for _, name := range d.BuildNames {
		if name == CampusLocale {
			return fmt.Errorf("%q may not appear in build_names", CampusLocale)
		}
		if _, ok := d.Locs[name]; !ok {
			return fmt.Errorf("%w: build name %q has no locale entry", ErrUnknownLocale, name)
		}
	}
	if _, ok := d.Locs[CampusLocale]; ok {
		return fmt.Errorf("%q may not appear in locs", CampusLocale)
	}
	known := make(map[string]bool, len(d.BuildNames))
	for _, name := range d.BuildNames {
		known[name] = true
	}
	for name, spec := range d.Locs {
		if !known[name] {
			return fmt.Errorf("locale %q is not listed in build_names", name)
		}
		if err := validateLocaleSpec(name, spec); err != nil {
			return err
		}
	}
	return validateLocaleSpec(CampusLocale, d.Campus)
}

func validateLocaleSpec(name string, spec LocaleSpec) error {
	if spec.Occupancy < 0 {
		return fmt.Errorf("locale %q: negative occupancy %d", name, spec.Occupancy)
	}
	for i, p := range spec.RackPads {
		if p.Cap < 0 {
			return fmt.Errorf("locale %q pad %d: negative capacity %d", name, i, p.Cap)
		}
		if p.Racks < 0 {
			return fmt.Errorf("locale %q pad %d: negative rack count %d", name, i, p.Racks)
		}
	}
	return nil
}

// LoadDataset reads and validates a compiled dataset YAML file.
func LoadDataset(path string) (*CompiledDataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read compiled dataset: %w", err)
	}
	var ds CompiledDataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse compiled dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Save writes the dataset as YAML.
func (d *CompiledDataset) Save(path string) error {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode compiled dataset: %w", err)
	}
	return os.WriteFile(path, append([]byte("---\n"), raw...), 0o644)
}
