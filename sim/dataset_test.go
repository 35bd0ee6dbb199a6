package sim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiledDataset_Validate_Accepts(t *testing.T) {
	require.NoError(t, twoLocaleDataset().Validate())
}

func TestCompiledDataset_Validate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CompiledDataset)
	}{
		{"campus in build_names", func(d *CompiledDataset) {
			d.BuildNames = append(d.BuildNames, CampusLocale)
		}},
		{"campus in locs", func(d *CompiledDataset) {
			d.Locs[CampusLocale] = LocaleSpec{}
		}},
		{"build name without locale", func(d *CompiledDataset) {
			d.BuildNames = append(d.BuildNames, "ghost")
		}},
		{"locale not in build_names", func(d *CompiledDataset) {
			d.Locs["orphan"] = LocaleSpec{}
		}},
		{"negative occupancy", func(d *CompiledDataset) {
			d.Locs["A"] = LocaleSpec{Occupancy: -1}
		}},
		{"negative pad capacity", func(d *CompiledDataset) {
			d.Locs["A"] = LocaleSpec{RackPads: []PadSpec{{Cap: -1}}}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ds := twoLocaleDataset()
			c.mutate(ds)
			assert.Error(t, ds.Validate())
		})
	}
}

func TestCompiledDataset_SaveLoad_RoundTrip(t *testing.T) {
	ds := twoLocaleDataset()
	path := filepath.Join(t.TempDir(), "comp_dat.yml")

	require.NoError(t, ds.Save(path))
	got, err := LoadDataset(path)

	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestLoadDataset_MissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
