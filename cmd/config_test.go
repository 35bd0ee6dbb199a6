package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikepark-sim/bikepark-sim/sim"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campaign.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadCampaignConfig_FlagsOnly(t *testing.T) {
	configPath = ""
	seeds = []int64{1036}
	cycles = 3
	bikers = 1000

	cfg, err := loadCampaignConfig()

	require.NoError(t, err)
	assert.Equal(t, []int64{1036}, cfg.Seeds)
	assert.Equal(t, 3, cfg.Cycles)
	assert.Equal(t, 1000, cfg.Bikers)
}

func TestLoadCampaignConfig_FileOverridesFlags(t *testing.T) {
	seeds = []int64{1036}
	cycles = 3
	bikers = 1000
	datasetPath = "data/comp_dat.yml"
	configPath = writeConfigFile(t, `
seeds: [7, 9]
cycles: 5
compiled_data: other/comp_dat.yml
spawn_points:
  - lon: -111.05
    lat: 45.67
`)
	defer func() { configPath = "" }()

	cfg, err := loadCampaignConfig()

	require.NoError(t, err)
	// File values win where set; unset keys keep the flag values.
	assert.Equal(t, []int64{7, 9}, cfg.Seeds)
	assert.Equal(t, 5, cfg.Cycles)
	assert.Equal(t, "other/comp_dat.yml", cfg.DatasetPath)
	assert.Equal(t, 1000, cfg.Bikers)
	assert.Equal(t, []sim.Coordinate{{Lon: -111.05, Lat: 45.67}}, cfg.SpawnPoints)
}

func TestLoadCampaignConfig_BadYAML(t *testing.T) {
	configPath = writeConfigFile(t, "cycles: [not an int\n")
	defer func() { configPath = "" }()

	_, err := loadCampaignConfig()
	assert.Error(t, err)
}
