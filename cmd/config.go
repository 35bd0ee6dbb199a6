package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bikepark-sim/bikepark-sim/sim"
)

// CampaignConfig mirrors the campaign config YAML. Zero values fall back to
// the corresponding flag defaults.
type CampaignConfig struct {
	Seeds           []int64          `yaml:"seeds"`
	Cycles          int              `yaml:"cycles"`
	Bikers          int              `yaml:"bikers"`
	ScheduleLength  int              `yaml:"schedule_length"`
	MovesPerCycle   int              `yaml:"moves_per_cycle"`
	MaxMoveFailures int              `yaml:"max_move_failures"`
	NameLength      int              `yaml:"name_length"`
	NameTries       int              `yaml:"name_tries"`
	DatasetPath     string           `yaml:"compiled_data"`
	DataDir         string           `yaml:"data_dir"`
	SpawnPoints     []sim.Coordinate `yaml:"spawn_points"`
}

// loadCampaignConfig assembles the effective campaign config: flag values
// first, then overrides from --config when given.
func loadCampaignConfig() (CampaignConfig, error) {
	cfg := CampaignConfig{
		Seeds:           seeds,
		Cycles:          cycles,
		Bikers:          bikers,
		ScheduleLength:  scheduleLength,
		MovesPerCycle:   movesPerCycle,
		MaxMoveFailures: maxMoveFailures,
		NameLength:      nameLength,
		NameTries:       nameTries,
		DatasetPath:     datasetPath,
		DataDir:         dataDir,
	}
	if configPath == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("read campaign config: %w", err)
	}
	var file CampaignConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, fmt.Errorf("parse campaign config: %w", err)
	}
	mergeCampaignConfig(&cfg, file)
	return cfg, nil
}

func mergeCampaignConfig(cfg *CampaignConfig, file CampaignConfig) {
	if len(file.Seeds) > 0 {
		cfg.Seeds = file.Seeds
	}
	if file.Cycles > 0 {
		cfg.Cycles = file.Cycles
	}
	if file.Bikers > 0 {
		cfg.Bikers = file.Bikers
	}
	if file.ScheduleLength > 0 {
		cfg.ScheduleLength = file.ScheduleLength
	}
	if file.MovesPerCycle > 0 {
		cfg.MovesPerCycle = file.MovesPerCycle
	}
	if file.MaxMoveFailures > 0 {
		cfg.MaxMoveFailures = file.MaxMoveFailures
	}
	if file.NameLength > 0 {
		cfg.NameLength = file.NameLength
	}
	if file.NameTries > 0 {
		cfg.NameTries = file.NameTries
	}
	if file.DatasetPath != "" {
		cfg.DatasetPath = file.DatasetPath
	}
	if file.DataDir != "" {
		cfg.DataDir = file.DataDir
	}
	if len(file.SpawnPoints) > 0 {
		cfg.SpawnPoints = file.SpawnPoints
	}
}
