package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	pb "gopkg.in/cheggaaa/pb.v1"
	"gopkg.in/yaml.v3"

	"github.com/bikepark-sim/bikepark-sim/sim"
	"github.com/bikepark-sim/bikepark-sim/sim/layout"
	"github.com/bikepark-sim/bikepark-sim/sim/report"
)

// runCmd executes the full campaign: for every seed, a chain of
// simulate→aggregate→optimize cycles where each optimizer output becomes the
// next cycle's dataset.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full simulation + rebalancing campaign",
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		cfg, err := loadCampaignConfig()
		if err != nil {
			return err
		}
		return runCampaign(cfg)
	},
}

func runCampaign(cfg CampaignConfig) error {
	for _, seed := range cfg.Seeds {
		ds, err := sim.LoadDataset(cfg.DatasetPath)
		if err != nil {
			return err
		}
		for cycle := 0; cycle < cfg.Cycles; cycle++ {
			logrus.Infof("starting optimizing cycle %d on seed %d", cycle, seed)
			fmt.Printf("Cycle #%d on seed %d\n", cycle+1, seed)

			next, err := runCycle(cfg, ds, seed, cycle)
			if err != nil {
				return fmt.Errorf("seed %d cycle %d: %w", seed, cycle, err)
			}
			ds = next
		}
	}
	return nil
}

// runCycle performs one simulation run plus one optimization pass and
// returns the rebalanced dataset for the next cycle.
func runCycle(cfg CampaignConfig, ds *sim.CompiledDataset, seed int64, cycle int) (*sim.CompiledDataset, error) {
	runID := uuid.NewString()
	dir := filepath.Join(cfg.DataDir, fmt.Sprintf("seed_%d_cycle_%d", seed, cycle))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if err := ds.Save(filepath.Join(dir, "comp_dat.yml")); err != nil {
		return nil, err
	}

	simCfg := sim.NewSimConfig(seed, cfg.Bikers, cfg.ScheduleLength)
	schedCfg := sim.ScheduleConfig{
		NameLength:  cfg.NameLength,
		NameTries:   cfg.NameTries,
		SpawnPoints: cfg.SpawnPoints,
	}
	s, err := sim.NewSimulator(ds, simCfg, schedCfg, runID)
	if err != nil {
		return nil, err
	}

	bar := pb.StartNew(cfg.Bikers * cfg.ScheduleLength)
	s.Progress = func(step, biker int) { bar.Increment() }
	if err := s.Run(); err != nil {
		return nil, err
	}
	bar.Finish()

	if err := writeCycleArtifacts(dir, s); err != nil {
		return nil, err
	}

	agg := report.NewAggregator()
	for _, snap := range s.Snapshots {
		agg.AddSnapshot(snap)
	}
	for _, rec := range s.Records {
		agg.AddRecord(rec)
	}
	rep := agg.Report()
	if err := rep.Save(filepath.Join(dir, "summary_report_dat.yml")); err != nil {
		return nil, err
	}

	lay, err := layout.NewCampusLayout(ds, rep, cfg.ScheduleLength)
	if err != nil {
		return nil, err
	}
	result := lay.Optimize(cfg.MovesPerCycle, cfg.MaxMoveFailures)
	if err := writeMovesReport(filepath.Join(dir, "moves_report.yml"), runID, result); err != nil {
		return nil, err
	}
	lay.EstimateAnnualCosts(layout.DefaultCostConfig())

	return lay.Dataset(), nil
}

// writeCycleArtifacts dumps the step-record CSV and the snapshot document
// stream for the cycle.
func writeCycleArtifacts(dir string, s *sim.Simulator) error {
	recF, err := os.Create(filepath.Join(dir, "step_records.csv"))
	if err != nil {
		return err
	}
	defer recF.Close()
	rw := sim.NewRecordWriter(recF)
	for _, rec := range s.Records {
		if err := rw.Write(rec); err != nil {
			return err
		}
	}
	if err := rw.Flush(); err != nil {
		return err
	}

	snapF, err := os.Create(filepath.Join(dir, "snapshots.yml"))
	if err != nil {
		return err
	}
	defer snapF.Close()
	return sim.WriteSnapshots(snapF, s.Snapshots)
}

// movesReport is the on-disk move log: run identity plus both pass logs.
type movesReport struct {
	RunID    string              `yaml:"run_id"`
	FlatDist []layout.MoveRecord `yaml:"flat_dist"`
	FlatUtil []layout.MoveRecord `yaml:"flat_util"`
}

func writeMovesReport(path, runID string, result layout.OptimizeResult) error {
	raw, err := yaml.Marshal(movesReport{
		RunID:    runID,
		FlatDist: result.FlatDist,
		FlatUtil: result.FlatUtil,
	})
	if err != nil {
		return fmt.Errorf("encode moves report: %w", err)
	}
	return os.WriteFile(path, append([]byte("---\n"), raw...), 0o644)
}

func init() {
	runCmd.Flags().Int64SliceVar(&seeds, "seeds", []int64{1036}, "Campaign seeds, one full cycle chain per seed")
	runCmd.Flags().IntVar(&cycles, "cycles", 3, "Optimizing cycles per seed")
}
