package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags shared by the subcommands
	logLevel    string // log verbosity level
	configPath  string // optional campaign config YAML
	datasetPath string // compiled campus dataset
	dataDir     string // output directory for cycle artifacts

	seeds           []int64 // campaign seeds
	cycles          int     // optimizing cycles per seed
	bikers          int     // bikers generated per cycle
	scheduleLength  int     // itinerary entries per biker
	movesPerCycle   int     // rack moves per rebalancing pass
	maxMoveFailures int     // consecutive-failure budget per pass
	nameLength      int     // characters per biker name
	nameTries       int     // name collision retries
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "bikepark-sim",
	Short: "Monte-Carlo bike-parking demand simulator and rack rebalancer",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging applies the --log flag before any subcommand work.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Campaign config YAML (flags override file values)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "data/comp_dat.yml", "Compiled campus dataset")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory for cycle artifacts")

	rootCmd.PersistentFlags().IntVar(&bikers, "bikers", 1000, "Bikers generated per cycle")
	rootCmd.PersistentFlags().IntVar(&scheduleLength, "schedule-length", 5, "Itinerary entries per biker (= steps per cycle)")
	rootCmd.PersistentFlags().IntVar(&movesPerCycle, "moves-per-cycle", 3, "Rack moves per rebalancing pass")
	rootCmd.PersistentFlags().IntVar(&maxMoveFailures, "max-move-failures", 10, "Failed-move budget per rebalancing pass")
	rootCmd.PersistentFlags().IntVar(&nameLength, "name-length", 7, "Characters per generated biker name")
	rootCmd.PersistentFlags().IntVar(&nameTries, "name-tries", 10, "Name collision retries before giving up")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
}
