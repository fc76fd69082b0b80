package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/varucb-sim/varucb-sim/sim"
	"github.com/varucb-sim/varucb-sim/sim/report"
)

var (
	// CLI flags for the experiment batch
	arms        int    // Number of arms K
	variance    string // Variance regime (low, medium, high)
	horizon     int    // Rounds per trial T
	trials      int    // Independent trials per policy N
	seed        int64  // Master seed; all randomness derives from it
	parallelism int    // Max concurrent trials (1 = sequential)
	logLevel    string // Log verbosity level
	outputDir   string // Directory for table/trace/plot files
	configPath  string // Optional YAML experiment spec (overrides flags)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "varucb",
	Short: "Regret simulator comparing variance-aware UCB bandit policies",
}

// runCmd executes one experiment batch using parameters from CLI flags or
// a YAML spec file.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bandit regret experiment",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		config, label, err := resolveConfig()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting experiment: K=%d, variance=%s [%g, %g), T=%d, N=%d, seed=%d",
			config.Arms, label, config.Variances.Min, config.Variances.Max,
			config.Horizon, config.Trials, config.Seed)

		startTime := time.Now()

		runner := sim.NewExperimentRunner(config)
		inst, err := runner.GenerateInstance()
		if err != nil {
			logrus.Fatalf("Unable to generate problem instance: %v", err)
		}
		logrus.Infof("Generated instance (best arm: %d, mean: %.4f)",
			inst.BestArm, inst.Means[inst.BestArm])

		results, err := runner.Run(inst, sim.DefaultPolicies(inst))
		if err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}

		if err := writeReports(config, label, inst, results); err != nil {
			logrus.Fatalf("Unable to write reports: %v", err)
		}

		sim.PrintSummary(inst, results, config.Trials)
		logrus.Infof("Experiment complete in %v.", time.Since(startTime).Round(time.Millisecond))
	},
}

// resolveConfig builds the batch config from the YAML spec if --config was
// given, otherwise from the individual flags. The returned label names the
// variance regime in filenames and logs.
func resolveConfig() (sim.ExperimentConfig, string, error) {
	if configPath != "" {
		spec, err := sim.LoadExperimentSpec(configPath)
		if err != nil {
			return sim.ExperimentConfig{}, "", err
		}
		config, err := spec.Config()
		if err != nil {
			return sim.ExperimentConfig{}, "", err
		}
		if spec.OutputDir != "" {
			outputDir = spec.OutputDir
		}
		label := spec.Variance
		if label == "" {
			label = "custom"
		}
		return config, label, nil
	}

	regime, err := sim.RegimeRange(variance)
	if err != nil {
		return sim.ExperimentConfig{}, "", err
	}
	config := sim.ExperimentConfig{
		Arms:        arms,
		Variances:   regime,
		Horizon:     horizon,
		Trials:      trials,
		Seed:        seed,
		Parallelism: parallelism,
	}
	if err := config.Validate(); err != nil {
		return sim.ExperimentConfig{}, "", err
	}
	return config, variance, nil
}

// writeReports emits the arm table, the aggregated traces and the regret
// plot into the output directory, named after the batch parameters.
func writeReports(config sim.ExperimentConfig, label string, inst *sim.ProblemInstance, results []sim.AggregatedRegret) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", outputDir, err)
	}

	suffix := fmt.Sprintf("K%d_%s", config.Arms, label)

	tablePath := filepath.Join(outputDir, "table_"+suffix+".csv")
	if err := report.WriteArmTable(tablePath, inst); err != nil {
		return err
	}
	logrus.Infof("Saved arm table to %s", tablePath)

	tracesPath := filepath.Join(outputDir, "traces_"+suffix+".csv")
	if err := report.WriteRegretTraces(tracesPath, results); err != nil {
		return err
	}
	logrus.Infof("Saved aggregated traces to %s", tracesPath)

	title := fmt.Sprintf("Cumulative Regret Comparison, K = %d, %s Variance", config.Arms, label)
	plotPath := filepath.Join(outputDir, "plot_"+suffix+".png")
	if err := report.SaveRegretPlot(plotPath, results, title); err != nil {
		return err
	}
	logrus.Infof("Saved plot to %s", plotPath)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().IntVar(&arms, "arms", 0, "Number of arms (required unless --config is given)")
	runCmd.Flags().StringVar(&variance, "variance", "", "Variance regime: low, medium or high (required unless --config is given)")
	runCmd.Flags().IntVar(&horizon, "horizon", 1000000, "Rounds per trial")
	runCmd.Flags().IntVar(&trials, "trials", 50, "Independent trials per policy")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for all randomness")
	runCmd.Flags().IntVar(&parallelism, "parallelism", 1, "Max concurrent trials (1 = sequential)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory for table, trace and plot files")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML experiment spec (overrides the other flags)")

	rootCmd.AddCommand(runCmd)
}
