package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/ising-sim/sim/experiment"
	"github.com/inference-sim/ising-sim/sim/render"
)

var (
	// CLI flags for the experiment
	seed               int64   // Master seed; trial streams are derived from it
	logLevel           string  // Log verbosity level
	specPath           string  // Optional YAML experiment spec
	mode               string  // quench or anneal
	size               int     // Lattice side length
	trials             int     // Number of independent lattices
	workers            int     // Trials run concurrently
	initialTemperature float64 // Temperature the lattice is constructed at
	flipsPerSite       int     // Quench: flips per site of equilibration. Anneal: number of stages

	// quench
	quenchTemperature float64 // Temperature the lattice is quenched to

	// anneal
	startTemperature float64 // Schedule temperature at stage 0
	coolingTime      float64 // Characteristic decay constant, in stages
	traceLevel       string  // none or stages
	traceEvery       int     // Record every Nth stage

	// outputs
	resultsPath string // JSON results file
	renderDir   string // Directory for per-trial PNG images
	cellSize    int    // Pixels per lattice site in PNG images
	showGrid    bool   // Print each final grid as text
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ising-sim",
	Short: "Metropolis Monte Carlo simulator for the 2D Ising lattice",
}

// runCmd executes an experiment using parameters from CLI flags and an optional spec file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Quench or anneal independent lattices and report energy and magnetization",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		spec, err := buildSpec(cmd)
		if err != nil {
			logrus.Fatalf("Invalid experiment configuration: %v", err)
		}
		logrus.Infof("Starting %s experiment: %d trials of %dx%d, seed=%d, workers=%d",
			spec.Mode, spec.Trials, spec.Size, spec.Size, spec.Seed, spec.Workers)

		res, err := experiment.Run(spec)
		if err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}

		for _, tr := range res.Trials {
			fmt.Println(tr.Final)
			if showGrid {
				fmt.Print(render.Text(tr.Spins))
			}
		}
		fmt.Println("=== Aggregate ===")
		fmt.Println(res.Aggregate)

		if resultsPath != "" {
			if err := experiment.SaveResults(res, resultsPath); err != nil {
				logrus.Fatalf("Failed to save results: %v", err)
			}
			logrus.Infof("Results written to %s", resultsPath)
		}
		if renderDir != "" {
			if err := renderTrials(res, renderDir); err != nil {
				logrus.Fatalf("Failed to render trials: %v", err)
			}
		}

		logrus.Info("Simulation complete.")
	},
}

// renderTrials writes one titled PNG per trial into dir.
func renderTrials(res *experiment.Result, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	prefix := "Rapid"
	if res.Spec.Mode == experiment.ModeAnneal {
		prefix = "Slow"
	}
	for _, tr := range res.Trials {
		title := fmt.Sprintf("%s T=%.3g %s", prefix, tr.Final.Temperature, tr.Final.Title())
		path := filepath.Join(dir, fmt.Sprintf("%s_trial_%03d.png", res.Spec.Mode, tr.Trial))
		if err := render.WritePNG(path, render.Image(tr.Spins, cellSize, title)); err != nil {
			return err
		}
		logrus.Debugf("rendered trial %d to %s", tr.Trial, path)
	}
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
	defaults := experiment.DefaultSpec(experiment.ModeQuench)
	annealDefaults := experiment.DefaultSpec(experiment.ModeAnneal).Anneal

	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for lattice initialization and Metropolis draws")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&specPath, "spec", "", "Path to YAML experiment spec (CLI flags override its fields)")
	runCmd.Flags().StringVar(&mode, "mode", experiment.ModeQuench, "Experiment mode (quench, anneal)")
	runCmd.Flags().IntVar(&size, "size", defaults.Size, "Lattice side length")
	runCmd.Flags().IntVar(&trials, "trials", defaults.Trials, "Number of independent lattices")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Number of trials run concurrently")
	runCmd.Flags().Float64Var(&initialTemperature, "temperature", defaults.InitialTemperature, "Temperature the lattice is constructed at")
	runCmd.Flags().IntVar(&flipsPerSite, "flips-per-site", defaults.Quench.FlipsPerSite,
		fmt.Sprintf("Quench: average flips per site of equilibration. Anneal: number of one-sweep stages (default %d)", annealDefaults.FlipsPerSite))

	// Quench configs
	runCmd.Flags().Float64Var(&quenchTemperature, "quench-temperature", defaults.Quench.Temperature, "Temperature the lattice is quenched to")

	// Anneal configs
	runCmd.Flags().Float64Var(&startTemperature, "start-temperature", annealDefaults.StartTemperature, "Annealing temperature at stage 0")
	runCmd.Flags().Float64Var(&coolingTime, "cooling-time", annealDefaults.CoolingTime, "Exponential cooling constant, in stages")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Annealing trace verbosity (none, stages)")
	runCmd.Flags().IntVar(&traceEvery, "trace-every", 1, "Record every Nth annealing stage")

	// Outputs
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Write per-trial and aggregate results as JSON to this file")
	runCmd.Flags().StringVar(&renderDir, "render-dir", "", "Write one PNG of the final grid per trial into this directory")
	runCmd.Flags().IntVar(&cellSize, "cell-size", 20, "Pixels per lattice site in rendered images")
	runCmd.Flags().BoolVar(&showGrid, "show-grid", false, "Print each final grid as text")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(specCmd)
}
