package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/ising-sim/sim/experiment"
)

var specMode string

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Print the default experiment spec for a mode as YAML",
	Long:  "Write the demonstration experiment spec for --mode to stdout. The output is a valid --spec file for `run`.",
	Run: func(cmd *cobra.Command, args []string) {
		spec := experiment.DefaultSpec(specMode)
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("Invalid mode: %v", err)
		}
		writeSpecToStdout(spec)
	},
}

func writeSpecToStdout(spec *experiment.Spec) {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(spec); err != nil {
		logrus.Fatalf("Failed to encode spec: %v", err)
	}
	if err := encoder.Close(); err != nil {
		logrus.Fatalf("Failed to flush spec: %v", err)
	}
}

func init() {
	specCmd.Flags().StringVar(&specMode, "mode", experiment.ModeQuench, "Experiment mode (quench, anneal)")
}
