package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/ising-sim/sim/experiment"
	"github.com/inference-sim/ising-sim/sim/trace"
)

// buildSpec assembles the experiment from the optional --spec file and the CLI
// flags. A flag overrides the file only when it was set explicitly; without a
// file the mode defaults apply.
func buildSpec(cmd *cobra.Command) (*experiment.Spec, error) {
	flags := cmd.Flags()

	var spec *experiment.Spec
	if specPath != "" {
		loaded, err := experiment.LoadSpec(specPath)
		if err != nil {
			return nil, err
		}
		logrus.Infof("Loaded experiment spec from %s", specPath)
		spec = loaded
		if flags.Changed("mode") {
			spec.Mode = mode
		}
	} else {
		spec = experiment.DefaultSpec(mode)
	}

	if spec.Mode == experiment.ModeQuench && spec.Quench == nil {
		spec.Quench = experiment.DefaultSpec(experiment.ModeQuench).Quench
	}
	if spec.Mode == experiment.ModeAnneal && spec.Anneal == nil {
		spec.Anneal = experiment.DefaultSpec(experiment.ModeAnneal).Anneal
	}

	if flags.Changed("seed") {
		spec.Seed = seed
	}
	if flags.Changed("size") {
		spec.Size = size
	}
	if flags.Changed("trials") {
		spec.Trials = trials
	}
	if flags.Changed("workers") || specPath == "" {
		spec.Workers = workers
	}
	if flags.Changed("temperature") {
		spec.InitialTemperature = initialTemperature
	}

	switch spec.Mode {
	case experiment.ModeQuench:
		if flags.Changed("quench-temperature") {
			spec.Quench.Temperature = quenchTemperature
		}
		if flags.Changed("flips-per-site") {
			spec.Quench.FlipsPerSite = flipsPerSite
		}
	case experiment.ModeAnneal:
		if flags.Changed("start-temperature") {
			spec.Anneal.StartTemperature = startTemperature
		}
		if flags.Changed("flips-per-site") {
			spec.Anneal.FlipsPerSite = flipsPerSite
		}
		if flags.Changed("cooling-time") {
			spec.Anneal.CoolingTime = coolingTime
		}
		if flags.Changed("trace-level") || specPath == "" {
			spec.Anneal.TraceLevel = trace.TraceLevel(traceLevel)
		}
		if flags.Changed("trace-every") || specPath == "" {
			spec.Anneal.TraceEvery = traceEvery
		}
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}
