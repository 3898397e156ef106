package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/ising-sim/sim/experiment"
	"github.com/inference-sim/ising-sim/sim/trace"
)

// resetRunFlags restores every run flag to its default and clears Changed.
func resetRunFlags(t *testing.T) {
	t.Helper()
	runCmd.Flags().VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})
}

func setFlags(t *testing.T, kv ...string) {
	t.Helper()
	for i := 0; i+1 < len(kv); i += 2 {
		require.NoError(t, runCmd.Flags().Set(kv[i], kv[i+1]))
	}
}

func TestBuildSpec_DefaultsMatchQuenchDemonstration(t *testing.T) {
	resetRunFlags(t)

	spec, err := buildSpec(runCmd)
	require.NoError(t, err)

	assert.Equal(t, experiment.ModeQuench, spec.Mode)
	assert.Equal(t, 10, spec.Size)
	assert.Equal(t, 12, spec.Trials)
	assert.Equal(t, 0.001, spec.Quench.Temperature)
	assert.Equal(t, 100, spec.Quench.FlipsPerSite)
	assert.Equal(t, 1, spec.Workers)
}

func TestBuildSpec_AnnealModeUsesAnnealDefaults(t *testing.T) {
	resetRunFlags(t)
	setFlags(t, "mode", "anneal")

	spec, err := buildSpec(runCmd)
	require.NoError(t, err)

	require.NotNil(t, spec.Anneal)
	assert.Equal(t, 500, spec.Anneal.FlipsPerSite, "unchanged --flips-per-site keeps the anneal default")
	assert.Equal(t, 100.0, spec.Anneal.CoolingTime)
	assert.Equal(t, trace.TraceLevelNone, spec.Anneal.TraceLevel)
}

func TestBuildSpec_FlipsPerSiteAppliesToActiveMode(t *testing.T) {
	resetRunFlags(t)
	setFlags(t, "mode", "anneal", "flips-per-site", "50", "cooling-time", "20", "trace-level", "stages")

	spec, err := buildSpec(runCmd)
	require.NoError(t, err)

	assert.Equal(t, 50, spec.Anneal.FlipsPerSite)
	assert.Equal(t, 20.0, spec.Anneal.CoolingTime)
	assert.Equal(t, trace.TraceLevelStages, spec.Anneal.TraceLevel)
	assert.Nil(t, spec.Quench)
}

func TestBuildSpec_SpecFileWithExplicitOverrides(t *testing.T) {
	// GIVEN a spec file with seed 7 and size 16
	path := filepath.Join(t.TempDir(), "exp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: 7
mode: quench
size: 16
trials: 3
workers: 2
initial_temperature: 2.0
quench:
  temperature: 0.5
  flips_per_site: 40
`), 0644))
	resetRunFlags(t)

	// WHEN only --size is passed explicitly
	setFlags(t, "spec", path, "size", "8")
	spec, err := buildSpec(runCmd)
	require.NoError(t, err)

	// THEN --size wins and every other field comes from the file
	assert.Equal(t, 8, spec.Size)
	assert.Equal(t, int64(7), spec.Seed)
	assert.Equal(t, 3, spec.Trials)
	assert.Equal(t, 2, spec.Workers)
	assert.Equal(t, 2.0, spec.InitialTemperature)
	assert.Equal(t, 0.5, spec.Quench.Temperature)
	assert.Equal(t, 40, spec.Quench.FlipsPerSite)
}

func TestBuildSpec_InvalidValuesRejected(t *testing.T) {
	resetRunFlags(t)
	setFlags(t, "size", "0")
	_, err := buildSpec(runCmd)
	assert.Error(t, err)

	resetRunFlags(t)
	setFlags(t, "mode", "anneal", "cooling-time", "0")
	_, err = buildSpec(runCmd)
	assert.Error(t, err)
}

func TestSpecCmd_OutputIsLoadableSpec(t *testing.T) {
	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	writeSpecToStdout(experiment.DefaultSpec(experiment.ModeAnneal))

	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	// THEN the YAML parses strictly back into a valid anneal spec
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	spec, err := experiment.LoadSpec(path)
	require.NoError(t, err)
	require.NoError(t, spec.Validate())
	assert.Equal(t, experiment.ModeAnneal, spec.Mode)
	assert.Equal(t, 500, spec.Anneal.FlipsPerSite)
}

func TestRenderTrials_WritesOnePNGPerTrial(t *testing.T) {
	spec := experiment.DefaultSpec(experiment.ModeQuench)
	spec.Size = 4
	spec.Trials = 2
	spec.Quench.FlipsPerSite = 5
	res, err := experiment.Run(spec)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "frames")
	require.NoError(t, renderTrials(res, dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "quench_trial_000.png", entries[0].Name())
}
