package experiment

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/ising-sim/sim"
	"github.com/inference-sim/ising-sim/sim/trace"
)

// TrialResult is the outcome of one independent lattice.
type TrialResult struct {
	Trial    int                 `json:"trial"`
	Initial  sim.Summary         `json:"initial"`
	Final    sim.Summary         `json:"final"`
	Counters sim.Counters        `json:"counters"`
	Trace    *trace.TraceSummary `json:"trace,omitempty"`
	Stages   []trace.StageRecord `json:"stages,omitempty"`

	// Spins is the final grid, kept for renderers and left out of results files.
	Spins [][]sim.Spin `json:"-"`
}

// Result collects every trial of an experiment in trial order.
type Result struct {
	Spec      Spec          `json:"spec"`
	Trials    []TrialResult `json:"trials"`
	Aggregate Aggregate     `json:"aggregate"`
	WallTime  time.Duration `json:"wall_time_ns"`
}

type trialJob struct {
	id  int
	rng *rand.Rand
}

// Run executes spec.Trials independent trials and aggregates their final
// observables. Each trial owns its lattice and its random stream, derived from
// the spec seed, so results do not depend on the number of workers.
func Run(spec *Spec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid experiment spec: %w", err)
	}
	if spec.Mode == ModeQuench && spec.Quench.Temperature > sim.CriticalTemperature {
		logrus.Warnf("quench temperature %g is above the ordering temperature %.4f; the lattice will stay disordered",
			spec.Quench.Temperature, sim.CriticalTemperature)
	}

	// PartitionedRNG is not thread-safe: derive all streams before starting workers.
	rngs := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	jobs := make(chan trialJob, spec.Trials)
	for i := 0; i < spec.Trials; i++ {
		jobs <- trialJob{id: i, rng: rngs.ForTrial(i)}
	}
	close(jobs)

	workers := max(spec.Workers, 1)
	workers = min(workers, spec.Trials)

	start := time.Now()
	results := make([]TrialResult, spec.Trials)
	errs := make([]error, spec.Trials)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results[job.id], errs[job.id] = runTrial(spec, job.id, job.rng)
			}
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	res := &Result{
		Spec:      *spec,
		Trials:    results,
		Aggregate: Summarize(results),
		WallTime:  time.Since(start),
	}
	logrus.Infof("%s experiment finished: %d trials of %dx%d in %v",
		spec.Mode, spec.Trials, spec.Size, spec.Size, res.WallTime)
	return res, nil
}

// runTrial builds one lattice at the initial temperature and drives it
// according to the spec mode.
func runTrial(spec *Spec, id int, rng *rand.Rand) (TrialResult, error) {
	l, err := sim.NewLattice(spec.InitialTemperature, spec.Size, rng)
	if err != nil {
		return TrialResult{}, fmt.Errorf("trial %d: %w", id, err)
	}
	tr := TrialResult{Trial: id, Initial: l.Summary()}

	switch spec.Mode {
	case ModeQuench:
		if err := l.SetTemperature(spec.Quench.Temperature); err != nil {
			return TrialResult{}, fmt.Errorf("trial %d: %w", id, err)
		}
		if err := sim.Equilibrate(l, rng, spec.Quench.FlipsPerSite); err != nil {
			return TrialResult{}, fmt.Errorf("trial %d: %w", id, err)
		}
	case ModeAnneal:
		a := spec.Anneal
		at := trace.NewAnnealTrace(trace.TraceConfig{Level: a.TraceLevel, Every: a.TraceEvery})
		if err := sim.AnnealTraced(l, rng, a.StartTemperature, a.FlipsPerSite, a.CoolingTime, at); err != nil {
			return TrialResult{}, fmt.Errorf("trial %d: %w", id, err)
		}
		if at.Enabled() {
			tr.Trace = trace.Summarize(at)
			tr.Stages = at.Stages
		}
	}

	tr.Final = l.Summary()
	tr.Counters = l.Counters()
	tr.Spins = l.Spins()
	logrus.Infof("trial %d: %s", id, l)
	if c := tr.Counters; c.ZeroTemperatureRejections > 0 {
		logrus.Debugf("trial %d: %d energy-raising moves rejected at T=0", id, c.ZeroTemperatureRejections)
	}
	return tr, nil
}
