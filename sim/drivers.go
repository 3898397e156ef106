package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/ising-sim/sim/trace"
)

// Equilibrate performs flipsPerSite·size² Metropolis steps at the lattice's
// current temperature, which is left unchanged. It is a fixed iteration count,
// not a convergence test.
func Equilibrate(l *Lattice, rng *rand.Rand, flipsPerSite int) error {
	if flipsPerSite < 0 {
		return fmt.Errorf("flips per site must be non-negative, got %d: %w", flipsPerSite, ErrInvalidSchedule)
	}
	before := l.counters
	total := flipsPerSite * l.size * l.size
	for i := 0; i < total; i++ {
		MetropolisStep(l, rng)
	}
	logrus.Debugf("equilibrated %dx%d lattice at T=%g: %d steps, %d accepted",
		l.size, l.size, l.temperature, total, l.counters.Accepted-before.Accepted)
	return nil
}

// Sweep performs size² Metropolis steps, one attempted flip per site on average,
// and returns the number of accepted flips.
func Sweep(l *Lattice, rng *rand.Rand) int {
	accepted := 0
	for i := 0; i < l.size*l.size; i++ {
		if MetropolisStep(l, rng) {
			accepted++
		}
	}
	return accepted
}

// AnnealTemperature returns the schedule temperature at stage n:
// start·exp(-n/coolingTime).
func AnnealTemperature(start float64, n int, coolingTime float64) float64 {
	return start * math.Exp(-float64(n)/coolingTime)
}

// Anneal cools the lattice gradually. For each stage n in [0, flipsPerSite) it
// sets the temperature to AnnealTemperature(startTemperature, n, coolingTime)
// and performs one Sweep.
func Anneal(l *Lattice, rng *rand.Rand, startTemperature float64, flipsPerSite int, coolingTime float64) error {
	return AnnealTraced(l, rng, startTemperature, flipsPerSite, coolingTime, nil)
}

// AnnealTraced is Anneal with per-stage records appended to at.
// A nil or disabled trace records nothing.
func AnnealTraced(l *Lattice, rng *rand.Rand, startTemperature float64, flipsPerSite int, coolingTime float64, at *trace.AnnealTrace) error {
	if err := validateTemperature(startTemperature); err != nil {
		return fmt.Errorf("start temperature: %w", err)
	}
	if flipsPerSite < 0 {
		return fmt.Errorf("flips per site must be non-negative, got %d: %w", flipsPerSite, ErrInvalidSchedule)
	}
	if math.IsNaN(coolingTime) || math.IsInf(coolingTime, 0) || coolingTime <= 0 {
		return fmt.Errorf("cooling time must be a finite positive number, got %v: %w", coolingTime, ErrInvalidSchedule)
	}

	sweepSize := l.size * l.size
	for n := 0; n < flipsPerSite; n++ {
		l.temperature = AnnealTemperature(startTemperature, n, coolingTime)
		accepted := Sweep(l, rng)
		logrus.Tracef("anneal stage %d: T=%g accepted=%d/%d", n, l.temperature, accepted, sweepSize)
		if at.Wants(n) {
			at.RecordStage(trace.StageRecord{
				Stage:                n,
				Temperature:          l.temperature,
				Attempts:             sweepSize,
				Accepted:             accepted,
				AverageEnergyPerSite: l.AverageEnergyPerSite(),
				AverageSpinPerSite:   l.AverageSpinPerSite(),
			})
		}
	}
	logrus.Debugf("annealed %dx%d lattice from T=%g to T=%g over %d stages",
		l.size, l.size, startTemperature, l.temperature, flipsPerSite)
	return nil
}
