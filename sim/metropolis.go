package sim

import (
	"math"
	"math/rand"
)

// AcceptanceProbability returns the Metropolis acceptance probability of a move
// with energy change dE at temperature t.
//
// Moves that do not raise the energy are always accepted. At t == 0 an
// energy-raising move has probability exactly 0; the division is never evaluated.
func AcceptanceProbability(dE int, t float64) float64 {
	if dE <= 0 {
		return 1
	}
	if t == 0 {
		return 0
	}
	return math.Exp(-float64(dE) / t)
}

// MetropolisStep attempts one flip at a uniformly random site of l and reports
// whether it was accepted. At most one cell is mutated.
func MetropolisStep(l *Lattice, rng *rand.Rand) bool {
	x := rng.Intn(l.size)
	y := rng.Intn(l.size)
	return l.attemptFlip(x, y, rng)
}

// attemptFlip runs the accept/reject decision for the site (x, y).
// The uniform draw for an energy-raising move is consumed even at T == 0 so the
// random stream does not depend on the temperature.
func (l *Lattice) attemptFlip(x, y int, rng *rand.Rand) bool {
	l.counters.Attempts++
	s := l.Spin(x, y)
	dE := EnergyDelta(s, s.Flipped(), l.neighborValues(x, y))
	if dE <= 0 {
		l.flip(x, y)
		l.counters.Accepted++
		return true
	}
	r := rng.Float64()
	if l.temperature == 0 {
		l.counters.ZeroTemperatureRejections++
		return false
	}
	if r < AcceptanceProbability(dE, l.temperature) {
		l.flip(x, y)
		l.counters.Accepted++
		return true
	}
	return false
}
