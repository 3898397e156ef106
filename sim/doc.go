// Package sim provides the Metropolis Monte Carlo engine for the 2D Ising lattice.
//
// # Reading Guide
//
//   - spin.go, lattice.go: the spin grid, periodic neighbors and observables
//   - energy.go: energy change of a single-spin flip
//   - metropolis.go: the accept/reject step
//   - drivers.go: fixed-temperature equilibration and exponential annealing
//   - rng.go: seeded, per-trial random streams
//
// # Architecture
//
// Every function that draws randomness takes an explicit *rand.Rand; there is
// no package-level generator. Sub-packages build on the core:
//   - sim/trace/: per-stage annealing records
//   - sim/experiment/: experiment specs and the multi-trial runner
//   - sim/render/: PNG and text rendering of a spin grid
//
// A single lattice is strictly sequential. Independent lattices share no state
// and may run on separate goroutines.
package sim
