package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptanceProbability(t *testing.T) {
	tests := []struct {
		name string
		dE   int
		temp float64
		want float64
	}{
		{"lowering move", -8, 1.0, 1},
		{"neutral move", 0, 1.0, 1},
		{"neutral move at zero temperature", 0, 0, 1},
		{"raising move at zero temperature", 4, 0, 0},
		{"raising move", 4, 2.0, math.Exp(-2)},
		{"raising move at high temperature", 8, 1e9, math.Exp(-8 / 1e9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AcceptanceProbability(tt.dE, tt.temp)
			assert.Equal(t, tt.want, got)
			assert.False(t, math.IsNaN(got))
		})
	}
}

func TestAttemptFlip_EnergyLoweringAlwaysFlips(t *testing.T) {
	// GIVEN a checkerboard where every flip lowers the energy (ΔE = -8)
	l := mustLattice(t, 0.001, checkerboardGrid(4))
	before := l.Spin(1, 2)

	// WHEN the flip at (1, 2) is attempted
	accepted := l.attemptFlip(1, 2, newTestRand(1))

	// THEN it is accepted deterministically
	assert.True(t, accepted)
	assert.Equal(t, before.Flipped(), l.Spin(1, 2))
}

func TestAttemptFlip_EnergyNeutralAlwaysFlips(t *testing.T) {
	// GIVEN a site with two up and two down neighbors (ΔE = 0)
	grid := uniformGrid(4, Up)
	grid[0][1] = Down // left of (1, 1)
	grid[1][0] = Down // down of (1, 1)
	l := mustLattice(t, 0, grid)

	// WHEN the flip is attempted at zero temperature
	accepted := l.attemptFlip(1, 1, newTestRand(1))

	// THEN it is accepted without consulting the Boltzmann factor
	assert.True(t, accepted)
	assert.Equal(t, Down, l.Spin(1, 1))
	assert.Equal(t, int64(0), l.Counters().ZeroTemperatureRejections)
}

func TestMetropolisStep_CheckerboardAlwaysAccepts(t *testing.T) {
	l := mustLattice(t, 1.0, checkerboardGrid(6))
	rng := newTestRand(9)

	// one step on a fresh checkerboard flips exactly one cell
	before := l.Spins()
	require.True(t, MetropolisStep(l, rng))
	changed := 0
	after := l.Spins()
	for x := range before {
		for y := range before[x] {
			if before[x][y] != after[x][y] {
				changed++
			}
		}
	}
	assert.Equal(t, 1, changed)
}

func TestMetropolisStep_ZeroTemperatureNeverRaisesEnergy(t *testing.T) {
	for _, temp := range []float64{0, 1e-9} {
		// GIVEN a fully aligned lattice where every flip costs ΔE = 8
		l := mustLattice(t, temp, uniformGrid(5, Up))
		rng := newTestRand(5)

		// WHEN many steps are attempted
		for i := 0; i < 1000; i++ {
			if MetropolisStep(l, rng) {
				t.Fatalf("T=%v: step %d accepted an energy-raising flip", temp, i)
			}
		}

		// THEN nothing changed
		assert.Equal(t, uniformGrid(5, Up), l.Spins())
		c := l.Counters()
		assert.Equal(t, int64(1000), c.Attempts)
		assert.Equal(t, int64(0), c.Accepted)
		if temp == 0 {
			assert.Equal(t, int64(1000), c.ZeroTemperatureRejections)
		} else {
			assert.Equal(t, int64(0), c.ZeroTemperatureRejections)
		}
	}
}

func TestMetropolisStep_RandomStreamIndependentOfTemperature(t *testing.T) {
	// GIVEN the same aligned lattice at T=0 and at a tiny positive T
	a := mustLattice(t, 0, uniformGrid(4, Up))
	b := mustLattice(t, 1e-12, uniformGrid(4, Up))
	rngA, rngB := newTestRand(11), newTestRand(11)

	// WHEN both reject every move
	for i := 0; i < 50; i++ {
		MetropolisStep(a, rngA)
		MetropolisStep(b, rngB)
	}

	// THEN both consumed the same number of draws
	assert.Equal(t, rngA.Int63(), rngB.Int63())
}

func TestMetropolisStep_PreservesSpinInvariant(t *testing.T) {
	l, err := NewLattice(2.0, 8, newTestRand(21))
	require.NoError(t, err)
	rng := newTestRand(22)
	for i := 0; i < 10000; i++ {
		MetropolisStep(l, rng)
		if i%1000 == 0 {
			assertValidSpins(t, l)
			m, e := l.AverageSpinPerSite(), l.AverageEnergyPerSite()
			assert.True(t, m >= -1 && m <= 1, "spin per site %v out of range", m)
			assert.True(t, e >= -2 && e <= 2, "energy per site %v out of range", e)
		}
	}
	assertValidSpins(t, l)
	assert.Equal(t, int64(10000), l.Counters().Attempts)
}

func TestCounters_AcceptanceRatio(t *testing.T) {
	assert.Equal(t, 0.0, Counters{}.AcceptanceRatio())
	assert.Equal(t, 0.25, Counters{Attempts: 8, Accepted: 2}.AcceptanceRatio())
}

func BenchmarkMetropolisStep(b *testing.B) {
	l, err := NewLattice(2.269, 64, newTestRand(1))
	if err != nil {
		b.Fatal(err)
	}
	rng := newTestRand(2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		MetropolisStep(l, rng)
	}
}
