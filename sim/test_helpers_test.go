package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// uniformGrid returns a size×size grid filled with s.
func uniformGrid(size int, s Spin) [][]Spin {
	grid := make([][]Spin, size)
	for x := range grid {
		grid[x] = make([]Spin, size)
		for y := range grid[x] {
			grid[x][y] = s
		}
	}
	return grid
}

// checkerboardGrid returns a grid where every spin is opposite to its four neighbors
// (size must be even for the periodic wrap to keep that property).
func checkerboardGrid(size int) [][]Spin {
	grid := uniformGrid(size, Up)
	for x := range grid {
		for y := range grid[x] {
			if (x+y)%2 == 1 {
				grid[x][y] = Down
			}
		}
	}
	return grid
}

func mustLattice(t *testing.T, temperature float64, grid [][]Spin) *Lattice {
	t.Helper()
	l, err := NewLatticeFromSpins(temperature, grid)
	require.NoError(t, err)
	return l
}

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// assertValidSpins fails if any cell is not Up or Down.
func assertValidSpins(t *testing.T, l *Lattice) {
	t.Helper()
	for x, row := range l.Spins() {
		for y, s := range row {
			if !s.Valid() {
				t.Fatalf("cell (%d, %d) = %d, want -1 or +1", x, y, int8(s))
			}
		}
	}
}
