package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// CriticalTemperature is the ordering temperature of the infinite square
// lattice with unit coupling, 2/ln(1+√2).
const CriticalTemperature = 2.269185314213022

// Counters accumulates Metropolis bookkeeping for one lattice.
// ZeroTemperatureRejections counts energy-raising moves rejected because T == 0.
type Counters struct {
	Attempts                  int64 `json:"attempts"`
	Accepted                  int64 `json:"accepted"`
	ZeroTemperatureRejections int64 `json:"zero_temperature_rejections"`
}

// AcceptanceRatio returns Accepted/Attempts, or 0 before any attempt.
func (c Counters) AcceptanceRatio() float64 {
	if c.Attempts == 0 {
		return 0
	}
	return float64(c.Accepted) / float64(c.Attempts)
}

// Lattice is a size×size square grid of spins with periodic boundaries.
//
// The grid is stored row-major in a single slice owned by the Lattice; it never
// changes dimensions after construction and every cell is always Up or Down.
//
// Thread-safety: NOT thread-safe. Independent lattices share no state.
type Lattice struct {
	size        int
	spins       []Spin
	temperature float64
	counters    Counters
}

// NewLattice allocates a size×size lattice whose spins are drawn independently
// and uniformly from {Down, Up} using rng.
func NewLattice(temperature float64, size int, rng *rand.Rand) (*Lattice, error) {
	if size <= 0 {
		return nil, &InvalidSizeError{Size: size}
	}
	if err := validateTemperature(temperature); err != nil {
		return nil, err
	}
	spins := make([]Spin, size*size)
	for i := range spins {
		spins[i] = Spin(rng.Intn(2)*2 - 1)
	}
	return &Lattice{size: size, spins: spins, temperature: temperature}, nil
}

// NewLatticeFromSpins builds a lattice from an explicit square grid.
// The grid is copied; the caller keeps ownership of its argument.
func NewLatticeFromSpins(temperature float64, grid [][]Spin) (*Lattice, error) {
	size := len(grid)
	if size == 0 {
		return nil, &InvalidSizeError{Size: 0}
	}
	if err := validateTemperature(temperature); err != nil {
		return nil, err
	}
	spins := make([]Spin, 0, size*size)
	for x, row := range grid {
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", x, len(row), size, ErrInvalidSize)
		}
		for y, s := range row {
			if !s.Valid() {
				return nil, fmt.Errorf("cell (%d, %d) = %d: %w", x, y, int8(s), ErrInvalidSpin)
			}
		}
		spins = append(spins, row...)
	}
	return &Lattice{size: size, spins: spins, temperature: temperature}, nil
}

func validateTemperature(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return fmt.Errorf("temperature must be a finite non-negative number, got %v: %w", t, ErrInvalidTemperature)
	}
	return nil
}

// Size returns the side length of the grid.
func (l *Lattice) Size() int {
	return l.size
}

// Temperature returns the current temperature.
func (l *Lattice) Temperature() float64 {
	return l.temperature
}

// SetTemperature changes the temperature used by subsequent Metropolis steps.
func (l *Lattice) SetTemperature(t float64) error {
	if err := validateTemperature(t); err != nil {
		return err
	}
	l.temperature = t
	return nil
}

// Counters returns a snapshot of the Metropolis bookkeeping.
func (l *Lattice) Counters() Counters {
	return l.counters
}

// Spin returns the spin at (x, y). x and y must be in [0, size).
func (l *Lattice) Spin(x, y int) Spin {
	return l.spins[x*l.size+y]
}

// flip inverts the spin at (x, y).
func (l *Lattice) flip(x, y int) {
	i := x*l.size + y
	l.spins[i] = -l.spins[i]
}

// Spins returns a copy of the grid indexed [x][y].
func (l *Lattice) Spins() [][]Spin {
	grid := make([][]Spin, l.size)
	for x := range grid {
		row := make([]Spin, l.size)
		copy(row, l.spins[x*l.size:(x+1)*l.size])
		grid[x] = row
	}
	return grid
}

// Neighbors returns the four periodic neighbors of (x, y) in the order
// left, right, down, up. x and y must be in [0, size).
func (l *Lattice) Neighbors(x, y int) [4]Site {
	n := l.size
	return [4]Site{
		{X: (x - 1 + n) % n, Y: y},
		{X: (x + 1) % n, Y: y},
		{X: x, Y: (y - 1 + n) % n},
		{X: x, Y: (y + 1) % n},
	}
}

// neighborValues returns the spins at Neighbors(x, y), in the same order.
func (l *Lattice) neighborValues(x, y int) [4]Spin {
	var vals [4]Spin
	for i, s := range l.Neighbors(x, y) {
		vals[i] = l.Spin(s.X, s.Y)
	}
	return vals
}

// AverageEnergyPerSite returns the mean energy per site with unit coupling.
// Each bond is visited from both endpoints, hence the factor of 2.
func (l *Lattice) AverageEnergyPerSite() float64 {
	doubleEnergy := 0
	for x := 0; x < l.size; x++ {
		for y := 0; y < l.size; y++ {
			doubleEnergy += -int(l.Spin(x, y)) * sumSpins(l.neighborValues(x, y))
		}
	}
	return float64(doubleEnergy) / (2.0 * float64(l.size*l.size))
}

// AverageSpinPerSite returns the magnetization per site, in [-1, +1].
func (l *Lattice) AverageSpinPerSite() float64 {
	total := 0
	for _, s := range l.spins {
		total += int(s)
	}
	return float64(total) / float64(l.size*l.size)
}

// Summary captures the lattice observables at the current state.
func (l *Lattice) Summary() Summary {
	return Summary{
		Temperature:          l.temperature,
		AverageEnergyPerSite: l.AverageEnergyPerSite(),
		AverageSpinPerSite:   l.AverageSpinPerSite(),
	}
}

func (l *Lattice) String() string {
	return l.Summary().String()
}
