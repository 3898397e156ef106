package sim

import "fmt"

// Spin is the binary state held at each lattice site. Only Up and Down are valid.
type Spin int8

const (
	Down Spin = -1
	Up   Spin = 1
)

// Valid reports whether s is Up or Down.
func (s Spin) Valid() bool {
	return s == Up || s == Down
}

// Flipped returns the opposite spin.
func (s Spin) Flipped() Spin {
	return -s
}

func (s Spin) String() string {
	switch s {
	case Up:
		return "+1"
	case Down:
		return "-1"
	default:
		return fmt.Sprintf("Spin(%d)", int8(s))
	}
}

// Site addresses one cell of a lattice by (row, column).
type Site struct {
	X int
	Y int
}
