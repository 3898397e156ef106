package sim

// EnergyDelta returns the energy change of replacing initial with final at a
// site whose four neighbors hold neighbors. Coupling and Boltzmann constants are 1.
//
//	ΔE = -final·Σnb - (-initial·Σnb) = (initial - final)·Σnb
//
// For a full flip (final = -initial) this is 2·initial·Σnb.
func EnergyDelta(initial, final Spin, neighbors [4]Spin) int {
	return (int(initial) - int(final)) * sumSpins(neighbors)
}

func sumSpins(vals [4]Spin) int {
	sum := 0
	for _, v := range vals {
		sum += int(v)
	}
	return sum
}
