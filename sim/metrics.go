// Observables reported for a lattice at a point in time.

package sim

import "fmt"

// Summary holds the two scalar observables of a lattice together with the
// temperature they were measured at.
type Summary struct {
	Temperature          float64 `json:"temperature"`
	AverageEnergyPerSite float64 `json:"average_energy_per_site"`
	AverageSpinPerSite   float64 `json:"average_spin_per_site"`
}

func (s Summary) String() string {
	return fmt.Sprintf("Temperature: %v, Average Energy: %v, Average Spin: %v",
		s.Temperature, s.AverageEnergyPerSite, s.AverageSpinPerSite)
}

// Title formats the summary the way the grid renderer labels a figure,
// e.g. "Spin: 1.00 Energy:-2.00".
func (s Summary) Title() string {
	return fmt.Sprintf("Spin:%5.2f Energy:%5.2f", s.AverageSpinPerSite, s.AverageEnergyPerSite)
}
