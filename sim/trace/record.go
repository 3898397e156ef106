package trace

// StageRecord captures the lattice state at the end of one annealing stage.
type StageRecord struct {
	Stage                int     `json:"stage"`
	Temperature          float64 `json:"temperature"`
	Attempts             int     `json:"attempts"`
	Accepted             int     `json:"accepted"`
	AverageEnergyPerSite float64 `json:"average_energy_per_site"`
	AverageSpinPerSite   float64 `json:"average_spin_per_site"`
}

// AcceptanceRatio returns Accepted/Attempts, or 0 for an empty stage.
func (r StageRecord) AcceptanceRatio() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Attempts)
}
