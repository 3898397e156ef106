package trace

import "math"

// TraceSummary aggregates statistics from an AnnealTrace.
type TraceSummary struct {
	RecordedStages      int     `json:"recorded_stages"`
	InitialTemperature  float64 `json:"initial_temperature"`
	FinalTemperature    float64 `json:"final_temperature"`
	MeanAcceptanceRatio float64 `json:"mean_acceptance_ratio"`
	MinEnergyPerSite    float64 `json:"min_energy_per_site"`
	MinEnergyStage      int     `json:"min_energy_stage"`
}

// Summarize computes aggregate statistics from an AnnealTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(at *AnnealTrace) *TraceSummary {
	summary := &TraceSummary{}
	if at == nil || len(at.Stages) == 0 {
		return summary
	}

	summary.RecordedStages = len(at.Stages)
	summary.InitialTemperature = at.Stages[0].Temperature
	summary.FinalTemperature = at.Stages[len(at.Stages)-1].Temperature
	summary.MinEnergyPerSite = math.Inf(1)

	totalRatio := 0.0
	for _, r := range at.Stages {
		totalRatio += r.AcceptanceRatio()
		if r.AverageEnergyPerSite < summary.MinEnergyPerSite {
			summary.MinEnergyPerSite = r.AverageEnergyPerSite
			summary.MinEnergyStage = r.Stage
		}
	}
	summary.MeanAcceptanceRatio = totalRatio / float64(len(at.Stages))

	return summary
}
