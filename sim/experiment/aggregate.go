package experiment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// OrderedThreshold is the |spin per site| above which a trial counts as ordered.
const OrderedThreshold = 0.9

// Aggregate summarizes the final observables across trials.
type Aggregate struct {
	Trials             int     `json:"trials"`
	MeanEnergy         float64 `json:"mean_energy_per_site"`
	StdDevEnergy       float64 `json:"stddev_energy_per_site"`
	MeanSpin           float64 `json:"mean_spin_per_site"`
	StdDevSpin         float64 `json:"stddev_spin_per_site"`
	MeanAbsSpin        float64 `json:"mean_abs_spin_per_site"`
	OrderedFraction    float64 `json:"ordered_fraction"`
	MinEnergy          float64 `json:"min_energy_per_site"`
	MeanAcceptanceRate float64 `json:"mean_acceptance_rate"`
}

// Summarize computes the aggregate over trials. Standard deviations are zero
// for fewer than two trials.
func Summarize(trials []TrialResult) Aggregate {
	agg := Aggregate{Trials: len(trials)}
	if len(trials) == 0 {
		return agg
	}

	energies := make([]float64, len(trials))
	spins := make([]float64, len(trials))
	absSpins := make([]float64, len(trials))
	rates := make([]float64, len(trials))
	ordered := 0
	for i, tr := range trials {
		energies[i] = tr.Final.AverageEnergyPerSite
		spins[i] = tr.Final.AverageSpinPerSite
		absSpins[i] = math.Abs(spins[i])
		rates[i] = tr.Counters.AcceptanceRatio()
		if absSpins[i] > OrderedThreshold {
			ordered++
		}
	}

	agg.MeanEnergy, agg.StdDevEnergy = meanStdDev(energies)
	agg.MeanSpin, agg.StdDevSpin = meanStdDev(spins)
	agg.MeanAbsSpin = stat.Mean(absSpins, nil)
	agg.MeanAcceptanceRate = stat.Mean(rates, nil)
	agg.OrderedFraction = float64(ordered) / float64(len(trials))
	agg.MinEnergy = energies[0]
	for _, e := range energies[1:] {
		agg.MinEnergy = math.Min(agg.MinEnergy, e)
	}
	return agg
}

func meanStdDev(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

func (a Aggregate) String() string {
	return fmt.Sprintf("Trials: %d, Energy: %.4f ± %.4f, Spin: %.4f ± %.4f, |Spin|: %.4f, Ordered: %.0f%%",
		a.Trials, a.MeanEnergy, a.StdDevEnergy, a.MeanSpin, a.StdDevSpin, a.MeanAbsSpin, 100*a.OrderedFraction)
}
