package experiment

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/ising-sim/sim/trace"
)

// Experiment modes.
const (
	// ModeQuench sets the lattice straight to the quench temperature and equilibrates.
	ModeQuench = "quench"
	// ModeAnneal cools the lattice along the exponential schedule.
	ModeAnneal = "anneal"
)

var validModes = map[string]bool{ModeQuench: true, ModeAnneal: true}

// Spec is the top-level experiment configuration.
// Loaded from YAML via LoadSpec(path).
type Spec struct {
	Version            string      `yaml:"version" json:"version"`
	Seed               int64       `yaml:"seed" json:"seed"`
	Mode               string      `yaml:"mode" json:"mode"`
	Size               int         `yaml:"size" json:"size"`
	Trials             int         `yaml:"trials" json:"trials"`
	Workers            int         `yaml:"workers,omitempty" json:"workers,omitempty"` // 0 = one worker
	InitialTemperature float64     `yaml:"initial_temperature" json:"initial_temperature"`
	Quench             *QuenchSpec `yaml:"quench,omitempty" json:"quench,omitempty"`
	Anneal             *AnnealSpec `yaml:"anneal,omitempty" json:"anneal,omitempty"`
}

// QuenchSpec configures an instantaneous quench followed by equilibration.
type QuenchSpec struct {
	Temperature  float64 `yaml:"temperature" json:"temperature"`
	FlipsPerSite int     `yaml:"flips_per_site" json:"flips_per_site"`
}

// AnnealSpec configures gradual exponential cooling.
type AnnealSpec struct {
	StartTemperature float64          `yaml:"start_temperature" json:"start_temperature"`
	FlipsPerSite     int              `yaml:"flips_per_site" json:"flips_per_site"`
	CoolingTime      float64          `yaml:"cooling_time" json:"cooling_time"`
	TraceLevel       trace.TraceLevel `yaml:"trace_level,omitempty" json:"trace_level,omitempty"`
	TraceEvery       int              `yaml:"trace_every,omitempty" json:"trace_every,omitempty"`
}

// DefaultSpec returns the demonstration parameters for mode: a 10x10 lattice
// started at T=3, quenched to T=0.001 for 100 flips per site (12 trials), or
// annealed from T=3 over 500 stages with cooling time 100 (10 trials).
func DefaultSpec(mode string) *Spec {
	spec := &Spec{
		Version:            "1",
		Seed:               42,
		Mode:               mode,
		Size:               10,
		InitialTemperature: 3.0,
	}
	switch mode {
	case ModeAnneal:
		spec.Trials = 10
		spec.Anneal = &AnnealSpec{StartTemperature: 3.0, FlipsPerSite: 500, CoolingTime: 100}
	default:
		spec.Trials = 12
		spec.Quench = &QuenchSpec{Temperature: 0.001, FlipsPerSite: 100}
	}
	return spec
}

// LoadSpec reads and parses a YAML experiment specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment spec: %w", err)
	}
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing experiment spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *Spec) Validate() error {
	if !validModes[s.Mode] {
		return fmt.Errorf("unknown mode %q; valid: quench, anneal", s.Mode)
	}
	if s.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", s.Size)
	}
	if s.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", s.Trials)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", s.Workers)
	}
	if err := validateTemperature("initial_temperature", s.InitialTemperature); err != nil {
		return err
	}
	switch s.Mode {
	case ModeQuench:
		if s.Quench == nil {
			return fmt.Errorf("mode %q requires a quench section", s.Mode)
		}
		return s.Quench.validate()
	case ModeAnneal:
		if s.Anneal == nil {
			return fmt.Errorf("mode %q requires an anneal section", s.Mode)
		}
		return s.Anneal.validate()
	}
	return nil
}

func (q *QuenchSpec) validate() error {
	if err := validateTemperature("quench.temperature", q.Temperature); err != nil {
		return err
	}
	if q.FlipsPerSite < 0 {
		return fmt.Errorf("quench.flips_per_site must be non-negative, got %d", q.FlipsPerSite)
	}
	return nil
}

func (a *AnnealSpec) validate() error {
	if err := validateTemperature("anneal.start_temperature", a.StartTemperature); err != nil {
		return err
	}
	if a.FlipsPerSite < 0 {
		return fmt.Errorf("anneal.flips_per_site must be non-negative, got %d", a.FlipsPerSite)
	}
	if math.IsNaN(a.CoolingTime) || math.IsInf(a.CoolingTime, 0) || a.CoolingTime <= 0 {
		return fmt.Errorf("anneal.cooling_time must be a finite positive number, got %f", a.CoolingTime)
	}
	if !trace.IsValidTraceLevel(string(a.TraceLevel)) {
		return fmt.Errorf("anneal.trace_level %q unknown; valid: none, stages", a.TraceLevel)
	}
	if a.TraceEvery < 0 {
		return fmt.Errorf("anneal.trace_every must be non-negative, got %d", a.TraceEvery)
	}
	return nil
}

func validateTemperature(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val < 0 {
		return fmt.Errorf("%s must be non-negative, got %f", name, val)
	}
	return nil
}
