package trace

// TraceLevel controls the verbosity of annealing traces.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelStages captures one record per annealing stage.
	TraceLevelStages TraceLevel = "stages"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelStages: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	// Every records only stages whose index is a multiple of Every (0 or 1 = all stages).
	Every int
}

// AnnealTrace collects stage records during one annealing run.
type AnnealTrace struct {
	Config TraceConfig
	Stages []StageRecord
}

// NewAnnealTrace creates an AnnealTrace ready for recording.
func NewAnnealTrace(config TraceConfig) *AnnealTrace {
	return &AnnealTrace{
		Config: config,
		Stages: make([]StageRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on a nil trace.
func (at *AnnealTrace) Enabled() bool {
	return at != nil && at.Config.Level == TraceLevelStages
}

// Wants reports whether the given stage index should be recorded.
func (at *AnnealTrace) Wants(stage int) bool {
	if !at.Enabled() {
		return false
	}
	return at.Config.Every <= 1 || stage%at.Config.Every == 0
}

// RecordStage appends a stage record.
func (at *AnnealTrace) RecordStage(record StageRecord) {
	at.Stages = append(at.Stages, record)
}
