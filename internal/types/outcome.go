package types

import "time"

// ExtractedFieldSet maps field names to the values a target produced.
// An empty string means the field was not recoverable; absence is data,
// not an error.
type ExtractedFieldSet map[string]string

// Get returns the extracted value for a field, or "" when missing.
// It never fails on an absent field.
func (s ExtractedFieldSet) Get(field string) string {
	if s == nil {
		return ""
	}
	return s[field]
}

// FidelityReport holds per-field match results and the aggregate accuracy.
// Invariant: Accuracy == 100 * matched / total, and 0 when total is 0.
type FidelityReport struct {
	Fields   map[string]bool `json:"fields"`
	Accuracy float64         `json:"accuracy"`
}

// Matched returns the number of fields that matched.
func (r *FidelityReport) Matched() int {
	n := 0
	for _, ok := range r.Fields {
		if ok {
			n++
		}
	}
	return n
}

// Stage identifies the pipeline stage a unit reached.
type Stage string

// Pipeline stages, in execution order. Reported is the only non-error
// terminal stage; Failed is terminal from compilation onward or via the
// unit timeout.
const (
	StageInit      Stage = "init"
	StageRendered  Stage = "rendered"
	StageCompiled  Stage = "compiled"
	StageSubmitted Stage = "submitted"
	StageExtracted Stage = "extracted"
	StageScored    Stage = "scored"
	StageReported  Stage = "reported"
	StageFailed    Stage = "failed"
)

// StageTiming records the duration and outcome of one stage transition.
// Timings are recorded independent of the final verdict.
type StageTiming struct {
	Stage    Stage         `json:"stage"`
	Duration time.Duration `json:"duration"`
	Success  bool          `json:"success"`
}

// TestOutcome is the per-(target, layout) result of one pipeline unit.
// It is ephemeral: created per run and handed to telemetry, never persisted
// by the pipeline itself.
type TestOutcome struct {
	Target   string          `json:"target"`
	Variant  Variant         `json:"variant"`
	TestID   string          `json:"test_id"`
	Duration time.Duration   `json:"duration"`
	Success  bool            `json:"success"`
	Degraded bool            `json:"degraded,omitempty"`
	Stage    Stage           `json:"stage"`
	Report   *FidelityReport `json:"report,omitempty"`
	Err      string          `json:"error,omitempty"`
	Timings  []StageTiming   `json:"timings,omitempty"`
}
