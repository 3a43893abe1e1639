// Package telemetry emits structured events for every pipeline stage.
// Emission is fire-and-forget: telemetry never affects pipeline outcome.
package telemetry

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-probe/internal/types"
)

// Kind identifies one of the five fixed event schemas.
type Kind string

// The five event kinds. Schemas are fixed for downstream consumers.
const (
	KindCVGenerated    Kind = "cv_generated"
	KindPDFCompiled    Kind = "pdf_compiled"
	KindTestCompleted  Kind = "ats_test_completed"
	KindSuiteStarted   Kind = "test_suite_started"
	KindSuiteCompleted Kind = "test_suite_completed"
)

// Event is one telemetry record. Every event carries an identifier, an
// ISO timestamp, a duration, and a success flag; kind-specific properties
// are flattened alongside them when serialized.
type Event struct {
	ID         string
	Kind       Kind
	Timestamp  time.Time
	DurationMS int64
	Success    bool
	Properties map[string]any
}

// MarshalJSON flattens the event into the fixed wire schema.
func (e Event) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Properties)+5)
	for k, v := range e.Properties {
		out[k] = v
	}
	out["event"] = string(e.Kind)
	out["id"] = e.ID
	out["timestamp"] = e.Timestamp.UTC().Format(time.RFC3339)
	out["duration_ms"] = e.DurationMS
	out["success"] = e.Success
	return json.Marshal(out)
}

func newEvent(kind Kind, success bool, duration time.Duration, props map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		Timestamp:  time.Now(),
		DurationMS: duration.Milliseconds(),
		Success:    success,
		Properties: props,
	}
}

// CVGenerated records one candidate-record generation.
func CVGenerated(format types.Variant, success bool, duration time.Duration, tokensUsed int, model, errText string) Event {
	props := map[string]any{"format": string(format)}
	if tokensUsed > 0 {
		props["tokens_used"] = tokensUsed
	}
	if model != "" {
		props["model"] = model
	}
	if errText != "" {
		props["error"] = errText
	}
	return newEvent(KindCVGenerated, success, duration, props)
}

// PDFCompiled records one document compilation, whichever engine ran.
func PDFCompiled(format types.Variant, engine string, success bool, duration time.Duration, errText string) Event {
	props := map[string]any{
		"format": string(format),
		"engine": engine,
	}
	if errText != "" {
		props["error"] = errText
	}
	return newEvent(KindPDFCompiled, success, duration, props)
}

// TestCompleted records the outcome of one (target, layout) unit.
func TestCompleted(outcome *types.TestOutcome, browser, environment string) Event {
	props := map[string]any{
		"ats_name":    outcome.Target,
		"cv_format":   string(outcome.Variant),
		"test_id":     outcome.TestID,
		"browser":     browser,
		"environment": environment,
	}
	if outcome.Report != nil {
		props["parsing_accuracy"] = outcome.Report.Accuracy
		props["fields_parsed"] = outcome.Report.Fields
	}
	if outcome.Err != "" {
		props["error"] = outcome.Err
	}
	ev := newEvent(KindTestCompleted, outcome.Success, outcome.Duration, props)
	ev.ID = outcome.TestID
	return ev
}

// SuiteStarted records the beginning of a suite run.
func SuiteStarted(totalTests int, browser, environment string) Event {
	return newEvent(KindSuiteStarted, true, 0, map[string]any{
		"total_tests": totalTests,
		"browser":     browser,
		"environment": environment,
	})
}

// SuiteCompleted records the end of a suite run with aggregate counts.
func SuiteCompleted(total, passed, failed int, duration time.Duration, browser, environment string) Event {
	rate := 0.0
	if total > 0 {
		rate = float64(passed) / float64(total)
	}
	return newEvent(KindSuiteCompleted, failed == 0, duration, map[string]any{
		"total_tests":  total,
		"passed_tests": passed,
		"failed_tests": failed,
		"success_rate": rate,
		"browser":      browser,
		"environment":  environment,
	})
}
