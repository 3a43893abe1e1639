package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-probe/internal/types"
)

func decodeEvent(t *testing.T, ev Event) map[string]any {
	t.Helper()
	data, err := json.Marshal(ev)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestEvent_MarshalFlattensProperties(t *testing.T) {
	ev := Event{
		ID:         "abc",
		Kind:       KindCVGenerated,
		Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		DurationMS: 42,
		Success:    true,
		Properties: map[string]any{"format": "tabular"},
	}

	out := decodeEvent(t, ev)
	assert.Equal(t, "cv_generated", out["event"])
	assert.Equal(t, "abc", out["id"])
	assert.Equal(t, "2025-06-01T12:00:00Z", out["timestamp"])
	assert.Equal(t, float64(42), out["duration_ms"])
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "tabular", out["format"])
	assert.NotContains(t, out, "Properties")
}

func TestCVGenerated_OptionalProperties(t *testing.T) {
	ev := CVGenerated(types.VariantTabular, true, time.Second, 0, "", "")
	out := decodeEvent(t, ev)
	assert.NotContains(t, out, "tokens_used")
	assert.NotContains(t, out, "model")
	assert.NotContains(t, out, "error")

	ev = CVGenerated(types.VariantTabular, true, time.Second, 321, "gemini-1.5-flash", "")
	out = decodeEvent(t, ev)
	assert.Equal(t, float64(321), out["tokens_used"])
	assert.Equal(t, "gemini-1.5-flash", out["model"])
}

func TestPDFCompiled_Properties(t *testing.T) {
	ev := PDFCompiled(types.VariantItemized, types.EngineFallback, false, 2*time.Second, "both paths failed")
	out := decodeEvent(t, ev)

	assert.Equal(t, "pdf_compiled", out["event"])
	assert.Equal(t, "itemized", out["format"])
	assert.Equal(t, "fallback", out["engine"])
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "both paths failed", out["error"])
}

func TestTestCompleted_ReusesTestID(t *testing.T) {
	outcome := &types.TestOutcome{
		Target:   "demo-ats",
		Variant:  types.VariantTabular,
		TestID:   "unit-123",
		Duration: 5 * time.Second,
		Success:  true,
		Report:   &types.FidelityReport{Accuracy: 80, Fields: map[string]bool{"email": true}},
	}

	ev := TestCompleted(outcome, "chromium", "local")
	assert.Equal(t, "unit-123", ev.ID)

	out := decodeEvent(t, ev)
	assert.Equal(t, "ats_test_completed", out["event"])
	assert.Equal(t, "demo-ats", out["ats_name"])
	assert.Equal(t, "tabular", out["cv_format"])
	assert.Equal(t, "chromium", out["browser"])
	assert.Equal(t, "local", out["environment"])
	assert.Equal(t, float64(80), out["parsing_accuracy"])
}

func TestTestCompleted_NoReport(t *testing.T) {
	outcome := &types.TestOutcome{
		Target:  "demo-ats",
		Variant: types.VariantTabular,
		TestID:  "unit-456",
		Stage:   types.StageFailed,
		Err:     "submitted: navigation failed",
	}

	out := decodeEvent(t, TestCompleted(outcome, "chromium", "ci"))
	assert.NotContains(t, out, "parsing_accuracy")
	assert.Equal(t, "submitted: navigation failed", out["error"])
	assert.Equal(t, false, out["success"])
}

func TestSuiteCompleted_SuccessRate(t *testing.T) {
	out := decodeEvent(t, SuiteCompleted(4, 3, 1, time.Minute, "chromium", "local"))
	assert.Equal(t, float64(4), out["total_tests"])
	assert.Equal(t, float64(3), out["passed_tests"])
	assert.Equal(t, float64(1), out["failed_tests"])
	assert.Equal(t, 0.75, out["success_rate"])
	assert.Equal(t, false, out["success"])
}

func TestSuiteCompleted_EmptySuite(t *testing.T) {
	out := decodeEvent(t, SuiteCompleted(0, 0, 0, 0, "chromium", "local"))
	assert.Equal(t, float64(0), out["success_rate"])
	assert.Equal(t, true, out["success"])
}

func TestSuiteStarted_Properties(t *testing.T) {
	out := decodeEvent(t, SuiteStarted(8, "chromium", "ci"))
	assert.Equal(t, "test_suite_started", out["event"])
	assert.Equal(t, float64(8), out["total_tests"])
	assert.Equal(t, true, out["success"])
	assert.NotEmpty(t, out["id"])
}
