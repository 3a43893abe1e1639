package scoring

import (
	"strings"

	"github.com/jonathan/ats-probe/internal/types"
)

// maxEditDistance is the exclusive upper bound on the edit distance that
// still counts as a field match. Targets apply vendor-specific
// normalization (casing, padding, punctuation), so small edits are noise,
// not extraction failures.
const maxEditDistance = 3

// FieldsMatch reports whether an extracted value matches the expected one.
// Both sides are case-folded and trimmed first. A match is containment in
// either direction, or an edit distance below maxEditDistance. An empty
// extracted value for a non-empty expected field never matches: the
// substring and edit-distance shortcuts do not apply to empty strings.
func FieldsMatch(expected, extracted string) bool {
	e := strings.ToLower(strings.TrimSpace(expected))
	x := strings.ToLower(strings.TrimSpace(extracted))

	if e == "" {
		return x == ""
	}
	if x == "" {
		return false
	}

	if strings.Contains(x, e) || strings.Contains(e, x) {
		return true
	}

	return Levenshtein(e, x) < maxEditDistance
}

// Score compares an expected field map against an extracted field map and
// returns per-field match results plus the aggregate accuracy percentage.
// It never fails for any string input, including empty strings in either
// position; an empty expected map yields accuracy 0.
func Score(expected map[string]string, extracted types.ExtractedFieldSet) *types.FidelityReport {
	report := &types.FidelityReport{
		Fields: make(map[string]bool, len(expected)),
	}

	if len(expected) == 0 {
		return report
	}

	matched := 0
	for field, want := range expected {
		ok := FieldsMatch(want, extracted.Get(field))
		report.Fields[field] = ok
		if ok {
			matched++
		}
	}

	report.Accuracy = 100 * float64(matched) / float64(len(expected))
	return report
}
