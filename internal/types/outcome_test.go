package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractedFieldSet_Get(t *testing.T) {
	fields := ExtractedFieldSet{"email": "jane.doe@example.com"}
	assert.Equal(t, "jane.doe@example.com", fields.Get("email"))
	assert.Equal(t, "", fields.Get("phone"))
}

func TestExtractedFieldSet_Get_Nil(t *testing.T) {
	var fields ExtractedFieldSet
	assert.Equal(t, "", fields.Get("email"))
}

func TestFidelityReport_Matched(t *testing.T) {
	report := &FidelityReport{
		Fields: map[string]bool{"a": true, "b": false, "c": true},
	}
	assert.Equal(t, 2, report.Matched())
}

func TestFidelityReport_Matched_Empty(t *testing.T) {
	report := &FidelityReport{}
	assert.Equal(t, 0, report.Matched())
}
