package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-probe/internal/types"
)

func testRecord() *types.CandidateRecord {
	return &types.CandidateRecord{
		Name:  "Jane Doe",
		Email: "jane.doe@example.com",
		Phone: "(555) 123-4567",
		Experience: []types.ExperienceEntry{
			{
				Company:   "Acme & Sons",
				Role:      "Software Engineer",
				StartDate: "01/2021",
				EndDate:   "06/2024",
				Bullets:   []string{"Cut costs by 25%", "Built the #1 internal tool"},
			},
		},
		Education: []types.EducationEntry{
			{School: "State University", Degree: "B.S.", Field: "Computer Science", StartDate: "09/2013", EndDate: "06/2017"},
		},
		Skills: []string{"Go", "PostgreSQL", "C++"},
	}
}

func TestRenderLaTeX_TabularStructure(t *testing.T) {
	markup, err := RenderLaTeX(testRecord(), types.VariantTabular)
	require.NoError(t, err)

	assert.Contains(t, markup, `\documentclass`)
	assert.Contains(t, markup, `\begin{document}`)
	assert.Contains(t, markup, `\end{document}`)
	assert.Contains(t, markup, `\begin{tabular}`)
	assert.Contains(t, markup, `\section*{Experience}`)
	assert.Contains(t, markup, `\section*{Education}`)
	assert.Contains(t, markup, `\section*{Skills}`)
}

func TestRenderLaTeX_ItemizedStructure(t *testing.T) {
	markup, err := RenderLaTeX(testRecord(), types.VariantItemized)
	require.NoError(t, err)

	assert.Contains(t, markup, `\documentclass`)
	assert.Contains(t, markup, `\begin{itemize}`)
	assert.Contains(t, markup, `\item`)
	assert.Contains(t, markup, `\section*{Experience}`)
	assert.Contains(t, markup, `\section*{Education}`)
	assert.Contains(t, markup, `\section*{Skills}`)
	assert.NotContains(t, markup, `\begin{tabular}`)
}

func TestRenderLaTeX_EscapesContent(t *testing.T) {
	for _, variant := range types.Variants() {
		markup, err := RenderLaTeX(testRecord(), variant)
		require.NoError(t, err)

		assert.Contains(t, markup, `Acme \& Sons`, "variant %s", variant)
		assert.Contains(t, markup, `25\%`, "variant %s", variant)
		assert.Contains(t, markup, `\#1`, "variant %s", variant)
		assert.NotContains(t, markup, "Acme & Sons", "variant %s", variant)
	}
}

func TestRenderLaTeX_BothVariantsCarrySameFields(t *testing.T) {
	rec := testRecord()
	for _, variant := range types.Variants() {
		markup, err := RenderLaTeX(rec, variant)
		require.NoError(t, err)

		assert.Contains(t, markup, "Jane Doe")
		assert.Contains(t, markup, "jane.doe@example.com")
		assert.Contains(t, markup, "(555) 123-4567")
		for _, skill := range []string{"Go", "PostgreSQL"} {
			assert.Contains(t, markup, skill)
		}
	}
}

func TestRenderLaTeX_NilRecord(t *testing.T) {
	_, err := RenderLaTeX(nil, types.VariantTabular)
	require.Error(t, err)

	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestRenderLaTeX_UnknownVariant(t *testing.T) {
	_, err := RenderLaTeX(testRecord(), types.Variant("fancy"))
	assert.Error(t, err)
}

func TestExpectedFields_Complete(t *testing.T) {
	fields := ExpectedFields(testRecord())

	assert.Equal(t, "Jane", fields["firstName"])
	assert.Equal(t, "Doe", fields["lastName"])
	assert.Equal(t, "jane.doe@example.com", fields["email"])
	assert.Equal(t, "(555) 123-4567", fields["phone"])
	assert.Equal(t, "Go, PostgreSQL, C++", fields["skills"])
}

func TestExpectedFields_NoSkills(t *testing.T) {
	rec := testRecord()
	rec.Skills = nil
	fields := ExpectedFields(rec)
	assert.NotContains(t, fields, "skills")
	assert.Len(t, fields, 4)
}

func TestJoinEscaped(t *testing.T) {
	result := joinEscaped([]string{"C#", "A&B"}, ", ")
	assert.Equal(t, `C\#, A\&B`, result)
}

func TestRenderLaTeX_Deterministic(t *testing.T) {
	rec := testRecord()
	first, err := RenderLaTeX(rec, types.VariantItemized)
	require.NoError(t, err)
	second, err := RenderLaTeX(rec, types.VariantItemized)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
