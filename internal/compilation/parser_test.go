package compilation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parserMarkup = `\documentclass[10pt]{article}
\begin{document}
\begin{center}
{\LARGE \textbf{ Jane Doe }}\\[4pt]
jane.doe@example.com \quad (555) 123-4567
\end{center}

\section*{Experience}
\textbf{ Software Engineer }, Acme Corp \hfill 01/2021 -- 06/2024
\begin{itemize}
  \item Built a distributed ingestion service
  \item Cut infrastructure cost by 25\%
\end{itemize}

\section*{Skills}
Go, PostgreSQL, Kubernetes
\end{document}
`

func TestParseMarkup_Header(t *testing.T) {
	model := parseMarkup(parserMarkup)

	assert.Equal(t, "Jane Doe", model.header.name)
	assert.Equal(t, "jane.doe@example.com", model.header.email)
	assert.Equal(t, "(555) 123-4567", model.header.phone)
}

func TestParseMarkup_Sections(t *testing.T) {
	model := parseMarkup(parserMarkup)

	require.Len(t, model.sections, 2)
	assert.Equal(t, "Experience", model.sections[0].title)
	assert.Equal(t, "Skills", model.sections[1].title)
}

func TestParseMarkup_SectionContent(t *testing.T) {
	model := parseMarkup(parserMarkup)

	require.Len(t, model.sections, 2)
	exp := model.sections[0].lines
	assert.Contains(t, exp, "- Built a distributed ingestion service")
	assert.Contains(t, exp, "- Cut infrastructure cost by 25%")

	skills := model.sections[1].lines
	require.NotEmpty(t, skills)
	assert.Equal(t, "Go, PostgreSQL, Kubernetes", skills[0])
}

func TestParseMarkup_FinalSectionStopsAtEndDocument(t *testing.T) {
	model := parseMarkup(parserMarkup)
	for _, line := range model.sections[len(model.sections)-1].lines {
		assert.NotContains(t, line, "document")
	}
}

func TestParseMarkup_NoSections(t *testing.T) {
	model := parseMarkup(`\documentclass{article}
\begin{document}
\textbf{Jane Doe}
\end{document}`)

	assert.Equal(t, "Jane Doe", model.header.name)
	assert.Empty(t, model.sections)
}

func TestParseHeader_FallbackWithoutBoldMarker(t *testing.T) {
	h := parseHeader(`Jane Doe
jane.doe@example.com
(555) 123-4567`)

	assert.Equal(t, "Jane Doe", h.name)
	assert.Equal(t, "jane.doe@example.com", h.email)
	assert.Equal(t, "(555) 123-4567", h.phone)
}

func TestParseMarkup_Empty(t *testing.T) {
	model := parseMarkup("")
	assert.Empty(t, model.header.name)
	assert.Empty(t, model.sections)
}
