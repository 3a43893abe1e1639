package compilation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanContent_UnwrapsNestedEmphasis(t *testing.T) {
	lines := cleanContent(`\textbf{\emph{important}} detail`)
	assert.Equal(t, []string{"important detail"}, lines)
}

func TestCleanContent_ItemsBecomeBullets(t *testing.T) {
	lines := cleanContent(`\item first thing \item second thing`)
	assert.Equal(t, []string{"- first thing", "- second thing"}, lines)
}

func TestCleanContent_LineBreaks(t *testing.T) {
	lines := cleanContent(`first\\second\\[4pt]third`)
	assert.Equal(t, []string{"first", "second", "third"}, lines)
}

func TestCleanContent_StripsCommandsAndAlignment(t *testing.T) {
	lines := cleanContent(`Acme Corp & Software Engineer \hfill 01/2021`)
	assert.Equal(t, []string{"Acme Corp Software Engineer 01/2021"}, lines)
}

func TestCleanContent_RestoresEscapedLiterals(t *testing.T) {
	lines := cleanContent(`Cut cost by 25\% on \$2M budget for A\&B \#1`)
	assert.Equal(t, []string{"Cut cost by 25% on $2M budget for A&B #1"}, lines)
}

func TestCleanContent_StripsBraces(t *testing.T) {
	lines := cleanContent(`{\LARGE Jane Doe}`)
	assert.Equal(t, []string{"Jane Doe"}, lines)
}

func TestCleanContent_DropsEmptyAndBareBulletLines(t *testing.T) {
	lines := cleanContent("\n\n  \n\\item\n")
	assert.Empty(t, lines)
}

func TestCleanContent_CollapsesWhitespace(t *testing.T) {
	lines := cleanContent("Jane   \t  Doe")
	assert.Equal(t, []string{"Jane Doe"}, lines)
}

func TestCleanContent_Empty(t *testing.T) {
	assert.Empty(t, cleanContent(""))
}
