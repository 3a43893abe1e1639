package compilation

import (
	"regexp"
	"strings"
)

// The cleaning transforms below are ordered: later rules assume earlier
// ones have already removed nested wrappers. Reordering them breaks
// extraction (e.g. stripping braces before unwrapping emphasis destroys
// the wrapper arguments).
var (
	emphasisPattern  = regexp.MustCompile(`\\(?:textbf|textit|emph)\{([^{}]*)\}`)
	lineBreakPattern = regexp.MustCompile(`\\\\(?:\[[^\]]*\])?`)
	commandPattern   = regexp.MustCompile(`\\[a-zA-Z]+\*?(?:\[[^\]]*\])?`)
	escapedPattern   = regexp.MustCompile(`\\([%#$_{}])`)
	spacePattern     = regexp.MustCompile(`[ \t]+`)
)

// cleanContent reduces a raw section body to plain content lines by
// applying the ordered transform chain.
func cleanContent(raw string) []string {
	s := raw

	// 1. Unwrap emphasis/bold/italic wrappers, repeating for nesting.
	for {
		unwrapped := emphasisPattern.ReplaceAllString(s, "$1")
		if unwrapped == s {
			break
		}
		s = unwrapped
	}

	// 2. Normalize list-item bullets.
	s = strings.ReplaceAll(s, `\item`, "\n- ")

	// 3. Normalize explicit line breaks.
	s = lineBreakPattern.ReplaceAllString(s, "\n")

	// 4. Strip residual formatting commands and alignment separators.
	// \& is a literal ampersand in the content; protect it from the
	// alignment replacement, then restore the remaining escaped literals.
	s = strings.ReplaceAll(s, `\&`, "\x00")
	s = commandPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&", " ")
	s = strings.ReplaceAll(s, "\x00", "&")
	s = escapedPattern.ReplaceAllString(s, "$1")

	// 5. Strip grouping delimiters.
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")

	// 6. Collapse whitespace.
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(spacePattern.ReplaceAllString(line, " "))
		if line == "" || line == "-" {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}
