package compilation

import (
	"regexp"
	"strings"
)

// contentModel is the structured form the fallback renderer draws from:
// a header block followed by the document's sections in order.
type contentModel struct {
	header   headerBlock
	sections []sectionBlock
}

// headerBlock holds the contact fields recovered from the markup preamble
type headerBlock struct {
	name  string
	phone string
	email string
}

// sectionBlock holds one \section* and its cleaned content lines
type sectionBlock struct {
	title string
	lines []string
}

const sectionMarker = `\section*{`

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}`)
	boldPattern  = regexp.MustCompile(`\\textbf\{\s*([^{}]+?)\s*\}`)
)

// parseMarkup tokenizes the known markers and builds the content model via
// an explicit state machine: first the header block, then repeated section
// blocks captured up to the next section boundary.
func parseMarkup(markup string) *contentModel {
	model := &contentModel{}

	// Header region is everything before the first section boundary.
	headerEnd := strings.Index(markup, sectionMarker)
	if headerEnd < 0 {
		headerEnd = len(markup)
	}
	model.header = parseHeader(markup[:headerEnd])

	// Iterate section boundaries, capturing content up to the next one.
	rest := markup[headerEnd:]
	for {
		start := strings.Index(rest, sectionMarker)
		if start < 0 {
			break
		}
		rest = rest[start+len(sectionMarker):]

		titleEnd := strings.IndexByte(rest, '}')
		if titleEnd < 0 {
			break
		}
		title := strings.TrimSpace(rest[:titleEnd])
		rest = rest[titleEnd+1:]

		bodyEnd := strings.Index(rest, sectionMarker)
		var body string
		if bodyEnd < 0 {
			body = rest
			rest = ""
		} else {
			body = rest[:bodyEnd]
			rest = rest[bodyEnd:]
		}
		if end := strings.Index(body, `\end{document}`); end >= 0 {
			body = body[:end]
		}

		model.sections = append(model.sections, sectionBlock{
			title: title,
			lines: cleanContent(body),
		})
	}

	return model
}

// parseHeader recovers name, email, and phone from the header region.
// Structured markers are tried first; generic textual patterns are the
// fallback when markers are absent.
func parseHeader(region string) headerBlock {
	var h headerBlock

	// Structured marker: the candidate name is the first bold group.
	if m := boldPattern.FindStringSubmatch(region); m != nil {
		h.name = strings.TrimSpace(m[1])
	}

	if m := emailPattern.FindString(region); m != "" {
		h.email = m
	}
	if m := phonePattern.FindString(region); m != "" {
		h.phone = strings.TrimSpace(m)
	}

	// Generic textual fallback: without a bold marker, take the first
	// cleaned line that is neither the email nor the phone.
	if h.name == "" {
		for _, line := range cleanContent(region) {
			if line == "" || strings.Contains(line, "@") || phonePattern.MatchString(line) {
				continue
			}
			h.name = line
			break
		}
	}

	return h
}
