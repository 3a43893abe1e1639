package compilation

import (
	"fmt"
	"strings"
)

// Page geometry for the fallback renderer, in points (US Letter).
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	pageMargin   = 72.0
	nameFontSize = 20.0
	headFontSize = 13.0
	bodyFontSize = 10.0
	bodyLeading  = 14.0
)

// compileFallback parses the markup into a content model and renders it
// directly into a paginated PDF: header block first, then one block per
// section. It never invokes the primary engine.
func compileFallback(markup string) ([]byte, error) {
	model := parseMarkup(markup)

	if model.header.name == "" && len(model.sections) == 0 {
		return nil, fmt.Errorf("no extractable content in markup")
	}

	doc := &pdfDocument{}
	p := newPageWriter()

	p.writeLine(model.header.name, nameFontSize, bodyLeading*2)
	contact := strings.TrimSpace(model.header.email + "  " + model.header.phone)
	p.writeLine(contact, bodyFontSize, bodyLeading*1.5)

	for _, section := range model.sections {
		p.ensureRoom(doc, bodyLeading*3)
		p.writeLine(section.title, headFontSize, bodyLeading*1.8)
		for _, line := range section.lines {
			p.ensureRoom(doc, bodyLeading)
			p.writeLine(line, bodyFontSize, bodyLeading)
		}
	}

	p.flush(doc)
	pdf := doc.build()
	if len(pdf) == 0 {
		return nil, fmt.Errorf("fallback renderer produced empty output")
	}
	return pdf, nil
}

// pageWriter accumulates text operators for the current page and tracks
// the vertical cursor.
type pageWriter struct {
	content strings.Builder
	y       float64
}

func newPageWriter() *pageWriter {
	p := &pageWriter{}
	p.reset()
	return p
}

func (p *pageWriter) reset() {
	p.content.Reset()
	p.content.WriteString("q\n0 0 0 rg\n")
	p.y = pageHeight - pageMargin
}

func (p *pageWriter) writeLine(text string, size, leading float64) {
	if text == "" {
		return
	}
	p.content.WriteString("BT\n")
	p.content.WriteString(fmt.Sprintf("/F1 %.2f Tf\n", size))
	p.content.WriteString(fmt.Sprintf("%.2f %.2f Td\n", pageMargin, p.y))
	p.content.WriteString(fmt.Sprintf("(%s) Tj\n", escapePDFString(text)))
	p.content.WriteString("ET\n")
	p.y -= leading
}

// ensureRoom starts a new page when the next block would run past the
// bottom margin.
func (p *pageWriter) ensureRoom(doc *pdfDocument, needed float64) {
	if p.y-needed < pageMargin {
		p.flush(doc)
		p.reset()
	}
}

func (p *pageWriter) flush(doc *pdfDocument) {
	doc.addPage(pageWidth, pageHeight, p.content.String()+"Q\n")
}
