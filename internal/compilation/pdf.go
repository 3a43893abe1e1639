package compilation

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
)

// Minimal direct PDF writer for the fallback path. Pages are content
// streams referencing a single built-in Helvetica font; objects are
// written sequentially with a classic xref table.
const pdfVersion = "1.4"

type pdfDocument struct {
	objects []string
	pages   []int
}

// addObject appends an object and returns its position within the
// variable object list (1-based; the final object number adds the three
// fixed objects: catalog, page tree, font).
func (d *pdfDocument) addObject(obj string) int {
	d.objects = append(d.objects, obj)
	return len(d.objects)
}

// addPage wraps content into a flate-compressed stream object plus a page
// object and registers the page in the page tree.
func (d *pdfDocument) addPage(width, height float64, content string) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, _ = w.Write([]byte(content))
	_ = w.Close()

	stream := fmt.Sprintf("<< /Length %d\n/Filter /FlateDecode\n>>\nstream\n%sendstream",
		buf.Len(), buf.Bytes())
	streamNum := d.addObject(stream)

	page := fmt.Sprintf("<< /Type /Page\n/Parent 2 0 R\n/MediaBox [0 0 %.2f %.2f]\n/Contents %d 0 R\n/Resources << /Font << /F1 3 0 R >> >>\n>>",
		width, height, streamNum+3)
	pageNum := d.addObject(page)

	d.pages = append(d.pages, pageNum)
}

// build serializes the complete PDF file.
func (d *pdfDocument) build() []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%%PDF-%s\n", pdfVersion))
	buf.WriteString("%\xE2\xE3\xCF\xD3\n")

	var kids strings.Builder
	kids.WriteString("[")
	for i, pageNum := range d.pages {
		if i > 0 {
			kids.WriteString(" ")
		}
		kids.WriteString(fmt.Sprintf("%d 0 R", pageNum+3))
	}
	kids.WriteString("]")

	finalObjects := []string{
		"<< /Type /Catalog\n/Pages 2 0 R\n>>",
		fmt.Sprintf("<< /Type /Pages\n/Kids %s\n/Count %d\n>>", kids.String(), len(d.pages)),
		"<< /Type /Font\n/Subtype /Type1\n/BaseFont /Helvetica\n/Encoding /WinAnsiEncoding\n>>",
	}
	finalObjects = append(finalObjects, d.objects...)
	finalObjects = append(finalObjects, "<<\n/Producer (ats-probe fallback renderer)\n>>")

	xref := make([]int, len(finalObjects)+1)
	for i, obj := range finalObjects {
		xref[i+1] = buf.Len()
		buf.WriteString(fmt.Sprintf("%d 0 obj\n%s\nendobj\n", i+1, obj))
	}

	xrefPos := buf.Len()
	buf.WriteString("xref\n")
	buf.WriteString(fmt.Sprintf("0 %d\n", len(finalObjects)+1))
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(finalObjects); i++ {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", xref[i]))
	}

	buf.WriteString("trailer\n")
	buf.WriteString(fmt.Sprintf("<< /Size %d\n/Root 1 0 R\n/Info %d 0 R\n>>", len(finalObjects)+1, len(finalObjects)))
	buf.WriteString("\nstartxref\n")
	buf.WriteString(fmt.Sprintf("%d\n", xrefPos))
	buf.WriteString("%%EOF\n")

	return buf.Bytes()
}

// escapePDFString escapes characters with meaning inside PDF literal strings
func escapePDFString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	return s
}
