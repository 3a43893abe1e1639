package submission

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/ats-probe/internal/types"
)

// ExtractFields reads the field values the target produced, one selector
// per field from the descriptor. The page is snapshotted once and parsed
// with goquery; any per-field failure degrades that field to "" and never
// aborts extraction of the remaining fields.
func (s *Session) ExtractFields(ctx context.Context) types.ExtractedFieldSet {
	fields := make(types.ExtractedFieldSet)
	selectors := s.target.FieldSelectors()
	for name := range selectors {
		fields[name] = ""
	}

	tctx, cancel := s.bounded(ctx, s.opts.ActionTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(tctx, chromedp.OuterHTML("html", &html)); err != nil {
		// No snapshot at all: every field stays empty. Absence is data.
		return fields
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fields
	}

	for name, selector := range selectors {
		fields[name] = extractOne(doc, selector)
	}

	return fields
}

// extractOne pulls a single field value from the parsed snapshot. Form
// inputs report their value attribute; other nodes their text content.
func extractOne(doc *goquery.Document, selector string) string {
	defer func() {
		// A malformed selector panics inside cascadia; degrade to "".
		_ = recover()
	}()

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}

	if val, exists := sel.Attr("value"); exists {
		return strings.TrimSpace(val)
	}

	return strings.TrimSpace(sel.Text())
}
