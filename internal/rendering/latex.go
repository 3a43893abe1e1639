package rendering

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jonathan/ats-probe/internal/types"
)

// RenderLaTeX renders a candidate record into LaTeX markup for the given
// layout variant. The variant is immutable for a test unit; rendering is a
// pure transform of the record.
func RenderLaTeX(rec *types.CandidateRecord, variant types.Variant) (string, error) {
	if rec == nil {
		return "", &RenderError{Message: "candidate record is nil"}
	}

	tmpl, err := parseTemplate(variant)
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, rec); err != nil {
		return "", &TemplateError{
			Message: fmt.Sprintf("failed to execute %s template", variant),
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate parses the LaTeX template for a layout variant
func parseTemplate(variant types.Variant) (*template.Template, error) {
	var content string
	switch variant {
	case types.VariantTabular:
		content = tabularTemplate
	case types.VariantItemized:
		content = itemizedTemplate
	default:
		return nil, &RenderError{Message: fmt.Sprintf("unknown layout variant: %q", variant)}
	}

	tmpl, err := template.New(string(variant)).Funcs(template.FuncMap{
		"escape":      EscapeLaTeX,
		"joinEscaped": joinEscaped,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to parse %s template", variant),
			Cause:   err,
		}
	}

	return tmpl, nil
}

// joinEscaped escapes each item and joins them with the separator
func joinEscaped(items []string, sep string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = EscapeLaTeX(item)
	}
	return strings.Join(escaped, sep)
}

// ExpectedFields returns the field map a target should recover after the
// rendered document round-trips through it. Keys line up with descriptor
// selector names.
func ExpectedFields(rec *types.CandidateRecord) map[string]string {
	fields := map[string]string{
		"firstName": rec.FirstName(),
		"lastName":  rec.LastName(),
		"email":     rec.Email,
		"phone":     rec.Phone,
	}
	if len(rec.Skills) > 0 {
		fields["skills"] = strings.Join(rec.Skills, ", ")
	}
	return fields
}
