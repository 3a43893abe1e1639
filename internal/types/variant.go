package types

import (
	"fmt"
	"strings"
)

// Variant selects one of the two document layouts.
// It is immutable once chosen for a test unit.
type Variant string

const (
	// VariantTabular arranges sections in a two-column table layout
	VariantTabular Variant = "tabular"
	// VariantItemized arranges sections as headed bullet lists
	VariantItemized Variant = "itemized"
)

// Variants returns both layout variants in a stable order.
func Variants() []Variant {
	return []Variant{VariantTabular, VariantItemized}
}

// ParseVariant parses a layout name into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantTabular:
		return VariantTabular, nil
	case VariantItemized:
		return VariantItemized, nil
	default:
		return "", fmt.Errorf("unknown layout variant: %q (expected %q or %q)", s, VariantTabular, VariantItemized)
	}
}

// splitNamePart returns the token at index i of a whitespace-split name;
// i == -1 selects the last token.
func splitNamePart(name string, i int) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	if i < 0 || i >= len(parts) {
		return parts[len(parts)-1]
	}
	return parts[i]
}
