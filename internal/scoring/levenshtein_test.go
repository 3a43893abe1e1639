package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein_Identical(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("jane doe", "jane doe"))
}

func TestLevenshtein_EmptyStrings(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("", ""))
	assert.Equal(t, 4, Levenshtein("", "jane"))
	assert.Equal(t, 4, Levenshtein("jane", ""))
}

func TestLevenshtein_SingleSubstitution(t *testing.T) {
	assert.Equal(t, 1, Levenshtein("jane", "jade"))
}

func TestLevenshtein_Insertion(t *testing.T) {
	assert.Equal(t, 1, Levenshtein("jane", "janet"))
}

func TestLevenshtein_Deletion(t *testing.T) {
	assert.Equal(t, 1, Levenshtein("janet", "jane"))
}

func TestLevenshtein_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"jane.doe@example.com", "jane.doe@examp1e.com"},
		{"", "abc"},
		{"(555) 123-4567", "555-123-4567"},
	}
	for _, pair := range pairs {
		assert.Equal(t, Levenshtein(pair[0], pair[1]), Levenshtein(pair[1], pair[0]),
			"distance must be symmetric for %q / %q", pair[0], pair[1])
	}
}

func TestLevenshtein_Classic(t *testing.T) {
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
}

func TestLevenshtein_Unicode(t *testing.T) {
	// One rune substituted, not one byte.
	assert.Equal(t, 1, Levenshtein("résumé", "resumé"))
}
