// Package parser provides utilities for parsing and transforming input data.
// It handles card name normalization, document validation and conversion of
// the synergy graph into the renderer's node/edge format.
package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/synergraph/core/internal/models"
)

var lower = cases.Lower(language.Und)

// Normalize maps a display name to its vertex id: lowercased, diacritics
// removed and every rune that is not a letter or digit dropped.
func Normalize(name string) models.VertexID {
	folded := lower.String(name)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, folded)
	if err != nil {
		stripped = folded
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return models.VertexID(b.String())
}

// IsCanonical reports whether s is already a normalized vertex id.
func IsCanonical(s string) bool {
	return s != "" && string(Normalize(s)) == s
}
