package usecase

import (
	"strings"

	"github.com/tablescout/backend/internal/domain"
)

// Free-text answers from the chat front-end arrive noisy: stray
// whitespace, quotes, trailing punctuation. Providers get a cleaned
// query so the same answer always produces the same upstream request.

const maxFreeTextLength = 100

// NormalizeQuery returns a copy of the query with its free-text fields
// cleaned. Cuisine is lowercased since every provider matches it
// case-insensitively anyway.
func NormalizeQuery(query domain.PlaceQuery) domain.PlaceQuery {
	query.Location = cleanFreeText(query.Location)
	query.Cuisine = strings.ToLower(cleanFreeText(query.Cuisine))
	return query
}

// cleanFreeText trims, strips wrapping quotes and characters that break
// Overpass regex filters, collapses whitespace, and caps the length
func cleanFreeText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)

	// Quotes and backslashes would escape out of the Overpass filter
	s = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '~', '|':
			return -1
		}
		return r
	}, s)

	s = strings.Join(strings.Fields(s), " ")

	if len(s) > maxFreeTextLength {
		s = s[:maxFreeTextLength]
		if lastSpace := strings.LastIndex(s, " "); lastSpace > 0 {
			s = s[:lastSpace]
		}
	}
	return s
}
