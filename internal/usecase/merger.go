package usecase

import (
	"strings"

	"github.com/tablescout/backend/internal/domain"
)

// MergePlaces combines per-provider batches into one deduplicated list.
// Batches must arrive in provider-priority order: when two records share
// a dedup key, the first one seen wins and its insertion position is
// preserved. The function is total and deterministic.
func MergePlaces(batches ...[]domain.Place) []domain.Place {
	seen := make(map[string]bool)
	var merged []domain.Place

	for _, batch := range batches {
		for _, place := range batch {
			key := dedupKey(place)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, place)
		}
	}

	return merged
}

// dedupKey collapses duplicates across sources by lowercased name and
// address. An empty address participates as an empty string, so two
// same-named places both lacking an address collapse into one.
func dedupKey(place domain.Place) string {
	return strings.ToLower(place.Name) + "|" + strings.ToLower(place.Address)
}
