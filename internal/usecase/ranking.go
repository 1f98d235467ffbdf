package usecase

import (
	"math"
	"sort"

	"github.com/tablescout/backend/internal/domain"
)

// Match score blend: rating contributes 60%, the remaining 40% is a
// flat floor so rating-less places still surface
const (
	ratingWeight   = 0.6
	matchBaseScore = 0.4

	// Normalized rating substituted when a provider carries none
	absentRatingShare = 0.6
)

// MatchScore blends the provider rating into a [0,1] score, rounded to
// two decimals. Absent ratings fall back to a middling share rather
// than sinking the place to the bottom.
func MatchScore(rating *float64) float64 {
	share := absentRatingShare
	if rating != nil {
		share = *rating / 5
	}
	return round2(ratingWeight*share + matchBaseScore)
}

// RankRecommendations orders recommendations by matchScore*availability
// descending and truncates to limit. The sort is stable: ties keep
// their merged-list order, which callers rely on for determinism.
func RankRecommendations(recs []domain.Recommendation, limit int) []domain.Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return rankKey(recs[i]) > rankKey(recs[j])
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

func rankKey(rec domain.Recommendation) float64 {
	return rec.MatchScore * rec.Availability.AvailabilityScore
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
