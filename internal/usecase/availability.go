package usecase

import (
	"fmt"
	"time"

	"github.com/tablescout/backend/internal/domain"
)

// TimePeriod is a coarse busyness bucket derived from day-of-week and
// hour-of-day
type TimePeriod string

const (
	PeriodWeekendEvening TimePeriod = "weekend_evening"
	PeriodWeekdayEvening TimePeriod = "weekday_evening"
	PeriodLunchTime      TimePeriod = "lunch_time"
	PeriodOther          TimePeriod = "other"
)

// Base busyness per period. Availability is 1 - busyness before rating
// adjustment.
const (
	busynessWeekendEvening = 0.9
	busynessWeekdayEvening = 0.7
	busynessLunchTime      = 0.6
	busynessOther          = 0.5
)

// Rating adjustments: popular places are assumed busier, weak ones emptier
const (
	popularRatingThreshold = 4.5
	quietRatingThreshold   = 3.5
	popularMultiplier      = 0.8
	quietMultiplier        = 1.2

	// A rating the model never saw is treated as middling
	defaultRating = 3.5

	// The heuristic carries a fixed confidence; it does not vary by input
	estimateConfidence = 0.6
)

// Recommendation text thresholds on the final availability score
const (
	goodAvailabilityThreshold     = 0.7
	moderateAvailabilityThreshold = 0.4
)

const (
	recommendGood     = "Good availability expected - walk-ins should be fine"
	recommendModerate = "Moderate availability - booking ahead is recommended"
	recommendCrowded  = "Likely crowded - consider choosing another time"
)

// ClassifyPeriod buckets a timestamp by day-of-week and hour-of-day
func ClassifyPeriod(when time.Time) TimePeriod {
	day := when.Weekday()
	hour := when.Hour()

	weekend := day == time.Friday || day == time.Saturday

	switch {
	case weekend && hour >= 18 && hour <= 23:
		return PeriodWeekendEvening
	case hour >= 18 && hour <= 22:
		return PeriodWeekdayEvening
	case hour >= 11 && hour <= 15:
		return PeriodLunchTime
	default:
		return PeriodOther
	}
}

// periodBusyness returns the base busyness for a period bucket
func periodBusyness(period TimePeriod) float64 {
	switch period {
	case PeriodWeekendEvening:
		return busynessWeekendEvening
	case PeriodWeekdayEvening:
		return busynessWeekdayEvening
	case PeriodLunchTime:
		return busynessLunchTime
	default:
		return busynessOther
	}
}

// EstimateAvailability predicts how easy it is to get a table at the
// requested time. Pure function of (rating, when), always succeeds.
// The output is a statistical guess, not a live availability lookup.
func EstimateAvailability(place domain.Place, when time.Time) domain.AvailabilityEstimate {
	period := ClassifyPeriod(when)
	availability := 1 - periodBusyness(period)

	rating := defaultRating
	if place.Rating != nil {
		rating = *place.Rating
	}

	if rating > popularRatingThreshold {
		availability *= popularMultiplier
	} else if rating < quietRatingThreshold {
		availability *= quietMultiplier
	}

	availability = clamp01(availability)

	return domain.AvailabilityEstimate{
		AvailabilityScore: availability,
		Confidence:        estimateConfidence,
		Recommendation:    recommendationFor(availability),
		AlternativeTimes:  alternativeTimes(when),
	}
}

func recommendationFor(availability float64) string {
	switch {
	case availability >= goodAvailabilityThreshold:
		return recommendGood
	case availability >= moderateAvailabilityThreshold:
		return recommendModerate
	default:
		return recommendCrowded
	}
}

// alternativeTimes suggests one earlier and one later slot around the
// requested time
func alternativeTimes(when time.Time) []string {
	earlier := when.Add(-60 * time.Minute)
	later := when.Add(120 * time.Minute)
	return []string{
		fmt.Sprintf("%s (earlier)", earlier.Format("15:04")),
		fmt.Sprintf("%s (later)", later.Format("15:04")),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
