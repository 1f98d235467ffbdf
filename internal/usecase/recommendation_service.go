package usecase

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/tablescout/backend/internal/domain"
)

// Pipeline bounds: the estimate cap limits how many merged places get
// an availability estimate before ranking; the result limit bounds the
// final response.
const (
	defaultEstimateCap     = 20
	defaultResultLimit     = 10
	defaultProviderTimeout = 15 * time.Second
)

// RecommendationConfig holds configuration for the recommendation pipeline
type RecommendationConfig struct {
	EstimateCap     int
	ResultLimit     int
	ProviderTimeout time.Duration
}

// RecommendationService orchestrates the full pipeline: provider
// fan-out, merge, availability estimation, ranking. Providers are held
// in fixed priority order; that order decides which duplicate survives
// the merge.
type RecommendationService struct {
	providers       []domain.PlaceProvider
	estimateCap     int
	resultLimit     int
	providerTimeout time.Duration
}

// NewRecommendationService creates the pipeline over the given
// providers. Provider order is the dedup priority order.
func NewRecommendationService(providers []domain.PlaceProvider, config RecommendationConfig) *RecommendationService {
	estimateCap := config.EstimateCap
	if estimateCap <= 0 {
		estimateCap = defaultEstimateCap
	}
	limit := config.ResultLimit
	if limit <= 0 {
		limit = defaultResultLimit
	}
	timeout := config.ProviderTimeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}

	return &RecommendationService{
		providers:       providers,
		estimateCap:     estimateCap,
		resultLimit:     limit,
		providerTimeout: timeout,
	}
}

// Recommend runs one pipeline pass. It never fails as a whole: a
// provider failure contributes an empty batch plus a recorded error,
// and even all providers failing yields an empty (degraded) result so
// the caller can tell "nothing worked" from "nothing matched" via the
// per-source counts.
func (s *RecommendationService) Recommend(ctx context.Context, query domain.PlaceQuery) (*domain.RecommendationResult, error) {
	query = NormalizeQuery(query)
	if query.Location == "" {
		return nil, domain.ErrInvalidRequest
	}
	if query.RequestedTime.IsZero() {
		query.RequestedTime = time.Now()
	}

	batches, counts, provErrs := s.fanOut(ctx, query)

	merged := MergePlaces(batches...)
	log.Printf("[PIPELINE] Merged %d places from %d providers for %q",
		len(merged), len(s.providers), query.Location)

	// Bound estimation cost before computing per-place estimates
	if len(merged) > s.estimateCap {
		merged = merged[:s.estimateCap]
	}

	recs := make([]domain.Recommendation, 0, len(merged))
	for _, place := range merged {
		recs = append(recs, domain.Recommendation{
			Place:        place,
			Availability: EstimateAvailability(place, query.RequestedTime),
			MatchScore:   MatchScore(place.Rating),
			MapLink:      buildMapLink(place),
		})
	}

	ranked := RankRecommendations(recs, s.resultLimit)

	return &domain.RecommendationResult{
		Recommendations: ranked,
		RequestedTime:   query.RequestedTime,
		Location:        query.Location,
		ProviderCounts:  counts,
		ProviderErrors:  provErrs,
	}, nil
}

// fanOut queries all providers concurrently and waits for every one to
// finish or fail. Results are slotted by provider index so the merge
// sees batches in priority order regardless of completion order.
func (s *RecommendationService) fanOut(ctx context.Context, query domain.PlaceQuery) ([][]domain.Place, map[domain.Source]int, []error) {
	batches := make([][]domain.Place, len(s.providers))
	errs := make([]error, len(s.providers))

	var wg sync.WaitGroup
	for i, provider := range s.providers {
		wg.Add(1)
		go func(i int, provider domain.PlaceProvider) {
			defer wg.Done()

			pctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
			defer cancel()

			places, err := provider.Search(pctx, query)
			if err != nil {
				// Failure is isolated: this provider contributes nothing
				log.Printf("[PIPELINE] Provider %s failed: %v", provider.Source(), err)
				errs[i] = err
				return
			}
			batches[i] = places
		}(i, provider)
	}
	wg.Wait()

	counts := make(map[domain.Source]int, len(s.providers))
	var provErrs []error
	for i, provider := range s.providers {
		counts[provider.Source()] = len(batches[i])
		if errs[i] != nil {
			provErrs = append(provErrs, errs[i])
		}
	}
	return batches, counts, provErrs
}

// buildMapLink derives a map URL for the place: an OpenStreetMap pin
// when coordinates exist, otherwise a maps search over name and address
func buildMapLink(place domain.Place) string {
	if place.Coords != nil {
		lat := strconv.FormatFloat(place.Coords.Lat, 'f', -1, 64)
		lon := strconv.FormatFloat(place.Coords.Lon, 'f', -1, 64)
		return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%s&mlon=%s#map=18/%s/%s", lat, lon, lat, lon)
	}
	q := place.Name
	if place.Address != "" {
		q += " " + place.Address
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(q)
}
