package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tablescout/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	maxRetries       = 3
	maxErrorBodySize = 500
)

// Client handles communication with the Google Places Text Search API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new Places API client
func NewClient(apiKey, baseURL string) *Client {
	// Stay well under the Places API default quota of ~10 QPS
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// Source reports which provider this client wraps
func (c *Client) Source() domain.Source {
	return domain.SourceGooglePlaces
}

// Search runs a text search for restaurants matching the query and
// normalizes the results. Records without a name are dropped.
func (c *Client) Search(ctx context.Context, query domain.PlaceQuery) ([]domain.Place, error) {
	endpoint := fmt.Sprintf("%s/maps/api/place/textsearch/json", c.baseURL)
	params := url.Values{}
	params.Add("query", buildSearchText(query))
	params.Add("type", "restaurant")
	params.Add("key", c.apiKey)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[GOOGLE] Request error (attempt %d): %v", attempt, err)
			lastErr = &domain.ProviderError{Source: domain.SourceGooglePlaces, Message: err.Error()}
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("[GOOGLE] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			lastErr = &domain.ProviderError{
				Source:     domain.SourceGooglePlaces,
				StatusCode: resp.StatusCode,
				Message:    truncate(string(body), maxErrorBodySize),
			}
			// Retry only server-side and throttling failures
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				time.Sleep(time.Duration(attempt*500) * time.Millisecond)
				continue
			}
			return nil, lastErr
		}

		var searchResp textSearchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		// ZERO_RESULTS is a valid empty answer, not a failure
		if searchResp.Status != "OK" && searchResp.Status != "ZERO_RESULTS" {
			return nil, &domain.ProviderError{
				Source:  domain.SourceGooglePlaces,
				Message: truncate(fmt.Sprintf("%s: %s", searchResp.Status, searchResp.ErrorMessage), maxErrorBodySize),
			}
		}

		places := mapPlaces(searchResp.Results)
		log.Printf("[GOOGLE] Found %d places for %q", len(places), query.Location)
		return places, nil
	}

	log.Printf("[GOOGLE] All retries failed for %q", query.Location)
	return nil, lastErr
}

// buildSearchText composes the free-text query the Text Search API expects
func buildSearchText(query domain.PlaceQuery) string {
	if query.Cuisine != "" {
		return fmt.Sprintf("%s restaurants in %s", query.Cuisine, query.Location)
	}
	return fmt.Sprintf("restaurants in %s", query.Location)
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
