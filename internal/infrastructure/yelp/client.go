package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tablescout/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	maxRetries       = 3
	maxErrorBodySize = 500
	defaultLimit     = 20
)

// Client handles communication with the Yelp Fusion business search API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	limit       int
}

// NewClient creates a new Yelp Fusion client
func NewClient(apiKey, baseURL string) *Client {
	// Yelp allows 5000 calls/day; ~1 QPS keeps requests well inside that
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		limit:       defaultLimit,
	}
}

// Source reports which provider this client wraps
func (c *Client) Source() domain.Source {
	return domain.SourceYelp
}

// Search queries the business search endpoint and normalizes the results
func (c *Client) Search(ctx context.Context, query domain.PlaceQuery) ([]domain.Place, error) {
	endpoint := fmt.Sprintf("%s/v3/businesses/search", c.baseURL)
	params := url.Values{}
	params.Add("location", query.Location)
	params.Add("categories", "restaurants")
	if query.Cuisine != "" {
		params.Add("term", query.Cuisine)
	}
	params.Add("limit", strconv.Itoa(c.limit))

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
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[YELP] Request error (attempt %d): %v", attempt, err)
			lastErr = &domain.ProviderError{Source: domain.SourceYelp, Message: err.Error()}
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("[YELP] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			lastErr = &domain.ProviderError{
				Source:     domain.SourceYelp,
				StatusCode: resp.StatusCode,
				Message:    truncate(string(body), maxErrorBodySize),
			}
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				time.Sleep(time.Duration(attempt*500) * time.Millisecond)
				continue
			}
			return nil, lastErr
		}

		var searchResp businessSearchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		places := mapBusinesses(searchResp.Businesses)
		log.Printf("[YELP] Found %d businesses for %q", len(places), query.Location)
		return places, nil
	}

	log.Printf("[YELP] All retries failed for %q", query.Location)
	return nil, lastErr
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
