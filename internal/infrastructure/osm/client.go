package osm

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
	maxErrorBodySize = 500
	defaultRadius    = 3000 // meters around the geocoded center
	defaultMax       = 5

	// Overpass fetches a larger window than requested because many raw
	// elements are dropped during normalization (no name tag)
	overfetchFactor = 4

	geocodeCacheTTL = 24 * time.Hour
)

// Config holds the OSM client settings. UserAgent must carry a real
// contact address per the Nominatim usage policy.
type Config struct {
	NominatimURL string
	OverpassURL  string
	UserAgent    string
	Radius       int
	MaxResults   int
	Timeout      time.Duration // combined budget across geocode + POI calls
}

// Client queries OpenStreetMap in two sequential steps: Nominatim
// resolves the free-text location to coordinates, then Overpass lists
// restaurants around them. No API key is required.
type Client struct {
	httpClient   *http.Client
	cfg          Config
	rateLimiter  *rate.Limiter
	geocodeCache domain.CacheRepository
}

// NewClient creates a new OSM client. cache may be nil to disable
// geocode memoization.
func NewClient(cfg Config, cache domain.CacheRepository) *Client {
	if cfg.Radius <= 0 {
		cfg.Radius = defaultRadius
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMax
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	// Nominatim policy caps anonymous use at 1 request/second
	limiter := rate.NewLimiter(rate.Limit(1), 1)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cfg:          cfg,
		rateLimiter:  limiter,
		geocodeCache: cache,
	}
}

// Source reports which provider this client wraps
func (c *Client) Source() domain.Source {
	return domain.SourceOSM
}

// Search geocodes the location, then queries Overpass for restaurants
// around it. The two calls share one timeout budget and are strictly
// sequential since the second depends on the first.
func (c *Client) Search(ctx context.Context, query domain.PlaceQuery) ([]domain.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	center, err := c.geocode(ctx, query.Location)
	if err != nil {
		return nil, err
	}

	radius := query.RadiusMeters
	if radius <= 0 {
		radius = c.cfg.Radius
	}
	max := query.MaxResults
	if max <= 0 {
		max = c.cfg.MaxResults
	}

	elements, err := c.queryOverpass(ctx, center, radius, query.Cuisine, max)
	if err != nil {
		return nil, err
	}

	places := mapElements(elements)
	if len(places) > max {
		places = places[:max]
	}
	log.Printf("[OSM] Found %d restaurants near %q", len(places), query.Location)
	return places, nil
}

// geocode resolves a free-text location to coordinates via Nominatim,
// memoizing hits so repeated queries for the same city stay off the
// network. Result lists are never cached, only the coordinate pair.
func (c *Client) geocode(ctx context.Context, location string) (domain.Coordinates, error) {
	cacheKey := "geocode:" + strings.ToLower(strings.TrimSpace(location))
	if c.geocodeCache != nil {
		if v, err := c.geocodeCache.Get(ctx, cacheKey); err == nil {
			if coords, ok := v.(domain.Coordinates); ok {
				return coords, nil
			}
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("q", location)
	params.Add("format", "json")
	params.Add("limit", "1")
	reqURL := fmt.Sprintf("%s?%s", c.cfg.NominatimURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Coordinates{}, &domain.ProviderError{Source: domain.SourceOSM, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return domain.Coordinates{}, &domain.ProviderError{
			Source:     domain.SourceOSM,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(results) == 0 {
		log.Printf("[OSM] No geocoding match for %q", location)
		return domain.Coordinates{}, fmt.Errorf("%w: %q", domain.ErrLocationNotFound, location)
	}

	// Nominatim returns coordinates as strings
	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	coords := domain.Coordinates{Lat: lat, Lon: lon}
	if c.geocodeCache != nil {
		if err := c.geocodeCache.Set(ctx, cacheKey, coords, geocodeCacheTTL); err != nil {
			log.Printf("[OSM] Failed to cache geocode for %q: %v", location, err)
		}
	}
	return coords, nil
}

// queryOverpass lists restaurant nodes and ways around the center,
// optionally filtered by a case-insensitive cuisine match
func (c *Client) queryOverpass(ctx context.Context, center domain.Coordinates, radius int, cuisine string, max int) ([]element, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	q := buildOverpassQuery(center, radius, cuisine, max*overfetchFactor)

	form := url.Values{}
	form.Add("data", q)

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.OverpassURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Source: domain.SourceOSM, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &domain.ProviderError{
			Source:     domain.SourceOSM,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var overpassResp overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&overpassResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return overpassResp.Elements, nil
}

// buildOverpassQuery composes an Overpass QL query for restaurants
// around the center point
func buildOverpassQuery(center domain.Coordinates, radius int, cuisine string, limit int) string {
	cuisineFilter := ""
	if cuisine != "" {
		escaped := strings.ReplaceAll(cuisine, `"`, `\"`)
		cuisineFilter = fmt.Sprintf(`["cuisine"~"%s",i]`, escaped)
	}

	return fmt.Sprintf(`[out:json][timeout:25];
(
  node(around:%d,%f,%f)["amenity"="restaurant"]%s;
  way(around:%d,%f,%f)["amenity"="restaurant"]%s;
);
out center tags %d;`,
		radius, center.Lat, center.Lon, cuisineFilter,
		radius, center.Lat, center.Lon, cuisineFilter,
		limit)
}
