package domain

import "time"

// Source identifies which external provider a place came from
type Source string

const (
	SourceGooglePlaces Source = "google_places"
	SourceYelp         Source = "yelp"
	SourceOSM          Source = "osm"
)

// PlaceQuery is the immutable input to one pipeline run
type PlaceQuery struct {
	Location      string    `json:"location"`
	Cuisine       string    `json:"cuisine,omitempty"`
	RequestedTime time.Time `json:"requestedTime"`
	RadiusMeters  int       `json:"radius,omitempty"`
	MaxResults    int       `json:"max,omitempty"`
}

// Coordinates is a WGS84 lat/lon pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is the normalized record every provider maps into.
// Rating, PriceLevel and Coords are nil when the source doesn't carry them.
type Place struct {
	Name       string       `json:"name"`
	Address    string       `json:"address"`
	Rating     *float64     `json:"rating,omitempty"`     // 0-5
	PriceLevel *int         `json:"priceLevel,omitempty"` // 1-4
	Coords     *Coordinates `json:"coordinates,omitempty"`
	SourceID   string       `json:"sourceId"`
	Source     Source       `json:"source"`
}

// AvailabilityEstimate is a heuristic guess at how easy it is to get a
// table at the requested time. Recomputed per query, never persisted.
type AvailabilityEstimate struct {
	AvailabilityScore float64  `json:"availabilityScore"` // 0-1
	Confidence        float64  `json:"confidence"`        // 0-1
	Recommendation    string   `json:"recommendationText"`
	AlternativeTimes  []string `json:"alternativeTimes"`
}

// Recommendation is the final ranked unit emitted to the caller
type Recommendation struct {
	Place
	Availability AvailabilityEstimate `json:"availability"`
	MatchScore   float64              `json:"matchScore"` // 0-1
	MapLink      string               `json:"mapLink"`
}

// RecommendationResult is the shaped output of one pipeline run.
// ProviderCounts holds raw per-source result counts before dedup so the
// caller can tell "no provider worked" from "nothing matched".
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	RequestedTime   time.Time        `json:"requestedTime"`
	Location        string           `json:"location"`
	ProviderCounts  map[Source]int   `json:"providerCounts"`
	ProviderErrors  []error          `json:"-"`
}
