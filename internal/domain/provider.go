package domain

import (
	"context"
	"time"
)

// PlaceProvider is the capability every external place source implements.
// Search returns normalized places; records without a usable name are
// dropped during mapping, not surfaced as errors.
type PlaceProvider interface {
	Source() Source
	Search(ctx context.Context, query PlaceQuery) ([]Place, error)
}

// CacheRepository defines the interface for caching operations.
// The pipeline never caches results; only the OSM adapter uses this to
// memoize geocoded coordinates per Nominatim usage policy.
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
