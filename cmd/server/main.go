package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tablescout/backend/config"
	httpDelivery "github.com/tablescout/backend/internal/delivery/http"
	"github.com/tablescout/backend/internal/domain"
	"github.com/tablescout/backend/internal/infrastructure/cache"
	"github.com/tablescout/backend/internal/infrastructure/googleplaces"
	"github.com/tablescout/backend/internal/infrastructure/osm"
	"github.com/tablescout/backend/internal/infrastructure/yelp"
	"github.com/tablescout/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting TableScout Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Provider clients are constructed once per process and reused
	// across requests; their order here is the dedup priority order.
	var providers []domain.PlaceProvider

	if cfg.Google.Enabled {
		providers = append(providers, googleplaces.NewClient(cfg.Google.APIKey, cfg.Google.BaseURL))
		log.Printf("Google Places provider enabled: %s", cfg.Google.BaseURL)
	}

	if cfg.Yelp.Enabled {
		providers = append(providers, yelp.NewClient(cfg.Yelp.APIKey, cfg.Yelp.BaseURL))
		log.Printf("Yelp provider enabled: %s", cfg.Yelp.BaseURL)
	}

	if cfg.OSM.Enabled {
		geocodeCache := cache.NewMemoryCache()
		providers = append(providers, osm.NewClient(osm.Config{
			NominatimURL: cfg.OSM.NominatimURL,
			OverpassURL:  cfg.OSM.OverpassURL,
			UserAgent:    cfg.OSM.UserAgent,
			Radius:       cfg.OSM.Radius,
			MaxResults:   cfg.OSM.MaxResults,
			Timeout:      cfg.OSM.Timeout,
		}, geocodeCache))
		log.Printf("OSM provider enabled: %s", cfg.OSM.NominatimURL)
	}

	// Initialize usecase layer
	recommendationService := usecase.NewRecommendationService(
		providers,
		usecase.RecommendationConfig{
			EstimateCap:     cfg.Pipeline.EstimateCap,
			ResultLimit:     cfg.Pipeline.ResultLimit,
			ProviderTimeout: cfg.Pipeline.ProviderTimeout,
		},
	)

	log.Printf("Pipeline: providers=%d, cap=%d, limit=%d",
		len(providers), cfg.Pipeline.EstimateCap, cfg.Pipeline.ResultLimit)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommendationService, cfg.Pipeline.DefaultLocation)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
