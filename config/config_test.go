package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/tablescout/backend/internal/domain"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("TABLESCOUT_SERVER_PORT")
		os.Unsetenv("TABLESCOUT_SERVER_ENVIRONMENT")
		os.Unsetenv("TABLESCOUT_GOOGLE_ENABLED")
		os.Unsetenv("TABLESCOUT_GOOGLE_API_KEY")
		os.Unsetenv("TABLESCOUT_GOOGLE_BASE_URL")
		os.Unsetenv("TABLESCOUT_YELP_ENABLED")
		os.Unsetenv("TABLESCOUT_YELP_API_KEY")
		os.Unsetenv("TABLESCOUT_OSM_ENABLED")
		os.Unsetenv("TABLESCOUT_OSM_USER_AGENT")
		os.Unsetenv("TABLESCOUT_OSM_RADIUS")
		os.Unsetenv("TABLESCOUT_PIPELINE_DEFAULT_LOCATION")
		os.Unsetenv("TABLESCOUT_PIPELINE_RESULT_LIMIT")
		os.Unsetenv("TABLESCOUT_PIPELINE_PROVIDER_TIMEOUT")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Google.Enabled {
			t.Error("Google.Enabled = true, want false by default")
		}
		if cfg.Yelp.Enabled {
			t.Error("Yelp.Enabled = true, want false by default")
		}
		if !cfg.OSM.Enabled {
			t.Error("OSM.Enabled = false, want true by default")
		}
		if cfg.OSM.NominatimURL != "https://nominatim.openstreetmap.org/search" {
			t.Errorf("OSM.NominatimURL = %s, want nominatim.openstreetmap.org", cfg.OSM.NominatimURL)
		}
		if cfg.OSM.Radius != 3000 {
			t.Errorf("OSM.Radius = %d, want 3000", cfg.OSM.Radius)
		}
		if cfg.OSM.MaxResults != 5 {
			t.Errorf("OSM.MaxResults = %d, want 5", cfg.OSM.MaxResults)
		}
		if cfg.Pipeline.DefaultLocation != "Tel Aviv" {
			t.Errorf("Pipeline.DefaultLocation = %s, want Tel Aviv", cfg.Pipeline.DefaultLocation)
		}
		if cfg.Pipeline.EstimateCap != 20 {
			t.Errorf("Pipeline.EstimateCap = %d, want 20", cfg.Pipeline.EstimateCap)
		}
		if cfg.Pipeline.ResultLimit != 10 {
			t.Errorf("Pipeline.ResultLimit = %d, want 10", cfg.Pipeline.ResultLimit)
		}
		if cfg.Pipeline.ProviderTimeout != 15*time.Second {
			t.Errorf("Pipeline.ProviderTimeout = %v, want 15s", cfg.Pipeline.ProviderTimeout)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("TABLESCOUT_SERVER_PORT", "9090")
		os.Setenv("TABLESCOUT_SERVER_ENVIRONMENT", "production")
		os.Setenv("TABLESCOUT_GOOGLE_ENABLED", "true")
		os.Setenv("TABLESCOUT_GOOGLE_API_KEY", "custom-api-key")
		os.Setenv("TABLESCOUT_GOOGLE_BASE_URL", "https://custom.api.com")
		os.Setenv("TABLESCOUT_OSM_RADIUS", "5000")
		os.Setenv("TABLESCOUT_PIPELINE_DEFAULT_LOCATION", "Haifa")
		os.Setenv("TABLESCOUT_PIPELINE_RESULT_LIMIT", "5")
		os.Setenv("TABLESCOUT_PIPELINE_PROVIDER_TIMEOUT", "5s")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if !cfg.Google.Enabled {
			t.Error("Google.Enabled = false, want true")
		}
		if cfg.Google.APIKey != "custom-api-key" {
			t.Errorf("Google.APIKey = %s, want custom-api-key", cfg.Google.APIKey)
		}
		if cfg.Google.BaseURL != "https://custom.api.com" {
			t.Errorf("Google.BaseURL = %s, want https://custom.api.com", cfg.Google.BaseURL)
		}
		if cfg.OSM.Radius != 5000 {
			t.Errorf("OSM.Radius = %d, want 5000", cfg.OSM.Radius)
		}
		if cfg.Pipeline.DefaultLocation != "Haifa" {
			t.Errorf("Pipeline.DefaultLocation = %s, want Haifa", cfg.Pipeline.DefaultLocation)
		}
		if cfg.Pipeline.ResultLimit != 5 {
			t.Errorf("Pipeline.ResultLimit = %d, want 5", cfg.Pipeline.ResultLimit)
		}
		if cfg.Pipeline.ProviderTimeout != 5*time.Second {
			t.Errorf("Pipeline.ProviderTimeout = %v, want 5s", cfg.Pipeline.ProviderTimeout)
		}
	})

	t.Run("fails validation when Google enabled without API key", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("TABLESCOUT_GOOGLE_ENABLED", "true")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for missing API key")
		}
		if !errors.Is(err, domain.ErrMissingCredentials) {
			t.Errorf("Load() error = %v, want ErrMissingCredentials", err)
		}
	})

	t.Run("fails validation when Yelp enabled without API key", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("TABLESCOUT_YELP_ENABLED", "true")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for missing API key")
		}
		if !errors.Is(err, domain.ErrMissingCredentials) {
			t.Errorf("Load() error = %v, want ErrMissingCredentials", err)
		}
	})

	t.Run("fails validation when every provider is disabled", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("TABLESCOUT_OSM_ENABLED", "false")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error when no provider is enabled")
		}
	})
}
