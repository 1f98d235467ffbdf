package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tablescout/backend/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Google   GoogleConfig
	Yelp     YelpConfig
	OSM      OSMConfig
	Pipeline PipelineConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GoogleConfig holds Google Places API configuration
type GoogleConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// YelpConfig holds Yelp Fusion API configuration
type YelpConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// OSMConfig holds Nominatim/Overpass configuration. UserAgent must
// carry a reachable contact per the Nominatim usage policy.
type OSMConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	NominatimURL string        `mapstructure:"nominatim_url"`
	OverpassURL  string        `mapstructure:"overpass_url"`
	UserAgent    string        `mapstructure:"user_agent"`
	Radius       int           `mapstructure:"radius"`
	MaxResults   int           `mapstructure:"max_results"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// PipelineConfig holds recommendation pipeline tuning
type PipelineConfig struct {
	DefaultLocation string        `mapstructure:"default_location"`
	EstimateCap     int           `mapstructure:"estimate_cap"`
	ResultLimit     int           `mapstructure:"result_limit"`
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tablescout/")

	// Environment variable settings
	v.SetEnvPrefix("TABLESCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Provider defaults. OSM needs no credential, so it is the only
	// provider enabled out of the box.
	v.SetDefault("google.enabled", false)
	v.SetDefault("google.api_key", "")
	v.SetDefault("google.base_url", "https://maps.googleapis.com")
	v.SetDefault("yelp.enabled", false)
	v.SetDefault("yelp.api_key", "")
	v.SetDefault("yelp.base_url", "https://api.yelp.com")
	v.SetDefault("osm.enabled", true)
	v.SetDefault("osm.nominatim_url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("osm.overpass_url", "https://overpass-api.de/api/interpreter")
	v.SetDefault("osm.user_agent", "tablescout/1.0 (contact: ops@tablescout.app)")
	v.SetDefault("osm.radius", 3000)
	v.SetDefault("osm.max_results", 5)
	v.SetDefault("osm.timeout", "30s")

	// Pipeline defaults
	v.SetDefault("pipeline.default_location", "Tel Aviv")
	v.SetDefault("pipeline.estimate_cap", 20)
	v.SetDefault("pipeline.result_limit", 10)
	v.SetDefault("pipeline.provider_timeout", "15s")
}

// validate validates the configuration. A provider enabled without its
// credential is fatal at load time, never at request time.
func validate(config *Config) error {
	if config.Google.Enabled && config.Google.APIKey == "" {
		return fmt.Errorf("%w: Google Places API key is required (set TABLESCOUT_GOOGLE_API_KEY)", domain.ErrMissingCredentials)
	}

	if config.Yelp.Enabled && config.Yelp.APIKey == "" {
		return fmt.Errorf("%w: Yelp API key is required (set TABLESCOUT_YELP_API_KEY)", domain.ErrMissingCredentials)
	}

	if !config.Google.Enabled && !config.Yelp.Enabled && !config.OSM.Enabled {
		return fmt.Errorf("at least one place provider must be enabled")
	}

	if config.OSM.Enabled && config.OSM.UserAgent == "" {
		return fmt.Errorf("OSM user agent with contact details is required (set TABLESCOUT_OSM_USER_AGENT)")
	}

	return nil
}
