package geo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BoundingBox is a latitude/longitude rectangle.
type BoundingBox struct {
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
	MinLon float64 `yaml:"min_lon"`
	MaxLon float64 `yaml:"max_lon"`
}

// Contains reports whether the point lies inside the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Config tunes the geocoding/forecast client. All fields have working
// defaults; an optional YAML file can override them.
type Config struct {
	// GeocodingURL is the forward-geocoding search endpoint.
	GeocodingURL string `yaml:"geocoding_url"`
	// ForecastURL is the daily-forecast endpoint.
	ForecastURL string `yaml:"forecast_url"`
	// Language is passed to the geocoder for localized place names.
	Language string `yaml:"language"`
	// Timezone is the IANA zone the forecast is requested in.
	Timezone string `yaml:"timezone"`
	// CacheTTLMinutes bounds the freshness of memoized geocoding results.
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`
	// PreferredBox biases ambiguous geocoding matches toward a region.
	PreferredBox BoundingBox `yaml:"preferred_box"`
	// CountrySuffix is appended to bare city names found in KnownCities.
	CountrySuffix string `yaml:"country_suffix"`
	// KnownCities lists lowercase city names eligible for suffixing.
	KnownCities []string `yaml:"known_cities"`
	// PastWindowDays and FutureWindowDays bound the dates the forecast
	// provider can answer for; outside the window the lookup is skipped.
	PastWindowDays   int `yaml:"past_window_days"`
	FutureWindowDays int `yaml:"future_window_days"`
}

// DefaultConfig returns the built-in Open-Meteo configuration with a
// European preference box.
func DefaultConfig() Config {
	return Config{
		GeocodingURL:    "https://geocoding-api.open-meteo.com/v1/search",
		ForecastURL:     "https://api.open-meteo.com/v1/forecast",
		Language:        "fr",
		Timezone:        "Europe/Paris",
		CacheTTLMinutes: 5,
		PreferredBox:    BoundingBox{MinLat: 35, MaxLat: 71, MinLon: -25, MaxLon: 45},
		CountrySuffix:   "France",
		KnownCities: []string{
			"paris", "lyon", "marseille", "toulouse", "nice", "nantes",
			"strasbourg", "montpellier", "bordeaux", "lille", "rennes",
			"reims", "toulon", "saint-étienne", "le havre", "grenoble",
			"dijon", "angers", "villeurbanne", "clermont-ferrand",
		},
		PastWindowDays:   90,
		FutureWindowDays: 16,
	}
}

// LoadConfig reads a YAML override file on top of the defaults. An empty
// path or a missing file yields the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read geo config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse geo config: %w", err)
	}
	return cfg, nil
}
