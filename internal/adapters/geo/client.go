package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"eventease/internal/domain"
)

// Client calls the geocoding and forecast APIs. Geocoding results are
// memoized per address for Config.CacheTTLMinutes to stay under the
// provider's rate limit; the cache is owned by the client instance, not
// package state.
type Client struct {
	http   *http.Client
	cfg    Config
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	addresses map[string]cachedCoords
}

type cachedCoords struct {
	coords domain.Coordinates
	at     time.Time
}

// NewClient returns a geocoding/forecast client. A nil httpClient falls
// back to http.DefaultClient.
func NewClient(httpClient *http.Client, cfg Config, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:      httpClient,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		addresses: make(map[string]cachedCoords),
	}
}

var (
	_ domain.Geocoder         = (*Client)(nil)
	_ domain.ForecastProvider = (*Client)(nil)
)

// Geocode resolves a free-text address to its first match. Matches inside
// the preferred bounding box win over earlier matches outside it. A bare
// city name from the known-cities list is suffixed with the configured
// country to disambiguate. Returns (nil, nil) when nothing matches.
func (c *Client) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	search := strings.TrimSpace(address)
	if search == "" {
		return nil, nil
	}

	// The cache is keyed by the caller's address, not the suffixed one.
	c.mu.Lock()
	if cached, ok := c.addresses[address]; ok && c.now().Sub(cached.at) < c.cacheTTL() {
		c.mu.Unlock()
		coords := cached.coords
		return &coords, nil
	}
	c.mu.Unlock()

	lower := strings.ToLower(search)
	if !strings.Contains(lower, strings.ToLower(c.cfg.CountrySuffix)) && !strings.Contains(search, ",") {
		for _, city := range c.cfg.KnownCities {
			if lower == city {
				search = search + ", " + c.cfg.CountrySuffix
				break
			}
		}
	}

	q := url.Values{}
	q.Set("name", search)
	q.Set("count", "5")
	q.Set("language", c.cfg.Language)
	reqURL := c.cfg.GeocodingURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoding request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch geocoding results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding api returned status: %d", resp.StatusCode)
	}

	var data struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(data.Results) == 0 {
		c.logger.Warn("address not found", "address", address)
		return nil, nil
	}

	pick := data.Results[0]
	for _, r := range data.Results {
		if c.cfg.PreferredBox.Contains(r.Latitude, r.Longitude) {
			pick = r
			break
		}
	}

	coords := domain.Coordinates{Latitude: pick.Latitude, Longitude: pick.Longitude}
	c.mu.Lock()
	c.addresses[address] = cachedCoords{coords: coords, at: c.now()}
	c.mu.Unlock()
	return &coords, nil
}

// ForecastForDate looks up the daily forecast for a coordinate and
// calendar date. Dates outside the provider window are skipped without a
// network call and yield (nil, nil).
func (c *Client) ForecastForDate(ctx context.Context, coords domain.Coordinates, date time.Time) (*domain.WeatherData, error) {
	now := c.now()
	if date.After(now.AddDate(0, 0, c.cfg.FutureWindowDays)) {
		c.logger.Warn("date too far in the future for forecast", "date", date.Format("2006-01-02"))
		return nil, nil
	}
	if date.Before(now.AddDate(0, 0, -c.cfg.PastWindowDays)) {
		c.logger.Warn("date too old for historical weather", "date", date.Format("2006-01-02"))
		return nil, nil
	}

	day := date.Format("2006-01-02")
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%g", coords.Latitude))
	q.Set("longitude", fmt.Sprintf("%g", coords.Longitude))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode,precipitation_probability_max,windspeed_10m_max")
	q.Set("timezone", c.cfg.Timezone)
	q.Set("start_date", day)
	q.Set("end_date", day)
	reqURL := c.cfg.ForecastURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create forecast request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast api returned status: %d", resp.StatusCode)
	}

	var data struct {
		Daily struct {
			TemperatureMax []float64 `json:"temperature_2m_max"`
			TemperatureMin []float64 `json:"temperature_2m_min"`
			WeatherCode    []int     `json:"weathercode"`
			Precipitation  []float64 `json:"precipitation_probability_max"`
			WindSpeed      []float64 `json:"windspeed_10m_max"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}
	d := data.Daily
	if len(d.TemperatureMax) == 0 || len(d.TemperatureMin) == 0 || len(d.WeatherCode) == 0 {
		return nil, nil
	}

	avgTemp := math.Round((math.Round(d.TemperatureMax[0]) + math.Round(d.TemperatureMin[0])) / 2)
	w := &domain.WeatherData{
		Temperature: int(avgTemp),
		Description: weatherDescription(d.WeatherCode[0]),
	}
	if len(d.WindSpeed) > 0 {
		w.WindSpeed = int(math.Round(d.WindSpeed[0]))
	}
	if len(d.Precipitation) > 0 {
		w.PrecipitationProbability = int(d.Precipitation[0])
	}
	return w, nil
}

// WeatherForDate geocodes a location then fetches its forecast. An empty
// location defaults to Paris. Either step resolving to nothing yields
// (nil, nil) so callers can hide the widget.
func (c *Client) WeatherForDate(ctx context.Context, date time.Time, location string) (*domain.WeatherData, error) {
	if strings.TrimSpace(location) == "" {
		location = "Paris"
	}
	coords, err := c.Geocode(ctx, location)
	if err != nil || coords == nil {
		return nil, err
	}
	return c.ForecastForDate(ctx, *coords, date)
}

func (c *Client) cacheTTL() time.Duration {
	return time.Duration(c.cfg.CacheTTLMinutes) * time.Minute
}

// weatherDescription maps WMO weather codes to display strings.
func weatherDescription(code int) string {
	descriptions := map[int]string{
		0:  "Ciel dégagé",
		1:  "Plutôt dégagé",
		2:  "Partiellement nuageux",
		3:  "Couvert",
		45: "Brouillard",
		48: "Brouillard givrant",
		51: "Bruine légère",
		53: "Bruine modérée",
		55: "Bruine dense",
		61: "Pluie légère",
		63: "Pluie modérée",
		65: "Pluie forte",
		71: "Neige légère",
		73: "Neige modérée",
		75: "Neige forte",
		80: "Averses légères",
		81: "Averses modérées",
		82: "Averses violentes",
		95: "Orage",
		96: "Orage avec grêle",
	}
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Temps variable"
}
