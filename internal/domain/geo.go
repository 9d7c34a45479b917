package domain

import (
	"context"
	"errors"
	"time"
)

// ErrPermissionDenied is returned when the user refuses a device
// permission (location, photo library). Flows abort with a user-facing
// message; nothing is retried.
var ErrPermissionDenied = errors.New("permission denied")

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationData is the device position with a human-readable locality.
type LocationData struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// WeatherData is a one-day forecast summary. Humidity is always zero: the
// forecast provider does not expose it.
type WeatherData struct {
	Temperature              int
	Description              string
	Humidity                 int
	WindSpeed                int
	PrecipitationProbability int
}

// Geocoder resolves a free-text address to a coordinate. A nil result
// with a nil error means the address could not be resolved.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

// ForecastProvider looks up the forecast for a coordinate and calendar
// date. Dates outside the provider's window yield (nil, nil).
type ForecastProvider interface {
	ForecastForDate(ctx context.Context, c Coordinates, date time.Time) (*WeatherData, error)
}
