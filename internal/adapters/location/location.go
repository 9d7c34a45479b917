package location

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"eventease/internal/domain"
)

const cacheDuration = 5 * time.Minute

// defaultAddress is shown when reverse geocoding fails.
const defaultAddress = "Localisation actuelle"

// Provider is the device-location collaborator: permission prompt, raw
// position, and reverse geocoding. The real implementation is platform
// glue; tests use a fake.
type Provider interface {
	RequestPermission(ctx context.Context) (granted bool, err error)
	CurrentPosition(ctx context.Context) (domain.Coordinates, error)
	ReverseGeocode(ctx context.Context, c domain.Coordinates) (locality, country string, err error)
}

// Service resolves the current device location with a 5-minute cache.
// The cache belongs to the Service instance and uses an injected clock,
// so expiry is testable.
type Service struct {
	provider Provider
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	cached *cacheEntry
}

type cacheEntry struct {
	data domain.LocationData
	at   time.Time
}

// NewService wraps a device provider.
func NewService(provider Provider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger, now: time.Now}
}

// CurrentLocation returns the device position with a display address.
// Permission denial returns domain.ErrPermissionDenied and the flow
// aborts. Within the cache window the previously resolved location is
// returned without a reverse-geocode call.
func (s *Service) CurrentLocation(ctx context.Context) (*domain.LocationData, error) {
	granted, err := s.provider.RequestPermission(ctx)
	if err != nil {
		return nil, fmt.Errorf("request location permission: %w", err)
	}
	if !granted {
		return nil, domain.ErrPermissionDenied
	}

	position, err := s.provider.CurrentPosition(ctx)
	if err != nil {
		return nil, fmt.Errorf("get current position: %w", err)
	}

	now := s.now()
	s.mu.Lock()
	if s.cached != nil && now.Sub(s.cached.at) < cacheDuration {
		data := s.cached.data
		s.mu.Unlock()
		return &data, nil
	}
	s.mu.Unlock()

	// Reverse geocoding is best-effort; a failure falls back to a
	// placeholder address rather than failing the whole lookup.
	address := defaultAddress
	locality, country, err := s.provider.ReverseGeocode(ctx, position)
	if err != nil {
		s.logger.Warn("reverse geocoding failed, using default address", "error", err)
	} else {
		address = strings.TrimSpace(strings.Trim(locality+", "+country, ", "))
		if address == "" {
			address = defaultAddress
		}
	}

	data := domain.LocationData{
		Latitude:  position.Latitude,
		Longitude: position.Longitude,
		Address:   address,
	}
	s.mu.Lock()
	s.cached = &cacheEntry{data: data, at: now}
	s.mu.Unlock()
	return &data, nil
}

// ClearCache drops the cached location.
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Distance returns the great-circle distance between two points in
// kilometers (haversine).
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// FormatDistance renders a distance for display: meters under one
// kilometer, otherwise kilometers with one decimal.
func FormatDistance(distanceKm float64) string {
	if distanceKm < 1 {
		return fmt.Sprintf("%d m", int(math.Round(distanceKm*1000)))
	}
	return fmt.Sprintf("%.1f km", distanceKm)
}
