package services

import (
	"context"
	"errors"
	"log"

	"ridehail/internal/domain/entities"
	"ridehail/internal/geocode"
	"ridehail/internal/recommend"
	"ridehail/internal/staticmap"
	"ridehail/pkg/utils"
)

var (
	ErrGeocodingDisabled = errors.New("reverse geocoding is not configured")
	ErrMapsDisabled      = errors.New("static maps are not configured")
)

// LocationService serves the rider's current-position helpers: the display
// address and the map image.
type LocationService struct {
	resolver geocode.Resolver
	maps     *staticmap.Builder
}

// NewLocationService creates a LocationService. Either dependency may be nil
// when its API key is not configured.
func NewLocationService(resolver geocode.Resolver, maps *staticmap.Builder) *LocationService {
	return &LocationService{
		resolver: resolver,
		maps:     maps,
	}
}

type AddressResponse struct {
	Location entities.Location `json:"location"`
	Address  string            `json:"address"`
	Resolved bool              `json:"resolved"`
}

// Address reverse-geocodes loc. Upstream failures are reported as an
// unresolved UnknownLocation label rather than an error.
func (s *LocationService) Address(ctx context.Context, loc entities.Location) (*AddressResponse, error) {
	if !loc.IsValid() {
		return nil, recommend.ErrInvalidLocation
	}
	if s.resolver == nil {
		return nil, ErrGeocodingDisabled
	}

	resp := &AddressResponse{Location: loc, Address: geocode.UnknownLocation}
	label, err := s.resolver.Resolve(ctx, loc)
	if err != nil {
		log.Printf("[GEOCODE] %s resolve %.4f,%.4f failed: %v", utils.LogFields(ctx), loc.Latitude, loc.Longitude, err)
		return resp, nil
	}

	resp.Address = label
	resp.Resolved = true
	return resp, nil
}

// MapURL returns the static map for the rider, with the route to dest when
// dest is non-nil and valid.
func (s *LocationService) MapURL(user entities.Location, dest *entities.Location) (string, error) {
	if s.maps == nil {
		return "", ErrMapsDisabled
	}
	return s.maps.URL(user, dest)
}
