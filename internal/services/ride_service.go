package services

import (
	"context"
	"errors"

	"ridehail/internal/domain/entities"
	"ridehail/internal/recommend"
	"ridehail/internal/staticmap"
	"ridehail/pkg/utils"
)

var ErrInvalidDestination = errors.New("destination unavailable")

// RideService quotes a trip to the destination the rider picked. Quotes are
// not stored; the ID only correlates the quote with client-side logs.
type RideService struct {
	estimator recommend.Estimator
	maps      *staticmap.Builder
}

// NewRideService creates a RideService. maps may be nil to omit map URLs.
func NewRideService(estimator recommend.Estimator, maps *staticmap.Builder) *RideService {
	return &RideService{
		estimator: estimator,
		maps:      maps,
	}
}

type FareEstimateRequest struct {
	Source      entities.Location `json:"source"`
	Destination entities.Location `json:"destination"`
}

type FareEstimateResponse struct {
	QuoteID     string            `json:"quote_id"`
	Source      entities.Location `json:"source"`
	Destination entities.Location `json:"destination"`
	entities.TripEstimate
	TimeLabel  string `json:"time_label"`
	PriceLabel string `json:"price_label"`
	MapURL     string `json:"map_url,omitempty"`
}

// CreateFareEstimate quotes the trip from req.Source to req.Destination with
// the same estimator the recommender ranks with.
func (s *RideService) CreateFareEstimate(ctx context.Context, req FareEstimateRequest) (*FareEstimateResponse, error) {
	if !req.Source.IsValid() {
		return nil, recommend.ErrInvalidLocation
	}
	if !req.Destination.IsValid() {
		return nil, ErrInvalidDestination
	}

	trip := s.estimator.Quote(req.Source, req.Destination)
	resp := &FareEstimateResponse{
		QuoteID:      utils.GenerateID(),
		Source:       req.Source,
		Destination:  req.Destination,
		TripEstimate: trip,
		TimeLabel:    trip.TimeLabel(),
		PriceLabel:   trip.PriceLabel(),
	}

	if s.maps != nil {
		dest := req.Destination
		if mapURL, err := s.maps.URL(req.Source, &dest); err == nil {
			resp.MapURL = mapURL
		}
	}

	return resp, nil
}
