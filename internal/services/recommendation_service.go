package services

import (
	"context"
	"log"

	"github.com/paulmach/orb"
	"ridehail/internal/catalog"
	"ridehail/internal/config"
	"ridehail/internal/domain/entities"
	"ridehail/internal/geocode"
	"ridehail/internal/recommend"
	"ridehail/pkg/utils"
)

// NewEstimator builds the trip estimator from configuration.
func NewEstimator(cfg *config.Config) recommend.Estimator {
	return recommend.Estimator{
		AverageSpeedKmH:   cfg.Recommend.AverageSpeedKmH,
		TimeSpreadMinutes: cfg.Recommend.TimeSpreadMinutes,
		MinMinutes:        cfg.Recommend.MinMinutes,
		BaseFare:          cfg.Pricing.BaseFare,
		PerKmRate:         cfg.Pricing.PerKmRate,
		FareStep:          cfg.Pricing.RoundingStep,
		HighMarkup:        cfg.Pricing.HighMarkup,
	}
}

// NewRecommender builds a Recommender from configuration.
func NewRecommender(cfg *config.Config) *recommend.Recommender {
	window := recommend.Window{
		MinMinutes: cfg.Recommend.WindowMinMinutes,
		MaxMinutes: cfg.Recommend.WindowMaxMinutes,
		Limit:      cfg.Recommend.MaxResults,
	}
	return recommend.NewRecommender(NewEstimator(cfg), window, cfg.Recommend.DefaultRadiusKm)
}

type RecommendationService struct {
	catalog     *catalog.Catalog
	recommender *recommend.Recommender
	resolver    geocode.Resolver
}

// NewRecommendationService wires the catalog snapshot to a recommender.
// resolver may be nil, in which case responses carry no address.
func NewRecommendationService(cat *catalog.Catalog, recommender *recommend.Recommender, resolver geocode.Resolver) *RecommendationService {
	return &RecommendationService{
		catalog:     cat,
		recommender: recommender,
		resolver:    resolver,
	}
}

type NearbyRequest struct {
	Location entities.Location
	Options  recommend.Options
}

// DestinationView is a ranked destination plus its display labels.
type DestinationView struct {
	entities.RankedDestination
	TimeLabel  string `json:"time_label"`
	PriceLabel string `json:"price_label"`
}

type CategoryGroupView struct {
	Category     entities.Category `json:"category"`
	Label        string            `json:"label"`
	Destinations []DestinationView `json:"destinations"`
}

// NearbyResponse holds Destinations for the time policy and Groups for the
// category policy.
type NearbyResponse struct {
	Policy       recommend.Policy    `json:"policy"`
	Location     entities.Location   `json:"location"`
	Address      string              `json:"address,omitempty"`
	Destinations []DestinationView   `json:"destinations,omitempty"`
	Groups       []CategoryGroupView `json:"groups,omitempty"`
}

// Nearby ranks the catalog for the rider. Address lookup failures never fail
// the request; the address degrades to geocode.UnknownLocation.
func (s *RecommendationService) Nearby(ctx context.Context, req NearbyRequest) (*NearbyResponse, error) {
	result, err := s.recommender.Recommend(req.Location, s.catalog.POIs(), req.Options)
	if err != nil {
		return nil, err
	}

	resp := &NearbyResponse{
		Policy:   result.Policy,
		Location: req.Location,
		Address:  s.address(ctx, req.Location),
	}

	count := 0
	switch result.Policy {
	case recommend.PolicyCategory:
		for _, g := range result.Buckets.Groups() {
			resp.Groups = append(resp.Groups, CategoryGroupView{
				Category:     g.Category,
				Label:        g.Category.Label(),
				Destinations: toViews(g.Destinations),
			})
			count += len(g.Destinations)
		}
	default:
		resp.Destinations = toViews(result.Destinations)
		count = len(resp.Destinations)
	}

	log.Printf("[RECOMMEND] %s policy=%s lat=%.4f lng=%.4f results=%d", utils.LogFields(ctx), result.Policy, req.Location.Latitude, req.Location.Longitude, count)
	return resp, nil
}

// Catalog lists every destination grouped by category.
func (s *RecommendationService) Catalog() []catalog.Group {
	return s.catalog.Groups()
}

// CatalogBound returns the bounding box of the catalog. ok is false when the
// catalog is empty.
func (s *RecommendationService) CatalogBound() (bound orb.Bound, ok bool) {
	if s.catalog.Len() == 0 {
		return orb.Bound{}, false
	}
	return s.catalog.Bound(), true
}

func (s *RecommendationService) address(ctx context.Context, loc entities.Location) string {
	if s.resolver == nil {
		return ""
	}
	label, err := s.resolver.Resolve(ctx, loc)
	if err != nil {
		log.Printf("[GEOCODE] %s resolve %.4f,%.4f failed: %v", utils.LogFields(ctx), loc.Latitude, loc.Longitude, err)
		return geocode.UnknownLocation
	}
	return label
}

func toViews(dests []entities.RankedDestination) []DestinationView {
	views := make([]DestinationView, len(dests))
	for i, d := range dests {
		views[i] = DestinationView{
			RankedDestination: d,
			TimeLabel:         d.TimeLabel(),
			PriceLabel:        d.PriceLabel(),
		}
	}
	return views
}
