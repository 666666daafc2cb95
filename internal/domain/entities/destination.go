package entities

import "fmt"

// TripEstimate is the derived distance, duration and fare quote between two
// points. MinutesLow <= MinutesHigh and PriceLow <= PriceHigh always hold.
type TripEstimate struct {
	DistanceKm       float64 `json:"distance_km"`
	EstimatedMinutes float64 `json:"estimated_minutes"`
	MinutesLow       int     `json:"minutes_low"`
	MinutesHigh      int     `json:"minutes_high"`
	PriceLow         int     `json:"price_low"`
	PriceHigh        int     `json:"price_high"`
}

// TimeLabel renders the duration range the way the rider app shows it,
// e.g. "16-26分鐘".
func (e TripEstimate) TimeLabel() string {
	return fmt.Sprintf("%d-%d分鐘", e.MinutesLow, e.MinutesHigh)
}

// PriceLabel renders the fare range, e.g. "NT$240-290".
func (e TripEstimate) PriceLabel() string {
	return fmt.Sprintf("NT$%d-%d", e.PriceLow, e.PriceHigh)
}

// RankedDestination is a POI annotated with its estimate relative to a rider.
// It is computed per request and never stored.
//
// Go Learning Note — Struct Embedding:
// Embedding POI and TripEstimate promotes their fields, so callers write
// d.Name and d.DistanceKm directly. encoding/json also flattens embedded
// structs, producing a single JSON object with both sets of fields.
type RankedDestination struct {
	POI
	TripEstimate
}
