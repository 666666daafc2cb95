package recommend

import (
	"math"

	"ridehail/internal/domain/entities"
)

// Estimator turns a distance into travel-time and fare quotes. The zero value
// is not useful; start from DefaultEstimator and override fields from config.
//
// Fares are display quotes only: no surge, no tolls, no time component.
type Estimator struct {
	AverageSpeedKmH   float64 // assumed door-to-door speed
	TimeSpreadMinutes float64 // +/- applied around the point estimate
	MinMinutes        int     // floor for the low end of the time range

	BaseFare   float64
	PerKmRate  float64
	FareStep   float64 // fares are rounded to a multiple of this
	HighMarkup float64 // high fare = low fare * HighMarkup, rounded again
}

// DefaultEstimator returns the city-traffic defaults: 40 km/h, a ±5 minute
// window floored at 5 minutes, and a 100 + 10/km fare rounded to 10.
func DefaultEstimator() Estimator {
	return Estimator{
		AverageSpeedKmH:   40,
		TimeSpreadMinutes: 5,
		MinMinutes:        5,
		BaseFare:          100,
		PerKmRate:         10,
		FareStep:          10,
		HighMarkup:        1.2,
	}
}

// Minutes returns the point estimate of the travel time in minutes.
func (e Estimator) Minutes(distanceKm float64) float64 {
	return distanceKm / e.AverageSpeedKmH * 60
}

// MinutesRange widens a point estimate into the displayed [low, high] range.
func (e Estimator) MinutesRange(estimate float64) (low, high int) {
	low = int(math.Round(estimate - e.TimeSpreadMinutes))
	if low < e.MinMinutes {
		low = e.MinMinutes
	}
	high = int(math.Round(estimate + e.TimeSpreadMinutes))
	// Only reachable when MinMinutes is configured above the spread.
	if high < low {
		high = low
	}
	return low, high
}

// FareRange returns the displayed fare range for a trip of distanceKm.
func (e Estimator) FareRange(distanceKm float64) (low, high int) {
	lowFare := roundTo(e.BaseFare+distanceKm*e.PerKmRate, e.FareStep)
	highFare := roundTo(lowFare*e.HighMarkup, e.FareStep)
	if highFare < lowFare {
		highFare = lowFare
	}
	return int(lowFare), int(highFare)
}

// Trip builds the full estimate for a known distance.
func (e Estimator) Trip(distanceKm float64) entities.TripEstimate {
	minutes := e.Minutes(distanceKm)
	minLow, minHigh := e.MinutesRange(minutes)
	priceLow, priceHigh := e.FareRange(distanceKm)

	return entities.TripEstimate{
		DistanceKm:       distanceKm,
		EstimatedMinutes: minutes,
		MinutesLow:       minLow,
		MinutesHigh:      minHigh,
		PriceLow:         priceLow,
		PriceHigh:        priceHigh,
	}
}

// Quote estimates a trip between two arbitrary points.
func (e Estimator) Quote(from, to entities.Location) entities.TripEstimate {
	return e.Trip(Distance(from, to))
}

// Rank annotates a POI with its estimate relative to the rider.
func (e Estimator) Rank(user entities.Location, poi entities.POI) entities.RankedDestination {
	return entities.RankedDestination{
		POI:          poi,
		TripEstimate: e.Quote(user, poi.Location()),
	}
}

func roundTo(v, step float64) float64 {
	if step <= 0 {
		return math.Round(v)
	}
	return math.Round(v/step) * step
}
