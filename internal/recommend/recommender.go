package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"ridehail/internal/domain/entities"
)

// Sentinel errors for recommendation requests.
//
// Go Learning Note — Sentinel Errors:
// Callers compare with errors.Is(err, recommend.ErrInvalidLocation) rather
// than matching strings. Because errors.Is walks the %w chain, the check still
// works after an upper layer wraps the error with extra context.
var (
	ErrInvalidLocation = errors.New("location unavailable")
	ErrUnknownPolicy   = errors.New("unknown recommendation policy")
)

// Policy selects how candidates are filtered and ranked.
type Policy string

const (
	// PolicyTimeWindow returns up to Window.Limit destinations whose travel
	// estimate falls inside the window, nearest first.
	PolicyTimeWindow Policy = "time"
	// PolicyCategory returns destinations within a radius grouped into the
	// fixed category buckets.
	PolicyCategory Policy = "category"
)

// ParsePolicy maps a query value to a Policy. An empty string selects the
// time window.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyTimeWindow:
		return PolicyTimeWindow, nil
	case PolicyCategory:
		return PolicyCategory, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Options configures one Recommend call. A zero RadiusKm falls back to the
// recommender's default radius.
type Options struct {
	Policy   Policy
	RadiusKm float64
}

// Window bounds the time-window policy. Both bounds are inclusive and are
// compared against the unrounded point estimate.
type Window struct {
	MinMinutes float64
	MaxMinutes float64
	Limit      int
}

// DefaultWindow keeps trips between 15 and 60 minutes and returns at most 3.
func DefaultWindow() Window {
	return Window{MinMinutes: 15, MaxMinutes: 60, Limit: 3}
}

// DefaultRadiusKm is the category-policy radius when none is given.
const DefaultRadiusKm = 10.0

// CategoryBuckets maps every category to its ranked destinations.
type CategoryBuckets map[entities.Category][]entities.RankedDestination

// CategoryGroup is one bucket in display order.
type CategoryGroup struct {
	Category     entities.Category
	Destinations []entities.RankedDestination
}

// Groups returns the buckets in the fixed category order.
func (b CategoryBuckets) Groups() []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(b))
	for _, c := range entities.Categories() {
		groups = append(groups, CategoryGroup{Category: c, Destinations: b[c]})
	}
	return groups
}

// Result carries the output of Recommend. Exactly one of Destinations or
// Buckets is populated, depending on Policy.
type Result struct {
	Policy       Policy
	Destinations []entities.RankedDestination
	Buckets      CategoryBuckets
}

// Recommender applies the selection policies with a fixed Estimator.
type Recommender struct {
	estimator Estimator
	window    Window
	radiusKm  float64
}

// NewRecommender creates a Recommender. A non-positive radius is replaced by
// DefaultRadiusKm.
func NewRecommender(estimator Estimator, window Window, defaultRadiusKm float64) *Recommender {
	if defaultRadiusKm <= 0 || math.IsNaN(defaultRadiusKm) {
		defaultRadiusKm = DefaultRadiusKm
	}
	return &Recommender{
		estimator: estimator,
		window:    window,
		radiusKm:  defaultRadiusKm,
	}
}

var defaultRecommender = NewRecommender(DefaultEstimator(), DefaultWindow(), DefaultRadiusKm)

// ComputeNearbyByTimeWindow ranks catalog with the default time window.
func ComputeNearbyByTimeWindow(user entities.Location, catalog []entities.POI) ([]entities.RankedDestination, error) {
	return defaultRecommender.ByTimeWindow(user, catalog)
}

// ComputeNearbyByCategory groups catalog with the default estimator. A
// non-positive radiusKm selects DefaultRadiusKm.
func ComputeNearbyByCategory(user entities.Location, catalog []entities.POI, radiusKm float64) (CategoryBuckets, error) {
	return defaultRecommender.ByCategory(user, catalog, radiusKm)
}

// Estimator returns the estimator used for ranking.
func (r *Recommender) Estimator() Estimator {
	return r.estimator
}

// Recommend dispatches on opts.Policy.
func (r *Recommender) Recommend(user entities.Location, catalog []entities.POI, opts Options) (Result, error) {
	policy := opts.Policy
	if policy == "" {
		policy = PolicyTimeWindow
	}

	switch policy {
	case PolicyTimeWindow:
		dests, err := r.ByTimeWindow(user, catalog)
		if err != nil {
			return Result{}, err
		}
		return Result{Policy: policy, Destinations: dests}, nil
	case PolicyCategory:
		buckets, err := r.ByCategory(user, catalog, opts.RadiusKm)
		if err != nil {
			return Result{}, err
		}
		return Result{Policy: policy, Buckets: buckets}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

// ByTimeWindow keeps destinations whose estimate lies inside the window,
// sorted ascending by estimate and capped at the window limit. When nothing
// qualifies the destinations with the smallest estimates are returned
// instead, so a non-empty catalog never yields an empty list.
func (r *Recommender) ByTimeWindow(user entities.Location, catalog []entities.POI) ([]entities.RankedDestination, error) {
	if !user.IsValid() {
		return nil, ErrInvalidLocation
	}

	ranked := r.rankAll(user, catalog)

	candidates := make([]entities.RankedDestination, 0, len(ranked))
	for _, d := range ranked {
		if d.EstimatedMinutes >= r.window.MinMinutes && d.EstimatedMinutes <= r.window.MaxMinutes {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		candidates = ranked
	}

	// SliceStable keeps catalog order for equal estimates.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].EstimatedMinutes < candidates[j].EstimatedMinutes
	})

	if r.window.Limit > 0 && len(candidates) > r.window.Limit {
		candidates = candidates[:r.window.Limit]
	}
	return candidates, nil
}

// ByCategory groups destinations within radiusKm (inclusive) by category,
// each bucket sorted ascending by distance.
//
// Empty buckets are backfilled so every category shows something:
//   - if any destination is within the radius, an empty bucket receives the
//     single nearest in-radius destination regardless of its category;
//   - if none is, each bucket receives the nearest destination of its own
//     category from the whole catalog, or the nearest destination overall
//     when the category has no members.
//
// POIs whose category is not one of the fixed buckets are ignored. An empty
// catalog yields buckets that are all empty.
func (r *Recommender) ByCategory(user entities.Location, catalog []entities.POI, radiusKm float64) (CategoryBuckets, error) {
	if !user.IsValid() {
		return nil, ErrInvalidLocation
	}
	if radiusKm <= 0 || math.IsNaN(radiusKm) {
		radiusKm = r.radiusKm
	}

	buckets := make(CategoryBuckets, len(entities.Categories()))
	for _, c := range entities.Categories() {
		buckets[c] = []entities.RankedDestination{}
	}

	// POIs outside the fixed categories have no bucket and never backfill one.
	var ranked []entities.RankedDestination
	for _, d := range r.rankAll(user, catalog) {
		if d.Category.IsValid() {
			ranked = append(ranked, d)
		}
	}
	if len(ranked) == 0 {
		return buckets, nil
	}

	var survivors []entities.RankedDestination
	for _, d := range ranked {
		if d.DistanceKm <= radiusKm {
			survivors = append(survivors, d)
		}
	}

	for _, d := range survivors {
		buckets[d.Category] = append(buckets[d.Category], d)
	}
	for c := range buckets {
		sortByDistance(buckets[c])
	}

	if len(survivors) > 0 {
		nearest, _ := nearestOf(survivors, nil)
		for c, dests := range buckets {
			if len(dests) == 0 {
				buckets[c] = []entities.RankedDestination{nearest}
			}
		}
		return buckets, nil
	}

	overall, _ := nearestOf(ranked, nil)
	for c := range buckets {
		category := c
		best, ok := nearestOf(ranked, func(d entities.RankedDestination) bool {
			return d.Category == category
		})
		if !ok {
			best = overall
		}
		buckets[c] = []entities.RankedDestination{best}
	}
	return buckets, nil
}

func (r *Recommender) rankAll(user entities.Location, catalog []entities.POI) []entities.RankedDestination {
	ranked := make([]entities.RankedDestination, len(catalog))
	for i, poi := range catalog {
		ranked[i] = r.estimator.Rank(user, poi)
	}
	return ranked
}

func sortByDistance(dests []entities.RankedDestination) {
	sort.SliceStable(dests, func(i, j int) bool {
		return dests[i].DistanceKm < dests[j].DistanceKm
	})
}

// nearestOf returns the first destination with the minimum distance among
// those accepted by keep (all when keep is nil).
func nearestOf(dests []entities.RankedDestination, keep func(entities.RankedDestination) bool) (entities.RankedDestination, bool) {
	var best entities.RankedDestination
	found := false
	for _, d := range dests {
		if keep != nil && !keep(d) {
			continue
		}
		if !found || d.DistanceKm < best.DistanceKm {
			best = d
			found = true
		}
	}
	return best, found
}
