// Package catalog holds the immutable destination snapshot the recommender
// reads from. It is loaded once at startup from a repository.POIRepository and
// validated; after that it is shared read-only by every request goroutine.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/paulmach/orb"
	"ridehail/internal/domain/entities"
	"ridehail/internal/repository"
	"ridehail/pkg/utils"
)

var (
	ErrUnknownCategory = errors.New("unknown poi category")
	ErrInvalidPOI      = errors.New("invalid poi")
	ErrDuplicateID     = errors.New("duplicate poi id")
	ErrIncompleteSave  = errors.New("catalog save incomplete")
)

// Catalog is a validated, read-only list of POIs in catalog order.
type Catalog struct {
	pois       []entities.POI
	byCategory map[entities.Category][]entities.POI
	bound      orb.Bound
}

// New validates pois and builds a snapshot. POIs without an ID get a
// generated one. The input slice is copied.
func New(pois []entities.POI) (*Catalog, error) {
	c := &Catalog{
		pois:       make([]entities.POI, 0, len(pois)),
		byCategory: make(map[entities.Category][]entities.POI),
	}

	seen := make(map[string]bool, len(pois))
	points := make(orb.MultiPoint, 0, len(pois))
	for i, p := range pois {
		if err := Validate(p); err != nil {
			return nil, fmt.Errorf("poi %d (%q): %w", i, p.Name, err)
		}
		if p.ID == "" {
			p.ID = utils.GenerateID()
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("poi %d: %w: %s", i, ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true

		c.pois = append(c.pois, p)
		c.byCategory[p.Category] = append(c.byCategory[p.Category], p)
		points = append(points, p.Location().Point())
	}
	if len(points) > 0 {
		c.bound = points.Bound()
	}
	return c, nil
}

// Load lists repo and builds a snapshot from the result.
func Load(ctx context.Context, repo repository.POIRepository) (*Catalog, error) {
	pois, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	c, err := New(pois)
	if err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	log.Printf("[CATALOG] Loaded %d destinations", c.Len())
	return c, nil
}

// Save replaces the contents of store with the catalog and checks that every
// POI landed.
func (c *Catalog) Save(ctx context.Context, store repository.POIStore) (int, error) {
	if _, err := store.ReplaceAll(ctx, c.POIs()); err != nil {
		return 0, fmt.Errorf("saving catalog: %w", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting saved catalog: %w", err)
	}
	if n != c.Len() {
		return n, fmt.Errorf("%w: stored %d of %d destinations", ErrIncompleteSave, n, c.Len())
	}

	log.Printf("[CATALOG] Saved %d destinations", n)
	return n, nil
}

// Validate checks a single POI: a name, usable coordinates and a known
// category.
func Validate(p entities.POI) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidPOI)
	}
	if !p.Location().IsValid() {
		return fmt.Errorf("%w: coordinates (%v, %v)", ErrInvalidPOI, p.Latitude, p.Longitude)
	}
	if !p.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, p.Category)
	}
	return nil
}

// POIs returns a copy of the catalog in order.
func (c *Catalog) POIs() []entities.POI {
	out := make([]entities.POI, len(c.pois))
	copy(out, c.pois)
	return out
}

func (c *Catalog) Len() int {
	return len(c.pois)
}

// Group is one category of the catalog listing.
type Group struct {
	Category entities.Category
	POIs     []entities.POI
}

// Groups lists the catalog by category in display order. Categories without
// members are included with an empty list.
func (c *Catalog) Groups() []Group {
	groups := make([]Group, 0, len(entities.Categories()))
	for _, cat := range entities.Categories() {
		members := make([]entities.POI, len(c.byCategory[cat]))
		copy(members, c.byCategory[cat])
		groups = append(groups, Group{Category: cat, POIs: members})
	}
	return groups
}

// Bound is the bounding box of every POI. It is the zero bound for an empty
// catalog.
func (c *Catalog) Bound() orb.Bound {
	return c.bound
}
