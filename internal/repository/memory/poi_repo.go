package memory

import (
	"context"
	"sync"

	"ridehail/internal/domain/entities"
)

// POIRepository keeps the catalog in process memory.
//
// Go Learning Note — sync.RWMutex:
// Many readers can hold RLock at the same time; Lock is exclusive. Catalog
// reads vastly outnumber writes, so readers never wait on each other.
type POIRepository struct {
	mu   sync.RWMutex
	pois []entities.POI
}

func NewPOIRepository(pois ...entities.POI) *POIRepository {
	r := &POIRepository{}
	r.pois = append(r.pois, pois...)
	return r
}

// List returns a copy of the catalog in insertion order.
func (r *POIRepository) List(ctx context.Context) ([]entities.POI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.POI, len(r.pois))
	copy(out, r.pois)
	return out, nil
}

func (r *POIRepository) ReplaceAll(ctx context.Context, pois []entities.POI) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pois = make([]entities.POI, len(pois))
	copy(r.pois, pois)
	return len(pois), nil
}

func (r *POIRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pois), nil
}
