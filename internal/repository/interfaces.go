// Package repository defines where the destination catalog comes from.
//
// Implementations live in subpackages: memory (tests and dry runs), geojson
// (embedded default and files), sqlite (local database) and supabase (hosted
// table). All of them return POIs in a stable catalog order; that order is
// the tie-breaker when two destinations rank equally.
package repository

import (
	"context"

	"ridehail/internal/domain/entities"
)

// POIRepository lists the catalog.
type POIRepository interface {
	List(ctx context.Context) ([]entities.POI, error)
}

// POIStore is a POIRepository that can also be rewritten, used by the seed
// tooling. ReplaceAll swaps the whole catalog at once; Count reports how many
// POIs are stored.
type POIStore interface {
	POIRepository
	ReplaceAll(ctx context.Context, pois []entities.POI) (int, error)
	Count(ctx context.Context) (int, error)
}
