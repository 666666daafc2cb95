package repository

import (
	"fmt"

	"ridehail/internal/config"
	"ridehail/internal/repository/geojson"
	"ridehail/internal/repository/sqlite"
	"ridehail/internal/repository/supabase"
)

// Open returns the catalog repository selected by cfg.Source. The returned
// close function releases any held resources and is never nil.
func Open(cfg config.CatalogConfig) (POIRepository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Source {
	case "", config.CatalogEmbedded:
		return geojson.NewEmbeddedRepository(), noop, nil
	case config.CatalogGeoJSON:
		return geojson.NewFileRepository(cfg.Path), noop, nil
	case config.CatalogSQLite:
		repo, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return repo, repo.Close, nil
	case config.CatalogSupabase:
		repo, err := supabase.NewPOIRepository(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseTable)
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}
