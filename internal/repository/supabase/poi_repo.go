// Package supabase reads the destination catalog from a hosted Supabase
// (PostgREST) table.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/supabase-community/supabase-go"
	"ridehail/internal/domain/entities"
)

var ErrMissingCredentials = errors.New("supabase url and key are required")

// DefaultTable is the table read when none is configured.
const DefaultTable = "pois"

type POIRepository struct {
	client *supabase.Client
	table  string
}

// NewPOIRepository connects to the project at url with an anon or service key.
func NewPOIRepository(url, key, table string) (*POIRepository, error) {
	if url == "" || key == "" {
		return nil, ErrMissingCredentials
	}
	if table == "" {
		table = DefaultTable
	}

	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("creating supabase client: %w", err)
	}

	return &POIRepository{client: client, table: table}, nil
}

// poiRow is the table layout: one row per POI, position giving catalog order.
type poiRow struct {
	ID          string  `json:"id"`
	Position    int     `json:"position"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// List fetches the whole table. The PostgREST client does not take a context,
// so ctx is only checked before the call.
func (r *POIRepository) List(ctx context.Context) ([]entities.POI, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, _, err := r.client.From(r.table).Select("id,position,name,lat,lng,description,category", "exact", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", r.table, err)
	}

	return decodeRows(data)
}

// decodeRows converts a PostgREST JSON array into POIs ordered by position.
// Rows with equal positions keep the order the server returned them in.
func decodeRows(data []byte) ([]entities.POI, error) {
	var rows []poiRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding poi rows: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position < rows[j].Position
	})

	pois := make([]entities.POI, len(rows))
	for i, row := range rows {
		pois[i] = entities.POI{
			ID:          row.ID,
			Name:        row.Name,
			Latitude:    row.Lat,
			Longitude:   row.Lng,
			Description: row.Description,
			Category:    entities.Category(row.Category),
		}
	}
	return pois, nil
}
