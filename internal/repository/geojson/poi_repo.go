// Package geojson reads the destination catalog from a GeoJSON
// FeatureCollection of Point features. The Taipei catalog ships embedded in
// the binary and is the default source.
package geojson

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"ridehail/internal/domain/entities"
)

//go:embed data/taipei.geojson
var defaultFS embed.FS

const defaultPath = "data/taipei.geojson"

var ErrNotPoint = errors.New("feature geometry is not a point")

// POIRepository decodes features on every List call. Catalogs are small and
// List runs once at startup.
type POIRepository struct {
	read func() ([]byte, error)
}

// NewEmbeddedRepository serves the catalog compiled into the binary.
func NewEmbeddedRepository() *POIRepository {
	return &POIRepository{read: func() ([]byte, error) {
		return defaultFS.ReadFile(defaultPath)
	}}
}

// NewFileRepository serves the catalog stored at path.
func NewFileRepository(path string) *POIRepository {
	return &POIRepository{read: func() ([]byte, error) {
		return os.ReadFile(path)
	}}
}

func (r *POIRepository) List(ctx context.Context) ([]entities.POI, error) {
	data, err := r.read()
	if err != nil {
		return nil, fmt.Errorf("reading geojson: %w", err)
	}
	return Decode(data)
}

// Decode converts a FeatureCollection into POIs in feature order. The feature
// id (or an "id" property) becomes the POI ID; name, category and description
// come from properties.
func Decode(data []byte) ([]entities.POI, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}

	pois := make([]entities.POI, 0, len(fc.Features))
	for i, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("feature %d: %w (got %T)", i, ErrNotPoint, f.Geometry)
		}

		loc := entities.LocationFromPoint(pt)
		pois = append(pois, entities.POI{
			ID:          featureID(f),
			Name:        f.Properties.MustString("name", ""),
			Latitude:    loc.Latitude,
			Longitude:   loc.Longitude,
			Description: f.Properties.MustString("description", ""),
			Category:    entities.Category(f.Properties.MustString("category", "")),
		})
	}
	return pois, nil
}

// Encode is the inverse of Decode, used by the export tooling.
func Encode(pois []entities.POI) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, p := range pois {
		f := geojson.NewFeature(p.Location().Point())
		f.ID = p.ID
		f.Properties["name"] = p.Name
		f.Properties["category"] = string(p.Category)
		f.Properties["description"] = p.Description
		fc.Append(f)
	}
	return fc.MarshalJSON()
}

func featureID(f *geojson.Feature) string {
	switch id := f.ID.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%g", id)
	}
	return f.Properties.MustString("id", "")
}
