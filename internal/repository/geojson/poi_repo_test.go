package geojson

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ridehail/internal/domain/entities"
)

func TestEmbeddedCatalog(t *testing.T) {
	pois, err := NewEmbeddedRepository().List(context.Background())
	require.NoError(t, err)
	require.Len(t, pois, 8)

	first := pois[0]
	assert.Equal(t, "yangmingshan-national-park", first.ID)
	assert.Equal(t, "陽明山國家公園", first.Name)
	assert.Equal(t, 25.1559, first.Latitude)
	assert.Equal(t, 121.5468, first.Longitude)
	assert.Equal(t, entities.CategorySightseeing, first.Category)

	seen := map[entities.Category]bool{}
	for _, p := range pois {
		assert.True(t, p.Category.IsValid(), "poi %s has category %q", p.ID, p.Category)
		assert.True(t, p.Location().IsValid(), "poi %s", p.ID)
		assert.NotEmpty(t, p.Name)
		seen[p.Category] = true
	}
	for _, c := range entities.Categories() {
		assert.True(t, seen[c], "no poi in category %s", c)
	}
}

func TestDecodeRejectsNonPointGeometry(t *testing.T) {
	data := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"LineString","coordinates":[[121.5,25.0],[121.6,25.1]]},"properties":{"name":"road"}}
	]}`)

	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrNotPoint)
}

func TestDecodeIDFromProperties(t *testing.T) {
	data := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[121.5,25.0]},"properties":{"id":"p-1","name":"x","category":"leisure"}},
		{"type":"Feature","id":7,"geometry":{"type":"Point","coordinates":[121.6,25.1]},"properties":{"name":"y","category":"business"}}
	]}`)

	pois, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, pois, 2)
	assert.Equal(t, "p-1", pois[0].ID)
	assert.Equal(t, "7", pois[1].ID)
}

func TestEncodeDecodeFile(t *testing.T) {
	pois := []entities.POI{
		{ID: "a", Name: "象山步道", Latitude: 25.0230, Longitude: 121.5739, Category: entities.CategoryLeisure, Description: "trail"},
		{ID: "b", Name: "南港展覽館", Latitude: 25.0553, Longitude: 121.6076, Category: entities.CategoryBusiness},
	}

	data, err := Encode(pois)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.geojson")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := NewFileRepository(path).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pois, got)
}

func TestFileRepositoryMissingFile(t *testing.T) {
	_, err := NewFileRepository(filepath.Join(t.TempDir(), "missing.geojson")).List(context.Background())
	assert.Error(t, err)
}
