package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/crash-map/internal/domain"
)

func TestSample(t *testing.T) {
	features, err := Sample()
	require.NoError(t, err)
	require.Len(t, features, 8)

	ix, err := domain.IndexFeatures(features)
	require.NoError(t, err)
	assert.Equal(t, 8, ix.Len())

	for _, f := range features {
		assert.NotEmpty(t, f.Name, "feature %s has no name", f.ID)
		assert.NotEmpty(t, f.Rings)
		for _, y := range domain.Years {
			assert.Contains(t, f.Counts, y, "feature %s is missing year %s", f.ID, y)
		}
	}

	proj, err := domain.BuildProjection(ix, domain.DefaultProjectionOptions())
	require.NoError(t, err)
	assert.Equal(t, -77.0, proj.Center[0])
	assert.Equal(t, 39.0, proj.Center[1])
}

func TestDecode(t *testing.T) {
	t.Run("string and numeric ids", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","id":"11","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]},"properties":{"name":"A","2010":4}},
			{"type":"Feature","id":12,"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]},"properties":{"name":"B","2010":0,"note":"x"}}
		]}`)

		features, err := Decode(data)
		require.NoError(t, err)
		require.Len(t, features, 2)

		assert.Equal(t, domain.FeatureID("11"), features[0].ID)
		assert.Equal(t, "A", features[0].Name)
		assert.Equal(t, map[string]int{"2010": 4}, features[0].Counts)
		require.Len(t, features[0].Rings, 1)
		assert.Len(t, features[0].Rings[0], 4)

		assert.Equal(t, domain.FeatureID("12"), features[1].ID)
		assert.Equal(t, map[string]int{"2010": 0}, features[1].Counts)
	})

	t.Run("multipolygon rings are flattened", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","id":"1","geometry":{"type":"MultiPolygon","coordinates":[
				[[[0,0],[1,0],[1,1],[0,0]]],
				[[[5,5],[6,5],[6,6],[5,5]],[[5.2,5.2],[5.4,5.2],[5.4,5.4],[5.2,5.2]]]
			]},"properties":{"name":"Islands"}}
		]}`)

		features, err := Decode(data)
		require.NoError(t, err)
		assert.Len(t, features[0].Rings, 3)
	})

	t.Run("null geometry and properties pass through to the indexer", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","id":"1","geometry":null,"properties":null}
		]}`)

		features, err := Decode(data)
		require.NoError(t, err)
		assert.Empty(t, features[0].Rings)
		assert.Nil(t, features[0].Counts)

		_, err = domain.IndexFeatures(features)
		var invalid *domain.InvalidDatasetError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, "missing geometry", invalid.Reason)
	})

	t.Run("unsupported geometry", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","id":"1","geometry":{"type":"Point","coordinates":[0,0]},"properties":{}}
		]}`)

		_, err := Decode(data)
		var invalid *domain.InvalidDatasetError
		require.True(t, errors.As(err, &invalid))
		assert.Contains(t, invalid.Reason, "Point")
	})

	t.Run("fractional count", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","id":"1","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]},"properties":{"2010":1.5}}
		]}`)

		_, err := Decode(data)
		var invalid *domain.InvalidDatasetError
		require.True(t, errors.As(err, &invalid))
		assert.Contains(t, invalid.Reason, "2010")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := Decode([]byte(`{not json`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode feature collection")
	})
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses sample", func(t *testing.T) {
		features, err := Load("")
		require.NoError(t, err)
		assert.Len(t, features, 8)
	})

	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "one.geojson")
		require.NoError(t, os.WriteFile(path, []byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","id":"9","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]},"properties":{"name":"Nine"}}
		]}`), 0o600))

		features, err := Load(path)
		require.NoError(t, err)
		require.Len(t, features, 1)
		assert.Equal(t, "Nine", features[0].Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.geojson"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read dataset")
	})
}
