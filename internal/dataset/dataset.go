// Package dataset decodes the county GeoJSON FeatureCollection into domain
// features and carries the bundled sample dataset.
package dataset

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/crash-map/internal/domain"
)

// NameProperty is the property key holding a county's display name.
const NameProperty = "name"

//go:embed data/wards.geojson
var sample []byte

// Sample decodes the bundled dataset.
func Sample() ([]domain.Feature, error) {
	return Decode(sample)
}

// Load decodes the dataset at path, or the bundled one when path is empty.
func Load(path string) ([]domain.Feature, error) {
	if path == "" {
		return Sample()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Decode(data)
}

// Decode parses a GeoJSON FeatureCollection. Features are converted without
// validation: a null geometry yields no rings and null properties yield nil
// counts, both of which domain.IndexFeatures rejects. Geometry types other
// than Polygon and MultiPolygon, and non-integral counts, fail here.
func Decode(data []byte) ([]domain.Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}

	out := make([]domain.Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		feat, err := convertFeature(i, f)
		if err != nil {
			return nil, err
		}
		out = append(out, feat)
	}
	return out, nil
}

func convertFeature(pos int, f *geojson.Feature) (domain.Feature, error) {
	feat := domain.Feature{ID: featureID(f.ID)}

	rings, err := featureRings(f.Geometry)
	if err != nil {
		return domain.Feature{}, &domain.InvalidDatasetError{FeatureID: feat.ID, Position: pos, Reason: err.Error()}
	}
	feat.Rings = rings

	if f.Properties == nil {
		return feat, nil
	}
	feat.Name = f.Properties.MustString(NameProperty, "")
	feat.Counts = make(map[string]int, len(f.Properties))
	for key, v := range f.Properties {
		if key == NameProperty {
			continue
		}
		num, ok := v.(float64)
		if !ok {
			continue
		}
		if num != math.Trunc(num) {
			return domain.Feature{}, &domain.InvalidDatasetError{
				FeatureID: feat.ID,
				Position:  pos,
				Reason:    fmt.Sprintf("property %q is not an integer: %v", key, num),
			}
		}
		feat.Counts[key] = int(num)
	}
	return feat, nil
}

// featureID normalizes a GeoJSON id (string or number) to its string form.
func featureID(v any) domain.FeatureID {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return domain.FeatureID(id)
	case float64:
		return domain.FeatureID(strconv.FormatFloat(id, 'f', -1, 64))
	default:
		return domain.FeatureID(fmt.Sprint(id))
	}
}

func featureRings(g orb.Geometry) ([]orb.Ring, error) {
	switch geom := g.(type) {
	case nil:
		return nil, nil
	case orb.Polygon:
		return []orb.Ring(geom), nil
	case orb.MultiPolygon:
		var rings []orb.Ring
		for _, poly := range geom {
			rings = append(rings, poly...)
		}
		return rings, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %s", g.GeoJSONType())
	}
}
