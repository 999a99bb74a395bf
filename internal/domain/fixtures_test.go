package domain

import "github.com/paulmach/orb"

// square returns a closed ring around (lon, lat) with half-width d.
func square(lon, lat, d float64) orb.Ring {
	return orb.Ring{
		{lon - d, lat - d},
		{lon + d, lat - d},
		{lon + d, lat + d},
		{lon - d, lat + d},
		{lon - d, lat - d},
	}
}

func ward(id, name string, counts map[string]int, rings ...orb.Ring) Feature {
	if len(rings) == 0 {
		rings = []orb.Ring{square(-77.0, 38.9, 0.01)}
	}
	return Feature{ID: FeatureID(id), Name: name, Rings: rings, Counts: counts}
}

func mustIndex(features ...Feature) *FeatureIndex {
	ix, err := IndexFeatures(features)
	if err != nil {
		panic(err)
	}
	return ix
}

// scenarioIndex is the two-ward index used by the aggregation scenarios.
func scenarioIndex() *FeatureIndex {
	return mustIndex(
		ward("1", "Ward A", map[string]int{"2010": 5, "2011": 0}),
		ward("2", "Ward B", map[string]int{"2010": 0, "2011": 0}),
	)
}
