// Package domain models per-county car crash counts for a fixed region and
// a fixed five-year window, and the pure transforms the views are built from.
//
// # Data Source
//
// The dataset is a GeoJSON FeatureCollection bundled with the application.
// Each feature is one county (a DC neighborhood ward in the sample data):
//
//	{"type": "Feature", "id": "3",
//	 "geometry": {"type": "Polygon", "coordinates": [[[-77.05, 38.93], ...]]},
//	 "properties": {"name": "Ward 3", "2010": 41, "2011": 38, ...}}
//
// Identifiers are string-typed in the source. [FeatureID] keeps that form
// everywhere inside this package; the integer form is derived only on
// [AggregatedEntity] for ranking and display.
//
// Properties hold a display name plus integer crash counts keyed by year
// label. The year catalogue is fixed: see [Years]. A missing year counts as 0.
//
// # Transforms
//
//   - [IndexFeatures] builds the id-keyed [FeatureIndex] once at startup.
//   - [BuildProjection] scans the index for its bounding region and returns a
//     d3-compatible Mercator [Projection] whose Path method renders SVG path data.
//   - [Aggregate] sums crash counts over a [YearSet], drops counties with a
//     total ≤ 0, and ranks the rest descending.
//
// All of them are deterministic, hold no state between calls, and never
// mutate their input, so an index may be shared by any number of readers.
//
// # Bounding Region
//
// The first published map scanned coordinates with crossed axes: the second
// component decided when to update the first component's extremum and vice
// versa. [BoundsIndependent] (the default) tracks conventional per-axis
// extrema; [BoundsCoupled] keeps the crossed scan for maps that must line up
// with the old rendering. For the bundled DC wards both give the same
// rounded center.
package domain
