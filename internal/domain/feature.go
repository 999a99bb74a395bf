package domain

import "github.com/paulmach/orb"

// Years is the fixed catalogue of year labels present in the dataset, in
// display order.
var Years = []string{"2010", "2011", "2012", "2013", "2014"}

// FeatureID is the canonical county identifier: the dataset's native string form.
type FeatureID string

// Feature is one county boundary plus its crash-count properties.
type Feature struct {
	ID   FeatureID
	Name string

	// Rings is the boundary as an ordered list of rings. MultiPolygon
	// boundaries are flattened; SVG fill uses the even-odd rule.
	Rings []orb.Ring

	// Counts maps a year label to its crash count. A nil map means the
	// source feature had no properties at all.
	Counts map[string]int
}

// Count returns the crash count recorded for year, or 0 when absent.
func (f Feature) Count(year string) int {
	return f.Counts[year]
}

// AggregatedEntity is a county's crash total across a selected set of years.
type AggregatedEntity struct {
	ID         FeatureID `json:"id"`
	Number     int       `json:"number"`
	Name       string    `json:"name"`
	CrashCount int       `json:"crash_count"`
}
