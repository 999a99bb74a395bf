package domain

import (
	"cmp"
	"slices"
)

// Aggregate sums each county's crash counts over years, drops counties whose
// total is ≤ 0, and returns the rest ranked by total descending. Equal totals
// are ordered by numeric id ascending.
//
// Every id in the index must have an integer form; the first one that does not
// fails the call with *InvalidIdentifierError, whatever the year selection.
func Aggregate(ix *FeatureIndex, years YearSet) ([]AggregatedEntity, error) {
	out := make([]AggregatedEntity, 0, ix.Len())

	for _, f := range ix.Features() {
		n, err := ParseNumericID(f.ID)
		if err != nil {
			return nil, err
		}

		total := 0
		for _, y := range years {
			total += f.Count(y)
		}
		if total <= 0 {
			continue
		}

		out = append(out, AggregatedEntity{
			ID:         f.ID,
			Number:     n,
			Name:       f.Name,
			CrashCount: total,
		})
	}

	slices.SortStableFunc(out, func(a, b AggregatedEntity) int {
		if c := cmp.Compare(b.CrashCount, a.CrashCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})

	return out, nil
}
