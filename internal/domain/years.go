package domain

import (
	"slices"
	"strings"
)

// YearSet is a sorted, duplicate-free set of year labels.
// The zero value is the empty set.
type YearSet []string

// NewYearSet builds a set from labels, dropping blanks and duplicates.
func NewYearSet(labels ...string) YearSet {
	s := make(YearSet, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		s = append(s, l)
	}
	slices.Sort(s)
	return slices.Compact(s)
}

// AllYears returns the full catalogue as a set.
func AllYears() YearSet {
	return NewYearSet(Years...)
}

// Contains reports whether year is in the set.
func (s YearSet) Contains(year string) bool {
	_, found := slices.BinarySearch(s, year)
	return found
}

// Toggle returns a new set with year added when absent or removed when present.
func (s YearSet) Toggle(year string) YearSet {
	if s.Contains(year) {
		out := make(YearSet, 0, len(s))
		for _, y := range s {
			if y != year {
				out = append(out, y)
			}
		}
		return out
	}
	return NewYearSet(append(slices.Clone([]string(s)), year)...)
}

// String renders the set as a comma-separated list.
func (s YearSet) String() string {
	return strings.Join(s, ",")
}
