package domain

import "strconv"

// FeatureIndex is an id-keyed lookup table over features. It is built once and
// never mutated, so it may be shared freely between goroutines.
type FeatureIndex struct {
	order []FeatureID
	byID  map[FeatureID]Feature
}

// IndexFeatures builds a FeatureIndex from the source collection.
//
// Duplicate ids are last-write-wins: the later feature replaces the earlier one
// but keeps the position where the id first appeared. Features without an id,
// geometry, or properties fail with *InvalidDatasetError.
func IndexFeatures(features []Feature) (*FeatureIndex, error) {
	ix := &FeatureIndex{
		order: make([]FeatureID, 0, len(features)),
		byID:  make(map[FeatureID]Feature, len(features)),
	}

	for i, f := range features {
		if err := validateFeature(i, f); err != nil {
			return nil, err
		}
		if _, seen := ix.byID[f.ID]; !seen {
			ix.order = append(ix.order, f.ID)
		}
		ix.byID[f.ID] = f
	}

	return ix, nil
}

func validateFeature(pos int, f Feature) error {
	switch {
	case f.ID == "":
		return &InvalidDatasetError{Position: pos, Reason: "missing id"}
	case len(f.Rings) == 0:
		return &InvalidDatasetError{FeatureID: f.ID, Position: pos, Reason: "missing geometry"}
	case f.Counts == nil:
		return &InvalidDatasetError{FeatureID: f.ID, Position: pos, Reason: "missing properties"}
	}
	return nil
}

// Len returns the number of distinct ids in the index.
func (ix *FeatureIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.order)
}

// Get returns the feature stored under id.
func (ix *FeatureIndex) Get(id FeatureID) (Feature, bool) {
	if ix == nil {
		return Feature{}, false
	}
	f, ok := ix.byID[id]
	return f, ok
}

// IDs returns the index keys in first-insertion order.
func (ix *FeatureIndex) IDs() []FeatureID {
	if ix == nil {
		return nil
	}
	return append([]FeatureID(nil), ix.order...)
}

// Features returns the indexed features in first-insertion order.
func (ix *FeatureIndex) Features() []Feature {
	if ix == nil {
		return nil
	}
	out := make([]Feature, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, ix.byID[id])
	}
	return out
}

// ParseNumericID returns the integer form of id. Only plain base-10 integers
// are accepted; "12abc" and " 12" are rejected rather than coerced.
func ParseNumericID(id FeatureID) (int, error) {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, &InvalidIdentifierError{ID: id, Err: err}
	}
	return n, nil
}

// FormatNumericID is the inverse of ParseNumericID.
func FormatNumericID(n int) FeatureID {
	return FeatureID(strconv.Itoa(n))
}
