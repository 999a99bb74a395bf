package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when no coordinates are available to derive
	// a bounding region from.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrUnknownFeature is returned when a county id is not in the index.
	ErrUnknownFeature = errors.New("unknown feature")
)

// InvalidDatasetError reports a feature that cannot be indexed.
type InvalidDatasetError struct {
	FeatureID FeatureID
	Position  int
	Reason    string
}

func (e *InvalidDatasetError) Error() string {
	if e.FeatureID == "" {
		return fmt.Sprintf("invalid dataset: feature #%d: %s", e.Position, e.Reason)
	}
	return fmt.Sprintf("invalid dataset: feature %q (#%d): %s", e.FeatureID, e.Position, e.Reason)
}

// InvalidIdentifierError reports a feature id with no integer form.
type InvalidIdentifierError struct {
	ID  FeatureID
	Err error
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %v", e.ID, e.Err)
}

func (e *InvalidIdentifierError) Unwrap() error { return e.Err }
