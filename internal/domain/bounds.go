package domain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// BoundsMode selects how the bounding-region scan tracks its extrema.
type BoundsMode int

const (
	// BoundsIndependent tracks min/max per axis.
	BoundsIndependent BoundsMode = iota

	// BoundsCoupled is the legacy crossed-axis scan: each axis's
	// comparison decides when the other axis's value is stored.
	BoundsCoupled
)

func (m BoundsMode) String() string {
	switch m {
	case BoundsIndependent:
		return "independent"
	case BoundsCoupled:
		return "coupled"
	default:
		return fmt.Sprintf("BoundsMode(%d)", int(m))
	}
}

// ParseBoundsMode parses "independent" or "coupled".
func ParseBoundsMode(s string) (BoundsMode, error) {
	switch s {
	case "independent", "":
		return BoundsIndependent, nil
	case "coupled":
		return BoundsCoupled, nil
	default:
		return 0, fmt.Errorf("unknown bounds mode %q", s)
	}
}

// ScanBounds visits every coordinate of every ring exactly once and returns
// the bounding region. Min holds the two lower extrema and Max the two upper
// ones, as (first component, second component). It fails with
// ErrEmptyDataset when the index holds no coordinates.
func ScanBounds(ix *FeatureIndex, mode BoundsMode) (orb.Bound, error) {
	var (
		minX, maxX, minY, maxY float64
		seen                   bool
	)

	for _, f := range ix.Features() {
		for _, ring := range f.Rings {
			for _, p := range ring {
				if mode == BoundsCoupled {
					if !seen || p[1] < minX {
						minX = p[0]
					}
					if !seen || p[1] > maxX {
						maxX = p[0]
					}
					if !seen || p[0] < minY {
						minY = p[1]
					}
					if !seen || p[0] > maxY {
						maxY = p[1]
					}
				} else {
					if !seen || p[0] < minX {
						minX = p[0]
					}
					if !seen || p[0] > maxX {
						maxX = p[0]
					}
					if !seen || p[1] < minY {
						minY = p[1]
					}
					if !seen || p[1] > maxY {
						maxY = p[1]
					}
				}
				seen = true
			}
		}
	}

	if !seen {
		return orb.Bound{}, ErrEmptyDataset
	}
	return orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}, nil
}

// RoundedCenter returns the integer-rounded midpoint of each extrema pair.
// Halves round toward positive infinity.
func RoundedCenter(b orb.Bound) orb.Point {
	return orb.Point{
		roundHalfUp((b.Min[0] + b.Max[0]) / 2),
		roundHalfUp((b.Min[1] + b.Max[1]) / 2),
	}
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
