package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Locate returns the first county, in index order, whose boundary contains
// the lon/lat point. Rings combine under the even-odd rule, so holes and
// flattened multipolygon parts both resolve correctly.
func Locate(ix *FeatureIndex, p orb.Point) (Feature, bool) {
	for _, f := range ix.Features() {
		if containsEvenOdd(f.Rings, p) {
			return f, true
		}
	}
	return Feature{}, false
}

func containsEvenOdd(rings []orb.Ring, p orb.Point) bool {
	inside := false
	for _, r := range rings {
		if len(r) < 3 {
			continue
		}
		if planar.RingContains(r, p) {
			inside = !inside
		}
	}
	return inside
}
