package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	// DefaultScale is the Mercator scale factor used by the map view.
	DefaultScale = 130000

	pathPrecision = 1000
)

// DefaultTranslate is the pixel offset the projected center lands on.
var DefaultTranslate = orb.Point{300, 0}

// ProjectionOptions configures BuildProjection.
type ProjectionOptions struct {
	Scale     float64
	Translate orb.Point
	Bounds    BoundsMode
}

// DefaultProjectionOptions returns the options the map view ships with.
func DefaultProjectionOptions() ProjectionOptions {
	return ProjectionOptions{
		Scale:     DefaultScale,
		Translate: DefaultTranslate,
		Bounds:    BoundsIndependent,
	}
}

// PathGenerator maps a feature to SVG path data.
type PathGenerator func(Feature) string

// Mercator is a spherical Mercator projection configured the way d3-geo's
// geoMercator is: scale in pixels per radian, center in degrees, and a
// translate giving the pixel position of the center.
type Mercator struct {
	Scale     float64
	Center    orb.Point
	Translate orb.Point

	rawCenter orb.Point
}

// NewMercator returns a Mercator centered on center (lon, lat degrees).
func NewMercator(scale float64, center, translate orb.Point) Mercator {
	return Mercator{
		Scale:     scale,
		Center:    center,
		Translate: translate,
		rawCenter: mercatorRaw(center),
	}
}

// Project maps a lon/lat point to planar pixel coordinates. Y grows downward.
func (m Mercator) Project(p orb.Point) orb.Point {
	raw := mercatorRaw(p)
	return orb.Point{
		m.Translate[0] + m.Scale*(raw[0]-m.rawCenter[0]),
		m.Translate[1] - m.Scale*(raw[1]-m.rawCenter[1]),
	}
}

// mercatorRaw projects onto the unit sphere: (λ, ln(tan(π/4 + φ/2))) in radians.
func mercatorRaw(p orb.Point) orb.Point {
	m := project.WGS84.ToMercator(p)
	return orb.Point{m[0] / orb.EarthRadius, m[1] / orb.EarthRadius}
}

// Projection is the map view's geographic-to-planar setup, derived once from
// the bounding region of the whole index.
type Projection struct {
	Bounds   orb.Bound
	Center   orb.Point
	Mercator Mercator
}

// BuildProjection scans the index for its bounding region, centers a Mercator
// projection on the rounded midpoint, and returns it. Use Path (or
// PathGenerator) to render features. Fails with ErrEmptyDataset when the
// index has no coordinates.
func BuildProjection(ix *FeatureIndex, opts ProjectionOptions) (*Projection, error) {
	if ix.Len() == 0 {
		return nil, ErrEmptyDataset
	}

	bounds, err := ScanBounds(ix, opts.Bounds)
	if err != nil {
		return nil, err
	}
	center := RoundedCenter(bounds)

	return &Projection{
		Bounds:   bounds,
		Center:   center,
		Mercator: NewMercator(opts.Scale, center, opts.Translate),
	}, nil
}

// PathGenerator returns Path as a standalone function value.
func (p *Projection) PathGenerator() PathGenerator {
	return p.Path
}

// Path renders f as SVG path data: one "M…L…Z" subpath per non-empty ring,
// coordinates rounded to three decimals. A ring's closing coordinate is left
// to the Z command, as d3-geo's path generator does.
func (p *Projection) Path(f Feature) string {
	var b strings.Builder
	for _, ring := range f.Rings {
		if len(ring) > 1 && ring.Closed() {
			ring = ring[:len(ring)-1]
		}
		for i, pt := range ring {
			if i == 0 {
				b.WriteByte('M')
			} else {
				b.WriteByte('L')
			}
			xy := p.Mercator.Project(pt)
			b.WriteString(formatCoord(xy[0]))
			b.WriteByte(',')
			b.WriteString(formatCoord(xy[1]))
		}
		if len(ring) > 0 {
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func formatCoord(v float64) string {
	v = math.Round(v*pathPrecision) / pathPrecision
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
