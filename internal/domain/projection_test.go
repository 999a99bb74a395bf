package domain

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanBounds(t *testing.T) {
	dc := mustIndex(ward("1", "DC", map[string]int{}, orb.Ring{
		{-77.1, 38.8}, {-76.9, 38.8}, {-76.9, 39.0}, {-77.1, 39.0}, {-77.1, 38.8},
	}))
	positive := mustIndex(ward("1", "NE quadrant", map[string]int{}, orb.Ring{
		{10, 50}, {30, 50}, {30, 70}, {10, 70}, {10, 50},
	}))

	t.Run("independent tracks per-axis extrema", func(t *testing.T) {
		b, err := ScanBounds(positive, BoundsIndependent)
		require.NoError(t, err)
		assert.Equal(t, orb.Bound{Min: orb.Point{10, 50}, Max: orb.Point{30, 70}}, b)
		assert.Equal(t, orb.Point{20, 60}, RoundedCenter(b))
	})

	t.Run("coupled reproduces crossed-axis updates", func(t *testing.T) {
		b, err := ScanBounds(positive, BoundsCoupled)
		require.NoError(t, err)
		assert.Equal(t, orb.Bound{Min: orb.Point{10, 50}, Max: orb.Point{10, 50}}, b)
		assert.Equal(t, orb.Point{10, 50}, RoundedCenter(b))
	})

	t.Run("modes agree on a western-hemisphere region", func(t *testing.T) {
		independent, err := ScanBounds(dc, BoundsIndependent)
		require.NoError(t, err)
		coupled, err := ScanBounds(dc, BoundsCoupled)
		require.NoError(t, err)

		assert.NotEqual(t, independent, coupled)
		assert.Equal(t, orb.Point{-77, 39}, RoundedCenter(independent))
		assert.Equal(t, RoundedCenter(independent), RoundedCenter(coupled))
	})

	t.Run("no coordinates", func(t *testing.T) {
		ix := mustIndex(ward("1", "hollow", map[string]int{}, orb.Ring{}))
		_, err := ScanBounds(ix, BoundsIndependent)
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})
}

func TestRoundedCenter_HalvesRoundUp(t *testing.T) {
	b := orb.Bound{Min: orb.Point{-3, 1}, Max: orb.Point{-2, 2}}
	assert.Equal(t, orb.Point{-2, 2}, RoundedCenter(b))
}

func TestParseBoundsMode(t *testing.T) {
	m, err := ParseBoundsMode("coupled")
	require.NoError(t, err)
	assert.Equal(t, BoundsCoupled, m)
	assert.Equal(t, "coupled", m.String())

	m, err = ParseBoundsMode("")
	require.NoError(t, err)
	assert.Equal(t, BoundsIndependent, m)

	_, err = ParseBoundsMode("diagonal")
	assert.Error(t, err)
}

func TestMercator_Project(t *testing.T) {
	m := NewMercator(DefaultScale, orb.Point{-77, 39}, DefaultTranslate)

	tests := []struct {
		name string
		in   orb.Point
		x, y float64
	}{
		{"center lands on translate", orb.Point{-77, 39}, 300, 0},
		{"east moves right", orb.Point{-76.99, 39}, 322.689, 0},
		{"north moves up", orb.Point{-77, 39.01}, 300, -29.198},
		{"south-west", orb.Point{-77.01, 38.99}, 277.311, 29.194},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := m.Project(tt.in)
			assert.InDelta(t, tt.x, p[0], 1e-3)
			assert.InDelta(t, tt.y, p[1], 1e-3)
		})
	}
}

func TestBuildProjection(t *testing.T) {
	t.Run("renders one subpath per ring", func(t *testing.T) {
		f := ward("1", "Ward 1", map[string]int{}, square(-77, 39, 0.01))
		proj, err := BuildProjection(mustIndex(f), DefaultProjectionOptions())
		require.NoError(t, err)

		assert.Equal(t, orb.Point{-77, 39}, proj.Center)
		assert.Equal(t,
			"M277.311,29.194L322.689,29.194L322.689,-29.198L277.311,-29.198Z",
			proj.Path(f))
	})

	t.Run("open ring keeps its last coordinate", func(t *testing.T) {
		closed := square(-77, 39, 0.01)
		open := closed[:len(closed)-1]
		f := ward("1", "Ward 1", map[string]int{}, closed)
		proj, err := BuildProjection(mustIndex(f), DefaultProjectionOptions())
		require.NoError(t, err)

		openFeature := ward("1", "Ward 1", map[string]int{}, open)
		assert.Equal(t, proj.Path(f), proj.Path(openFeature))
		assert.Equal(t, 4, strings.Count(proj.Path(f), ","))
	})

	t.Run("multiple rings", func(t *testing.T) {
		f := ward("1", "Ward 1", map[string]int{}, square(-77, 39, 0.01), square(-77, 39, 0.005), orb.Ring{})
		proj, err := BuildProjection(mustIndex(f), DefaultProjectionOptions())
		require.NoError(t, err)

		path := proj.Path(f)
		assert.Equal(t, 2, strings.Count(path, "M"))
		assert.Equal(t, 2, strings.Count(path, "Z"))
	})

	t.Run("all-origin feature centers on origin", func(t *testing.T) {
		f := ward("1", "Null Island", map[string]int{}, orb.Ring{{0, 0}, {0, 0}, {0, 0}})
		proj, err := BuildProjection(mustIndex(f), DefaultProjectionOptions())
		require.NoError(t, err)

		assert.Equal(t, orb.Point{0, 0}, proj.Center)
		gen := proj.PathGenerator()
		assert.Equal(t, "M300,0L300,0Z", gen(f))
	})

	t.Run("empty index", func(t *testing.T) {
		ix, err := IndexFeatures(nil)
		require.NoError(t, err)

		_, err = BuildProjection(ix, DefaultProjectionOptions())
		assert.True(t, errors.Is(err, ErrEmptyDataset))
	})

	t.Run("custom scale and translate", func(t *testing.T) {
		f := ward("1", "Ward 1", map[string]int{}, square(-77, 39, 0.01))
		proj, err := BuildProjection(mustIndex(f), ProjectionOptions{Scale: 1000, Translate: orb.Point{10, 20}})
		require.NoError(t, err)

		p := proj.Mercator.Project(orb.Point{-77, 39})
		assert.Equal(t, orb.Point{10, 20}, p)
	})

	t.Run("generator is safe for concurrent use", func(t *testing.T) {
		f := ward("1", "Ward 1", map[string]int{}, square(-77, 39, 0.01))
		proj, err := BuildProjection(mustIndex(f), DefaultProjectionOptions())
		require.NoError(t, err)
		want := proj.Path(f)

		var wg sync.WaitGroup
		results := make([]string, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = proj.Path(f)
			}(i)
		}
		wg.Wait()

		for _, got := range results {
			assert.Equal(t, want, got)
		}
	})
}
