package render

import (
	"math"

	"github.com/couchcryptid/crash-map/internal/domain"
)

const (
	// RowHeight is the vertical space each ranked county gets in the bar chart.
	RowHeight = 13

	bandPadding = 0.2
	tickCount   = 10
)

// Margins is the space around the plot area reserved for axes and labels.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins leaves room for county names on the left and the count
// axis at the bottom.
var DefaultMargins = Margins{Top: 0, Right: 20, Bottom: 30, Left: 150}

// Bar is one positioned bar, in plot-area coordinates.
type Bar struct {
	ID         domain.FeatureID
	Name       string
	CrashCount int
	X, Y       float64
	Width      float64
	Height     float64
}

// Tick is one labeled position on the count axis.
type Tick struct {
	Value float64
	X     float64
}

// ChartLayout is the fully positioned bar chart.
type ChartLayout struct {
	Width, Height         float64
	PlotWidth, PlotHeight float64
	Margins               Margins
	MaxCount              int
	Bars                  []Bar
	Ticks                 []Tick
}

// LayoutChart positions a horizontal bar per ranked entity. Counts map
// linearly from [0, max] onto the plot width; rows are bands with 0.2 padding
// over a reversed vertical range, so the first entity sits at the bottom.
// The viewport width is passed in by the caller; nothing here reads display
// state. A plot width below zero clamps to zero; with one or two entities the
// canvas grows so the plot is one row per entity tall.
func LayoutChart(entities []domain.AggregatedEntity, viewportWidth float64) ChartLayout {
	m := DefaultMargins
	l := ChartLayout{
		Width:   viewportWidth,
		Height:  float64(len(entities) * RowHeight),
		Margins: m,
	}
	l.PlotWidth = math.Max(0, l.Width-m.Left-m.Right)
	l.PlotHeight = math.Max(0, l.Height-m.Top-m.Bottom)
	if len(entities) > 0 && l.PlotHeight <= 0 {
		// Too few rows to cover the margins: grow the canvas to one row per
		// entity of plot area so the bars stay visible.
		l.PlotHeight = float64(len(entities) * RowHeight)
		l.Height = l.PlotHeight + m.Top + m.Bottom
	}

	if len(entities) == 0 {
		return l
	}
	// Entities arrive ranked, so the first carries the maximum.
	l.MaxCount = entities[0].CrashCount

	xScale := func(v float64) float64 {
		if l.MaxCount <= 0 {
			return 0
		}
		return v / float64(l.MaxCount) * l.PlotWidth
	}

	positions, bandwidth := bandScale(len(entities), l.PlotHeight, 0)

	l.Bars = make([]Bar, len(entities))
	for i, e := range entities {
		l.Bars[i] = Bar{
			ID:         e.ID,
			Name:       e.Name,
			CrashCount: e.CrashCount,
			X:          0,
			Y:          positions[i],
			Width:      xScale(float64(e.CrashCount)),
			Height:     bandwidth,
		}
	}

	for _, v := range ticks(0, float64(l.MaxCount), tickCount) {
		l.Ticks = append(l.Ticks, Tick{Value: v, X: xScale(v)})
	}
	return l
}

// bandScale splits the range [r0, r1] into n padded bands and returns each
// band's start and the band width. r0 > r1 reverses the order.
func bandScale(n int, r0, r1 float64) ([]float64, float64) {
	reverse := r1 < r0
	start, stop := r0, r1
	if reverse {
		start, stop = r1, r0
	}

	step := (stop - start) / math.Max(1, float64(n)-bandPadding+bandPadding*2)
	start += (stop - start - step*(float64(n)-bandPadding)) * 0.5
	bandwidth := step * (1 - bandPadding)

	values := make([]float64, n)
	for i := range values {
		values[i] = start + step*float64(i)
	}
	if reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			values[i], values[j] = values[j], values[i]
		}
	}
	return values, bandwidth
}

// ticks returns roughly count round-numbered values covering [start, stop].
func ticks(start, stop float64, count int) []float64 {
	if stop <= start || count <= 0 {
		return []float64{start}
	}

	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	base := math.Pow(10, power)
	factor := 1.0
	switch e := step / base; {
	case e >= math.Sqrt(50):
		factor = 10
	case e >= math.Sqrt(10):
		factor = 5
	case e >= math.Sqrt(2):
		factor = 2
	}
	inc := factor * base

	var out []float64
	for i := math.Ceil(start / inc); i*inc <= stop; i++ {
		out = append(out, i*inc)
	}
	return out
}
