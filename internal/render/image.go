package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/couchcryptid/crash-map/internal/domain"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no counties with crashes in the selected years")

// ImageFormat selects the chart export encoding.
type ImageFormat string

const (
	FormatSVG ImageFormat = "svg"
	FormatPNG ImageFormat = "png"
)

// ParseImageFormat validates an export format name.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch f := ImageFormat(s); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown image format %q", s)
	}
}

// ContentType returns the MIME type for the format.
func (f ImageFormat) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

const (
	exportBarWidth   = 40
	exportBarSpacing = 20
	exportPadding    = 200
)

// WriteChartImage renders the ranking as a vertical bar chart image, one bar
// per entity in rank order. The canvas widens to fit every bar.
func WriteChartImage(w io.Writer, entities []domain.AggregatedEntity, format ImageFormat, width, height int) error {
	if len(entities) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(entities))
	for i, e := range entities {
		bars[i] = chart.Value{Value: float64(e.CrashCount), Label: e.Name}
	}

	if minWidth := len(bars)*(exportBarWidth+exportBarSpacing) + exportPadding; width < minWidth {
		width = minWidth
	}

	graph := chart.BarChart{
		Title:      "Car crashes by county",
		Width:      width,
		Height:     height,
		BarWidth:   exportBarWidth,
		BarSpacing: exportBarSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(entities[0].CrashCount)},
		},
		Bars: bars,
	}

	provider := chart.SVG
	if format == FormatPNG {
		provider = chart.PNG
	}
	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("render chart image: %w", err)
	}
	return nil
}
