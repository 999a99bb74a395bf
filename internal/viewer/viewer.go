// Package viewer is the presentation layer over the crash-count transforms.
// It holds the index and projection built once at startup and recomputes
// every view from an explicit State; rendered output is memoized per state.
package viewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"

	"github.com/couchcryptid/crash-map/internal/domain"
	"github.com/couchcryptid/crash-map/internal/observability"
	"github.com/couchcryptid/crash-map/internal/render"
)

const (
	pageTitle    = "Car Crashes in Washington DC"
	pageSubtitle = "By Neighborhood, from 2010 - 2014"
)

// Options configures a Viewer.
type Options struct {
	MapSize   int
	CacheSize int
	// Clock stamps ranking responses. Nil uses the real clock.
	Clock clockwork.Clock
}

// Viewer renders the map, chart, and page views.
type Viewer struct {
	index   *domain.FeatureIndex
	proj    *domain.Projection
	mapSize int
	cache   *renderCache
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Build indexes the features, derives the map projection, and returns a
// Viewer over them.
func Build(features []domain.Feature, popts domain.ProjectionOptions, opts Options, logger *slog.Logger, metrics *observability.Metrics) (*Viewer, error) {
	index, err := domain.IndexFeatures(features)
	if err != nil {
		return nil, fmt.Errorf("index features: %w", err)
	}
	proj, err := domain.BuildProjection(index, popts)
	if err != nil {
		return nil, fmt.Errorf("build projection: %w", err)
	}

	logger.Info("dataset indexed",
		"features", index.Len(),
		"center_lon", proj.Center[0],
		"center_lat", proj.Center[1],
		"bounds_mode", popts.Bounds.String(),
	)
	return New(index, proj, opts, logger, metrics), nil
}

// New creates a Viewer over an already built index and projection.
func New(index *domain.FeatureIndex, proj *domain.Projection, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Viewer {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	metrics.DatasetFeatures.Set(float64(index.Len()))

	return &Viewer{
		index:   index,
		proj:    proj,
		mapSize: opts.MapSize,
		cache:   newRenderCache(opts.CacheSize),
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness reports whether a non-empty dataset is loaded.
func (v *Viewer) CheckReadiness(_ context.Context) error {
	if v.index.Len() == 0 {
		return errors.New("no dataset loaded")
	}
	return nil
}

// Ranking is one aggregation result.
type Ranking struct {
	GeneratedAt time.Time                 `json:"generated_at"`
	Years       domain.YearSet            `json:"years"`
	Entities    []domain.AggregatedEntity `json:"entities"`
}

// Ranking aggregates crash counts over years.
func (v *Viewer) Ranking(years domain.YearSet) (Ranking, error) {
	entities, err := v.aggregate(years)
	if err != nil {
		return Ranking{}, err
	}
	if years == nil {
		years = domain.YearSet{}
	}
	return Ranking{
		GeneratedAt: v.clock.Now().UTC(),
		Years:       years,
		Entities:    entities,
	}, nil
}

func (v *Viewer) aggregate(years domain.YearSet) ([]domain.AggregatedEntity, error) {
	start := time.Now()
	entities, err := domain.Aggregate(v.index, years)
	if err != nil {
		return nil, err
	}
	v.metrics.Aggregations.Inc()
	v.metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	return entities, nil
}

// CountySummary is one entry of the county list.
type CountySummary struct {
	ID   domain.FeatureID `json:"id"`
	Name string           `json:"name"`
}

// Counties lists every county in index order.
func (v *Viewer) Counties() []CountySummary {
	features := v.index.Features()
	out := make([]CountySummary, len(features))
	for i, f := range features {
		out[i] = CountySummary{ID: f.ID, Name: f.Name}
	}
	return out
}

// Detail returns the per-year breakdown for one county.
func (v *Viewer) Detail(id domain.FeatureID, years domain.YearSet) (domain.Detail, error) {
	return domain.CountyDetail(v.index, id, years)
}

// Locate returns the county containing the lon/lat point.
func (v *Viewer) Locate(lon, lat float64) (CountySummary, bool) {
	f, ok := domain.Locate(v.index, orb.Point{lon, lat})
	if !ok {
		return CountySummary{}, false
	}
	return CountySummary{ID: f.ID, Name: f.Name}, true
}

// MapSVG renders the choropleth map for the state.
func (v *Viewer) MapSVG(s State) ([]byte, error) {
	return v.cachedRender("map", s.cacheKey("map"), func(buf *bytes.Buffer) error {
		if err := v.checkSelected(s); err != nil {
			return err
		}
		data, err := v.mapData(s)
		if err != nil {
			return err
		}
		return render.WriteMap(buf, data)
	})
}

// ChartSVG renders the ranked bar chart for the state.
func (v *Viewer) ChartSVG(s State) ([]byte, error) {
	return v.cachedRender("chart", s.cacheKey("chart"), func(buf *bytes.Buffer) error {
		if err := v.checkSelected(s); err != nil {
			return err
		}
		data, err := v.chartData(s)
		if err != nil {
			return err
		}
		return render.WriteChart(buf, data)
	})
}

// ChartImage exports the ranking as an SVG or PNG chart image.
func (v *Viewer) ChartImage(s State, format render.ImageFormat, height int) ([]byte, error) {
	key := s.cacheKey("image") + "|" + string(format) + "|" + fmt.Sprint(height)
	return v.cachedRender("image", key, func(buf *bytes.Buffer) error {
		entities, err := v.aggregate(s.Years)
		if err != nil {
			return err
		}
		return render.WriteChartImage(buf, entities, format, s.ViewportWidth, height)
	})
}

// Page renders the full HTML page: controls, detail panel, and active view.
func (v *Viewer) Page(s State) ([]byte, error) {
	return v.cachedRender("page", s.cacheKey("page"), func(buf *bytes.Buffer) error {
		if err := v.checkSelected(s); err != nil {
			return err
		}
		data, err := v.pageData(s)
		if err != nil {
			return err
		}
		return render.WritePage(buf, data)
	})
}

func (v *Viewer) checkSelected(s State) error {
	if s.Selected == "" {
		return nil
	}
	if _, ok := v.index.Get(s.Selected); !ok {
		return fmt.Errorf("selected county %q: %w", s.Selected, domain.ErrUnknownFeature)
	}
	return nil
}

func (v *Viewer) mapData(s State) (render.MapData, error) {
	entities, err := v.aggregate(s.Years)
	if err != nil {
		return render.MapData{}, err
	}

	counts := make(map[domain.FeatureID]int, len(entities))
	scale := render.ColorScale{}
	if len(entities) > 0 {
		scale.Max = entities[0].CrashCount
	}
	for _, e := range entities {
		counts[e.ID] = e.CrashCount
	}

	features := v.index.Features()
	data := render.MapData{Size: v.mapSize, Paths: make([]render.MapPath, len(features))}
	for i, f := range features {
		count := counts[f.ID]
		data.Paths[i] = render.MapPath{
			ID:       string(f.ID),
			Name:     f.Name,
			D:        v.proj.Path(f),
			Fill:     render.Hex(scale.Color(count)),
			Count:    count,
			Selected: f.ID == s.Selected,
			Href:     s.Select(f.ID).Href(),
		}
	}
	return data, nil
}

func (v *Viewer) chartData(s State) (render.ChartData, error) {
	entities, err := v.aggregate(s.Years)
	if err != nil {
		return render.ChartData{}, err
	}
	return render.ChartData{
		Layout:   render.LayoutChart(entities, float64(s.ViewportWidth)),
		Selected: string(s.Selected),
		Href: func(id string) string {
			return s.Select(domain.FeatureID(id)).Href()
		},
	}, nil
}

func (v *Viewer) pageData(s State) (render.PageData, error) {
	data := render.PageData{
		Title:    pageTitle,
		Subtitle: pageSubtitle,
		Views: []render.Link{
			{Label: "Map View", Href: s.WithView(ViewMap).Href(), Active: s.View == ViewMap},
			{Label: "Bar Chart View", Href: s.WithView(ViewChart).Href(), Active: s.View == ViewChart},
		},
		Dropdown: render.DropdownPrompt,
	}

	for _, y := range domain.Years {
		data.Years = append(data.Years, render.Link{
			Label:  y,
			Href:   s.ToggleYear(y).Href(),
			Active: s.Years.Contains(y),
		})
	}

	if s.View == ViewMap {
		data.Heading = render.MapPrompt
		for _, c := range v.Counties() {
			data.Counties = append(data.Counties, render.Link{
				Label:  c.Name,
				Href:   s.Select(c.ID).Href(),
				Active: c.ID == s.Selected,
			})
		}
	} else {
		data.Heading = render.ChartPrompt
	}

	if s.Selected != "" {
		d, err := v.Detail(s.Selected, s.Years)
		if err != nil {
			return render.PageData{}, err
		}
		data.Heading = d.Label
		if s.View == ViewMap {
			data.Dropdown = d.Label
		}
		for _, yc := range d.Years {
			data.Detail = append(data.Detail, render.DetailRow{Year: yc.Year, Count: yc.Count, Shown: yc.Selected})
		}
	}

	var view bytes.Buffer
	switch s.View {
	case ViewChart:
		chart, err := v.chartData(s)
		if err != nil {
			return render.PageData{}, err
		}
		if len(chart.Layout.Bars) > 0 {
			if err := render.WriteChart(&view, chart); err != nil {
				return render.PageData{}, err
			}
		}
	default:
		m, err := v.mapData(s)
		if err != nil {
			return render.PageData{}, err
		}
		if err := render.WriteMap(&view, m); err != nil {
			return render.PageData{}, err
		}
	}
	// The view was produced by our own escaping templates.
	data.View = template.HTML(view.String())
	return data, nil
}

// cachedRender serves key from the cache or renders it with fn.
func (v *Viewer) cachedRender(view, key string, fn func(*bytes.Buffer) error) ([]byte, error) {
	if body, ok := v.cache.get(key); ok {
		v.metrics.RenderCache.WithLabelValues("hit").Inc()
		v.metrics.Renders.WithLabelValues(view, "success").Inc()
		return body, nil
	}
	v.metrics.RenderCache.WithLabelValues("miss").Inc()

	start := time.Now()
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		v.metrics.Renders.WithLabelValues(view, "error").Inc()
		return nil, err
	}
	v.metrics.RenderDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
	v.metrics.Renders.WithLabelValues(view, "success").Inc()

	body := buf.Bytes()
	v.cache.put(key, body)
	v.logger.Debug("view rendered", "view", view, "key", key, "bytes", len(body))
	return body, nil
}
