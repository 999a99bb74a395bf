package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/crash-map/internal/domain"
	"github.com/couchcryptid/crash-map/internal/render"
	"github.com/couchcryptid/crash-map/internal/viewer"
)

const defaultImageHeight = 400

// DefaultOptions matches the configuration defaults.
func DefaultOptions() Options {
	return Options{DefaultWidth: 1200, MaxWidth: 4096, MaxImageHeight: 2048}
}

// Viewer is the set of views the server exposes.
type Viewer interface {
	sharedobs.ReadinessChecker
	Ranking(years domain.YearSet) (viewer.Ranking, error)
	Counties() []viewer.CountySummary
	Detail(id domain.FeatureID, years domain.YearSet) (domain.Detail, error)
	Locate(lon, lat float64) (viewer.CountySummary, bool)
	MapSVG(s viewer.State) ([]byte, error)
	ChartSVG(s viewer.State) ([]byte, error)
	ChartImage(s viewer.State, format render.ImageFormat, height int) ([]byte, error)
	Page(s viewer.State) ([]byte, error)
}

// Options bounds the sizes a request may ask for.
type Options struct {
	// DefaultWidth is the chart viewport width used when a request has none.
	DefaultWidth   int
	MaxWidth       int
	MaxImageHeight int
}

// Server exposes the crash map views alongside health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	views      Viewer
	opts       Options
	logger     *slog.Logger
}

// NewServer creates an HTTP server.
func NewServer(addr string, views Viewer, opts Options, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		views:  views,
		opts:   opts,
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /map.svg", s.handleMap)
	mux.HandleFunc("GET /chart.svg", s.handleChart)
	mux.HandleFunc("GET /chart.png", s.handleChartPNG)
	mux.HandleFunc("GET /api/ranking", s.handleRanking)
	mux.HandleFunc("GET /api/counties", s.handleCounties)
	mux.HandleFunc("GET /api/counties/{id}", s.handleCounty)
	mux.HandleFunc("GET /api/locate", s.handleLocate)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(views))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.serveState(w, r, "text/html; charset=utf-8", s.views.Page)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	s.serveState(w, r, render.FormatSVG.ContentType(), s.views.MapSVG)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	s.serveState(w, r, render.FormatSVG.ContentType(), s.views.ChartSVG)
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	height := defaultImageHeight
	if h := r.URL.Query().Get("height"); h != "" {
		n, err := viewer.ParseDimension("height", h, s.opts.MaxImageHeight)
		if err != nil {
			s.badRequest(w, err)
			return
		}
		height = n
	}

	s.serveState(w, r, render.FormatPNG.ContentType(), func(st viewer.State) ([]byte, error) {
		return s.views.ChartImage(st, render.FormatPNG, height)
	})
}

func (s *Server) serveState(w http.ResponseWriter, r *http.Request, contentType string, fn func(viewer.State) ([]byte, error)) {
	st, err := viewer.ParseState(r.URL.Query(), s.opts.DefaultWidth, s.opts.MaxWidth)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	body, err := fn(st)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck // client went away
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	years, err := yearsParam(r)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	ranking, err := s.views.Ranking(years)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

func (s *Server) handleCounties(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.views.Counties())
}

func (s *Server) handleCounty(w http.ResponseWriter, r *http.Request) {
	years, err := yearsParam(r)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	detail, err := s.views.Detail(domain.FeatureID(r.PathValue("id")), years)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	if err := errors.Join(errLon, errLat); err != nil {
		s.badRequest(w, errors.New("lon and lat must be numbers"))
		return
	}

	county, ok := s.views.Locate(lon, lat)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no county at point"})
		return
	}
	writeJSON(w, http.StatusOK, county)
}

// yearsParam reads the years filter. Absent means every catalogue year.
func yearsParam(r *http.Request) (domain.YearSet, error) {
	q := r.URL.Query()
	if !q.Has("years") {
		return domain.AllYears(), nil
	}
	return viewer.ParseYears(q.Get("years"))
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownFeature):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, render.ErrNoData):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
