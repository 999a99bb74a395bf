package viewer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/couchcryptid/crash-map/internal/domain"
)

// View selects which visualization is shown.
type View string

const (
	ViewMap   View = "map"
	ViewChart View = "chart"
)

// ParseView accepts "map", "chart", or the legacy "barChart" id. Empty means map.
func ParseView(s string) (View, error) {
	switch s {
	case "", string(ViewMap):
		return ViewMap, nil
	case string(ViewChart), "barChart":
		return ViewChart, nil
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}

// State is everything a rendered view depends on. It is a plain value:
// every transition returns a new State.
type State struct {
	View          View
	Years         domain.YearSet
	Selected      domain.FeatureID
	ViewportWidth int
}

// DefaultState shows the map over every catalogue year.
func DefaultState(viewportWidth int) State {
	return State{View: ViewMap, Years: domain.AllYears(), ViewportWidth: viewportWidth}
}

// WithView switches the visualization and clears the selection.
func (s State) WithView(v View) State {
	s.View = v
	s.Selected = ""
	return s
}

// ToggleYear adds or removes a year from the filter.
func (s State) ToggleYear(year string) State {
	s.Years = s.Years.Toggle(year)
	return s
}

// Select marks a county as hovered/selected.
func (s State) Select(id domain.FeatureID) State {
	s.Selected = id
	return s
}

// Query encodes the state as URL query parameters. Years is always present so
// an empty filter survives a round trip.
func (s State) Query() url.Values {
	q := url.Values{}
	q.Set("view", string(s.View))
	q.Set("years", s.Years.String())
	if s.Selected != "" {
		q.Set("selected", string(s.Selected))
	}
	if s.ViewportWidth > 0 {
		q.Set("width", strconv.Itoa(s.ViewportWidth))
	}
	return q
}

// Href is the page link for the state.
func (s State) Href() string {
	return "/?" + s.Query().Encode()
}

// ParseState decodes query parameters. A missing years parameter selects all
// catalogue years; an empty one selects none. Years outside the catalogue
// are rejected, as is a width outside [1, maxWidth].
func ParseState(q url.Values, defaultWidth, maxWidth int) (State, error) {
	view, err := ParseView(q.Get("view"))
	if err != nil {
		return State{}, err
	}

	years := domain.AllYears()
	if q.Has("years") {
		years, err = ParseYears(q.Get("years"))
		if err != nil {
			return State{}, err
		}
	}

	width := defaultWidth
	if w := q.Get("width"); w != "" {
		width, err = ParseDimension("width", w, maxWidth)
		if err != nil {
			return State{}, err
		}
	}

	return State{
		View:          view,
		Years:         years,
		Selected:      domain.FeatureID(q.Get("selected")),
		ViewportWidth: width,
	}, nil
}

// ParseDimension parses a pixel size in [1, limit].
func ParseDimension(name, s string, limit int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, s)
	}
	if n > limit {
		return 0, fmt.Errorf("invalid %s %d: exceeds maximum %d", name, n, limit)
	}
	return n, nil
}

// ParseYears parses a comma-separated list of catalogue years.
func ParseYears(s string) (domain.YearSet, error) {
	years := domain.NewYearSet(strings.Split(s, ",")...)
	catalogue := domain.AllYears()
	for _, y := range years {
		if !catalogue.Contains(y) {
			return nil, fmt.Errorf("unknown year %q", y)
		}
	}
	return years, nil
}

func (s State) cacheKey(kind string) string {
	return fmt.Sprintf("%s|%s|%s|%s|%d", kind, s.View, s.Years, s.Selected, s.ViewportWidth)
}
