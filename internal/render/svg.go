package render

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
)

// MapPath is one county outline on the map.
type MapPath struct {
	ID       string
	Name     string
	D        string
	Fill     string
	Count    int
	Selected bool
	Href     string
}

// MapData is everything WriteMap needs.
type MapData struct {
	Size  int
	Paths []MapPath
}

// ChartData is everything WriteChart needs.
type ChartData struct {
	Layout   ChartLayout
	Selected string
	// Href returns the link for a bar; nil disables links.
	Href func(id string) string
}

var funcs = template.FuncMap{
	"num": formatNum,
	"add": func(a, b float64) float64 { return a + b },
	"half": func(v float64) float64 {
		return v / 2
	},
}

var mapTmpl = template.Must(template.New("map").Funcs(funcs).Parse(
	`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Size}}" height="{{.Size}}" viewBox="0 0 {{.Size}} {{.Size}}">` +
		`<g class="map" fill-rule="evenodd" stroke="#ffffff" stroke-width="1">` +
		`{{range .Paths}}` +
		`{{if .Href}}<a href="{{.Href}}">{{end}}` +
		`<path id="county-{{.ID}}" d="{{.D}}" fill="{{.Fill}}"{{if .Selected}} class="selected" stroke="#222222" stroke-width="2"{{end}}>` +
		`<title>{{.Name}}: {{.Count}}</title></path>` +
		`{{if .Href}}</a>{{end}}` +
		`{{end}}</g></svg>`))

var chartTmpl = template.Must(template.New("chart").Funcs(funcs).Parse(
	`{{$l := .Layout}}{{$sel := .Selected}}{{$href := .Href}}` +
		`<svg xmlns="http://www.w3.org/2000/svg" id="barChartSvg" width="{{num $l.Width}}" height="{{num $l.Height}}">` +
		`<g id="axes" transform="translate({{num $l.Margins.Left}}, {{num $l.Margins.Top}})">` +
		`<g class="x-axis" transform="translate(0, {{num $l.PlotHeight}})">` +
		`<line x1="0" x2="{{num $l.PlotWidth}}" y1="0" y2="0" stroke="#000000"/>` +
		`{{range $l.Ticks}}<g transform="translate({{num .X}}, 0)"><line y2="6" stroke="#000000"/>` +
		`<text y="9" dy="0.71em" text-anchor="middle" font-size="10">{{num .Value}}</text></g>{{end}}` +
		`</g>` +
		`<g class="y-axis">` +
		`{{range $l.Bars}}<text x="-6" y="{{num (add .Y (half .Height))}}" dy="0.32em" text-anchor="end" font-size="10">{{.Name}}</text>{{end}}` +
		`</g></g>` +
		`<g id="bars" transform="translate({{num $l.Margins.Left}}, {{num $l.Margins.Top}})">` +
		`{{range $l.Bars}}{{$id := printf "%s" .ID}}` +
		`{{if $href}}<a href="{{call $href $id}}">{{end}}` +
		`<rect id="bar-{{$id}}" x="{{num .X}}" y="{{num .Y}}" width="{{num .Width}}" height="{{num .Height}}"` +
		`{{if eq $id $sel}} class="selected" fill="#b30000"{{else}} fill="#4682b4"{{end}}>` +
		`<title>{{.Name}}: {{.CrashCount}}</title></rect>` +
		`{{if $href}}</a>{{end}}` +
		`{{end}}</g></svg>`))

// WriteMap writes the choropleth map as a standalone SVG document.
func WriteMap(w io.Writer, data MapData) error {
	if err := mapTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return nil
}

// WriteChart writes the ranked bar chart as a standalone SVG document.
func WriteChart(w io.Writer, data ChartData) error {
	if err := chartTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func formatNum(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
