package render

import (
	"fmt"
	"html/template"
	"io"
)

// Prompts shown when nothing is selected.
const (
	MapPrompt      = "Hover over the map..."
	ChartPrompt    = "Hover over the chart..."
	DropdownPrompt = "Select a county..."
)

// Link is a labeled navigation target.
type Link struct {
	Label  string
	Href   string
	Active bool
}

// DetailRow is one year line in the county detail panel.
type DetailRow struct {
	Year  string
	Count int
	Shown bool
}

// PageData is everything WritePage needs. View holds the already rendered
// SVG for the active view.
type PageData struct {
	Title    string
	Subtitle string
	Views    []Link
	Years    []Link
	Counties []Link // only populated for the map view
	Dropdown string
	Heading  string
	Detail   []DetailRow
	View     template.HTML
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 1rem; }
.controls { float: right; width: 16rem; }
.controls a { display: inline-block; margin: 2px; padding: 2px 6px; border: 1px solid #17a2b8; color: #17a2b8; text-decoration: none; }
.controls a.active { background: #17a2b8; color: #fff; }
.counties a { display: block; border: none; }
.selected { stroke: #222; }
</style>
</head>
<body>
<div class="header"><h3>{{.Title}}</h3><div>{{.Subtitle}}</div></div>
<div class="controls">
<div class="views">{{range .Views}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}</div>
<div class="years">{{range .Years}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}</div>
{{if .Counties}}<details class="counties"><summary>{{.Dropdown}}</summary>{{range .Counties}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}</details>{{end}}
<div class="detail"><p><strong>{{.Heading}}</strong></p>
{{range .Detail}}<div>{{if .Shown}}Crashes in {{.Year}}: {{.Count}}{{end}}</div>
{{end}}</div>
</div>
<div class="view">{{.View}}</div>
</body>
</html>
`))

// WritePage writes the full HTML page.
func WritePage(w io.Writer, data PageData) error {
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
