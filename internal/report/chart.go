package report

import (
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	chartWidth   = 960
	chartHeight  = 420
	chartPadding = 48
)

var palette = []string{"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e", "#9467bd", "#8c564b", "#e377c2", "#17becf"}

// ChartSeries is one named line on a chart.
type ChartSeries struct {
	Name   string
	Points []Point
}

type chartLine struct {
	Name   string
	Color  string
	Points string
	Last   string
}

type chartPage struct {
	Title  string
	Width  int
	Height int
	Pad    int
	Bottom int
	Right  int
	Top    string
	Low    string
	From   string
	To     string
	Lines  []chartLine
}

var chartTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.axis { stroke: #888; stroke-width: 1; }
.legend td { padding: 0 1em 0 0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}">
<line class="axis" x1="{{.Pad}}" y1="{{.Pad}}" x2="{{.Pad}}" y2="{{.Bottom}}"/>
<line class="axis" x1="{{.Pad}}" y1="{{.Bottom}}" x2="{{.Right}}" y2="{{.Bottom}}"/>
<text x="4" y="{{.Pad}}" font-size="11">{{.Top}}</text>
<text x="4" y="{{.Bottom}}" font-size="11">{{.Low}}</text>
<text x="{{.Pad}}" y="{{.Height}}" font-size="11">{{.From}}</text>
<text x="{{.Right}}" y="{{.Height}}" font-size="11" text-anchor="end">{{.To}}</text>
{{range .Lines}}<polyline fill="none" stroke="{{.Color}}" stroke-width="1.5" points="{{.Points}}"/>
{{end}}</svg>
<table class="legend">
{{range .Lines}}<tr><td><svg width="10" height="10"><rect width="10" height="10" fill="{{.Color}}"/></svg> {{.Name}}</td><td>{{.Last}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// WriteChart renders an HTML page with an SVG line chart of each series.
// All series share one scale.
func WriteChart(w io.Writer, title, symbol string, series ...ChartSeries) error {
	page := chartPage{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Pad:    chartPadding,
		Bottom: chartHeight - chartPadding,
		Right:  chartWidth - chartPadding,
	}

	lo, hi, longest := bounds(series)
	n := len(longest)
	if n > 0 {
		page.Top = FormatAmount(decimal.NewFromFloat(hi), symbol)
		page.Low = FormatAmount(decimal.NewFromFloat(lo), symbol)
		page.From = longest[0].Date.Format(dateFormat)
		page.To = longest[n-1].Date.Format(dateFormat)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)

	for i, s := range series {
		coords := make([]string, 0, len(s.Points))
		for j, p := range s.Points {
			x := float64(chartPadding)
			if n > 1 {
				x += float64(j) * plotW / float64(n-1)
			}
			y := float64(chartPadding) + (hi-p.Balance.InexactFloat64())/span*plotH
			coords = append(coords, strconv.FormatFloat(x, 'f', 1, 64)+","+strconv.FormatFloat(y, 'f', 1, 64))
		}
		line := chartLine{
			Name:   s.Name,
			Color:  palette[i%len(palette)],
			Points: strings.Join(coords, " "),
		}
		if len(s.Points) > 0 {
			line.Last = FormatAmount(s.Points[len(s.Points)-1].Balance, symbol)
		}
		page.Lines = append(page.Lines, line)
	}

	if err := chartTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// bounds returns the smallest and largest balance over every series and the
// longest series.
func bounds(series []ChartSeries) (lo, hi float64, longest []Point) {
	seen := false
	for _, s := range series {
		if len(s.Points) > len(longest) {
			longest = s.Points
		}
		for _, p := range s.Points {
			v := p.Balance.InexactFloat64()
			if !seen {
				lo, hi, seen = v, v, true
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi, longest
}
