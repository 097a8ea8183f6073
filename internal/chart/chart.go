// Package chart renders report results to standalone HTML files using
// go-echarts. Three shapes are supported: bar (optionally with per-item
// colors), pie, and line.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Kind selects the chart shape for a report query.
type Kind string

const (
	KindBar  Kind = "bar"
	KindPie  Kind = "pie"
	KindLine Kind = "line"
)

// PlatformColors fixes the bar colors of the all-time top-ranked chart.
var PlatformColors = map[string]string{
	"Wii":     "blue",
	"NES":     "green",
	"Gameboy": "red",
	"DS":      "purple",
	"Mobile":  "orange",
	"Switch":  "yellow",
}

// PlatformColorsSince2010 fixes the bar colors of the since-2010 chart.
var PlatformColorsSince2010 = map[string]string{
	"PS3":  "blue",
	"X360": "green",
	"PS4":  "red",
	"DS":   "purple",
	"3DS":  "orange",
}

// Bar writes a bar chart. colors may be nil or shorter than values; items
// without a color (or with an empty one) keep the theme default.
func Bar(w io.Writer, title string, categories []string, values []float64, colors []string) error {
	if len(categories) != len(values) {
		return fmt.Errorf("bar chart: %d categories vs %d values", len(categories), len(values))
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
		if i < len(colors) && colors[i] != "" {
			data[i].ItemStyle = &opts.ItemStyle{Color: colors[i]}
		}
	}
	bar.SetXAxis(categories).AddSeries(title, data)
	return bar.Render(w)
}

// Pie writes a pie chart of name/value slices.
func Pie(w io.Writer, title string, names []string, values []float64) error {
	if len(names) != len(values) {
		return fmt.Errorf("pie chart: %d names vs %d values", len(names), len(values))
	}
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	data := make([]opts.PieData, len(values))
	for i, v := range values {
		data[i] = opts.PieData{Name: names[i], Value: v}
	}
	pie.AddSeries(title, data)
	return pie.Render(w)
}

// Line writes a line chart over the given x labels.
func Line(w io.Writer, title string, x []string, values []float64) error {
	if len(x) != len(values) {
		return fmt.Errorf("line chart: %d labels vs %d values", len(x), len(values))
	}
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	line.SetXAxis(x).AddSeries(title, data)
	return line.Render(w)
}
