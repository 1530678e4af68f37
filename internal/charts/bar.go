package charts

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Bar is a horizontal bar chart with the value printed after each bar.
// Categories are drawn bottom to top in the order given.
type Bar struct {
	Title  string
	XLabel string
	YLabel string

	Categories []string
	Values     []float64
	Color      color.Color

	// ValueFormat renders the label printed after each bar.
	ValueFormat func(float64) string
	// XTickFormat relabels the value axis.
	XTickFormat func(float64) string
}

// Plot builds the chart. The value axis starts at zero and leaves 15% head
// room for the labels.
func (b Bar) Plot() (*plot.Plot, error) {
	if len(b.Values) == 0 {
		return nil, fmt.Errorf("bar chart %q has no values", b.Title)
	}
	if len(b.Categories) != len(b.Values) {
		return nil, fmt.Errorf("bar chart %q: %d categories for %d values",
			b.Title, len(b.Categories), len(b.Values))
	}

	p := newPlot(b.Title, b.XLabel, b.YLabel)
	p.Add(newGrid(true, false))

	bars, err := plotter.NewBarChart(plotter.Values(b.Values), vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("bar chart %q: %w", b.Title, err)
	}
	bars.Horizontal = true
	bars.Color = b.Color
	if bars.Color == nil {
		bars.Color = Black
	}
	bars.LineStyle.Color = Black
	bars.LineStyle.Width = vg.Points(1)
	p.Add(bars)
	p.NominalY(b.Categories...)

	peak := 0.0
	for _, v := range b.Values {
		peak = max(peak, v)
	}
	p.X.Min = 0
	p.X.Max = peak * 1.15

	if b.XTickFormat != nil {
		p.X.Tick.Marker = formatTicks{ticker: plot.DefaultTicks{}, format: b.XTickFormat}
	}

	if b.ValueFormat != nil {
		xys := make(plotter.XYs, len(b.Values))
		text := make([]string, len(b.Values))
		for i, v := range b.Values {
			xys[i] = plotter.XY{X: v + peak*0.02, Y: float64(i)}
			text[i] = b.ValueFormat(v)
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
		if err != nil {
			return nil, fmt.Errorf("bar labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = draw.XLeft
			labels.TextStyle[i].YAlign = draw.YCenter
			labels.TextStyle[i].Font.Size = TickSize
		}
		p.Add(labels)
	}

	return p, nil
}
