package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// Line is one plotted series.
type Line struct {
	Label string
	XYs   plotter.XYs
	Style Style
}

// LegendPosition places the legend inside the plot area.
type LegendPosition int

const (
	LegendTopRight LegendPosition = iota
	LegendTopLeft
	LegendBottomRight
	LegendBottomLeft
)

// TimeSeries is a line chart of one or more series with optional event
// markers, shaded spans and horizontal reference lines.
type TimeSeries struct {
	Title  string
	XLabel string
	YLabel string
	XAxis  Axis

	Lines      []Line
	Markers    []Marker
	Spans      []Span
	References []Reference

	// YTickFormat relabels the y axis, e.g. "$1.5B".
	YTickFormat func(float64) string
	Legend      LegendPosition
}

// Plot builds the chart. Markers and spans that lie entirely outside the
// range of the lines are left out, legend entry included.
func (ts TimeSeries) Plot() (*plot.Plot, error) {
	if len(ts.Lines) == 0 {
		return nil, fmt.Errorf("time series %q has no lines", ts.Title)
	}

	p := newPlot(ts.Title, ts.XLabel, ts.YLabel)
	applyXAxis(p, ts.XAxis)
	applyYFormat(p, ts.YTickFormat)
	p.Add(newGrid(true, true))

	xmin, xmax := math.Inf(1), math.Inf(-1)
	for _, l := range ts.Lines {
		if len(l.XYs) == 0 {
			return nil, fmt.Errorf("line %q has no points", l.Label)
		}
		lo, hi, _, _ := plotter.XYRange(l.XYs)
		xmin, xmax = math.Min(xmin, lo), math.Max(xmax, hi)
	}

	// Spans go first so they sit behind the data.
	for _, s := range ts.Spans {
		if s.To < xmin || s.From > xmax {
			continue
		}
		span := newVSpan(s)
		p.Add(span)
		if s.Label != "" {
			p.Legend.Add(s.Label, span)
		}
	}

	for _, l := range ts.Lines {
		line, err := plotter.NewLine(l.XYs)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", l.Label, err)
		}
		line.LineStyle = l.Style.lineStyle()
		p.Add(line)
		if l.Label != "" {
			p.Legend.Add(l.Label, line)
		}
	}

	for _, m := range ts.Markers {
		if m.X < xmin || m.X > xmax {
			continue
		}
		v := vline{x: m.X, style: m.Style.lineStyle()}
		p.Add(v)
		if m.Label != "" {
			p.Legend.Add(m.Label, v)
		}
	}

	addReferences(p, ts.References)
	placeLegend(p, ts.Legend)

	return p, nil
}

func placeLegend(p *plot.Plot, pos LegendPosition) {
	switch pos {
	case LegendTopLeft:
		p.Legend.Top, p.Legend.Left = true, true
	case LegendBottomRight:
		p.Legend.Top, p.Legend.Left = false, false
	case LegendBottomLeft:
		p.Legend.Top, p.Legend.Left = false, true
	default:
		p.Legend.Top, p.Legend.Left = true, false
	}
}
