package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
)

// FitLine is a fitted straight line y = Intercept + Slope*x drawn across the
// x range of the points.
type FitLine struct {
	Label     string
	Slope     float64
	Intercept float64
	Style     Style
}

// Scatter plots points with an optional fitted line and reference lines.
type Scatter struct {
	Title  string
	XLabel string
	YLabel string
	XAxis  Axis

	Points     plotter.XYs
	Fit        *FitLine
	References []Reference
}

// Plot builds the chart.
func (s Scatter) Plot() (*plot.Plot, error) {
	if len(s.Points) == 0 {
		return nil, fmt.Errorf("scatter %q has no points", s.Title)
	}

	p := newPlot(s.Title, s.XLabel, s.YLabel)
	applyXAxis(p, s.XAxis)
	p.Add(newGrid(true, true))

	sc, err := plotter.NewScatter(s.Points)
	if err != nil {
		return nil, fmt.Errorf("scatter %q: %w", s.Title, err)
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(4)
	sc.GlyphStyle.Color = Translucent(Black, 0.6)
	p.Add(sc)

	if s.Fit != nil {
		xmin, xmax, _, _ := plotter.XYRange(s.Points)
		fit := *s.Fit
		line, err := plotter.NewLine(plotter.XYs{
			{X: xmin, Y: fit.Intercept + fit.Slope*xmin},
			{X: xmax, Y: fit.Intercept + fit.Slope*xmax},
		})
		if err != nil {
			return nil, fmt.Errorf("fit line: %w", err)
		}
		style := fit.Style
		if style.Color == nil {
			style = Style{Color: Gray, Dashes: Dashed}
		}
		line.LineStyle = style.lineStyle()
		p.Add(line)
		if fit.Label != "" {
			p.Legend.Add(fit.Label, line)
		}
	}

	addReferences(p, s.References)
	return p, nil
}

// ResidualPlot charts regression residuals over time against a dashed zero
// line.
func ResidualPlot(title, yLabel string, residuals dataprocessing.Series) Scatter {
	return Scatter{
		Title:  title,
		XLabel: "Year",
		YLabel: yLabel,
		XAxis:  YearAxis,
		Points: SeriesXYs(residuals, YearAxis),
		References: []Reference{
			{Y: 0, Style: Style{Color: Gray, Dashes: Dashed}},
		},
	}
}
