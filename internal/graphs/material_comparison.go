package graphs

import (
	"context"
	"fmt"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// NewMaterialComparison charts lumber, steel and concrete prices as indices
// of their first common month.
func NewMaterialComparison(env *Env) *Unit {
	return newUnit(env, "material-comparison", "Material Comparison Graph",
		[]dataset{priceData}, runMaterialComparison)
}

type material struct {
	name   string
	legend string
	style  charts.Style
	raw    dp.Series
	index  dp.Series
}

func runMaterialComparison(ctx context.Context, u *Unit, out *exporter.Summary) error {
	rows, err := loadPrices(ctx, u, lumberPriceRow, steelPriceRow, concretePriceRow)
	if err != nil {
		return err
	}
	aligned := dp.Align(rows...)
	materials := []*material{
		{name: "Lumber", legend: "Softwood Lumber"},
		{name: "Steel", legend: "Fabricated Steel", style: charts.Style{Color: charts.Gray, Dashes: charts.Dashed}},
		{name: "Concrete", legend: "Ready-Mixed Concrete", style: charts.Style{Color: charts.LightGray, Dashes: charts.Dotted}},
	}
	for i, m := range materials {
		m.raw = dp.From(aligned[i], seriesStart).WithName(m.name)
		if m.raw.IsEmpty() {
			return apperrors.InsufficientData("material prices share no months since " + seriesStart.Label())
		}
		if m.index, err = dp.RebaseFirst(m.raw); err != nil {
			return err
		}
		m.index = m.index.WithName(m.name + "_index")
	}

	base := materials[0].raw.First().Period.Label()
	latest := materials[0].raw.Last().Period.Label()

	chart := charts.TimeSeries{
		Title:  fmt.Sprintf("Construction Material Price Indices (%s=100)", base),
		XLabel: "Year",
		YLabel: fmt.Sprintf("Price Index (%s = 100)", base),
		XAxis:  charts.TimeAxis,
		References: []charts.Reference{
			indexBase(charts.Style{Dashes: charts.Dotted, Width: 1, Alpha: 0.5}),
		},
	}
	for _, m := range materials {
		chart.Lines = append(chart.Lines, charts.Line{
			Label: m.legend,
			XYs:   charts.SeriesXYs(m.index, charts.TimeAxis),
			Style: m.style,
		})
	}
	if err := u.save(ctx, chart, "material_comparison.png"); err != nil {
		return err
	}

	out.Section("Construction Material Price Index Comparison")
	out.Linef("Time Period: %s to %s", base, latest)
	out.Linef("Base Month: %s (Index = 100)", base)

	out.Heading("Base Month Values (Index Points):")
	for _, m := range materials {
		out.Linef("  %s: %.1f", m.name, m.raw.First().Value)
	}
	out.Heading(fmt.Sprintf("Latest Index Values (%s):", latest))
	for _, m := range materials {
		out.Linef("  %s: %.1f", m.name, m.index.Last().Value)
	}
	out.Heading("Total Change Since Base Month:")
	for _, m := range materials {
		out.Linef("  %s: %+.1f percentage points", m.name, m.index.Last().Value-100)
	}
	out.Heading("Peak Index Values:")
	for _, m := range materials {
		sum, err := dp.Describe(m.index)
		if err != nil {
			return err
		}
		out.Linef("  %s: %.1f (%s)", m.name, sum.Max.Value, sum.Max.Period.Label())
	}
	out.Heading(fmt.Sprintf("Average Annual Growth Rate (%d-%d):",
		materials[0].raw.First().Period.Year, materials[0].raw.Last().Period.Year))
	for _, m := range materials {
		rate, err := dp.CAGR(m.index)
		if err != nil {
			out.Linef("  %s: n/a", m.name)
			continue
		}
		out.Linef("  %s: %.2f%% per year", m.name, rate)
	}

	series := make([]dp.Series, 0, 2*len(materials))
	for _, m := range materials {
		series = append(series, m.raw, m.index)
	}
	return u.export(ctx, series...)
}
