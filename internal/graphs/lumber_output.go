package graphs

import (
	"context"
	"fmt"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// NewLumberOutput charts monthly lumber production with the softwood lumber
// agreement and market events marked.
func NewLumberOutput(env *Env) *Unit {
	return newUnit(env, "lumber-output", "Lumber Output Graph",
		[]dataset{outputOldData, outputNewData}, runLumberOutput)
}

// loadProduction merges the discontinued and current production tables.
// The current table wins where the two overlap.
func loadProduction(ctx context.Context, u *Unit) (dp.Series, error) {
	var parts [2]dp.Series
	for i, d := range []dataset{outputOldData, outputNewData} {
		t, err := u.load(ctx, d)
		if err != nil {
			return dp.Series{}, err
		}
		if parts[i], err = dp.Extract(t, productionRow, nil); err != nil {
			return dp.Series{}, fmt.Errorf("%s: %w", d.Path, err)
		}
	}
	return dp.Merge(parts[0], parts[1]).WithName("production"), nil
}

func runLumberOutput(ctx context.Context, u *Unit, out *exporter.Summary) error {
	production, err := loadProduction(ctx, u)
	if err != nil {
		return err
	}
	production = dp.From(production, seriesStart)
	sum, err := dp.Describe(production)
	if err != nil {
		return err
	}

	chart := charts.TimeSeries{
		Title: fmt.Sprintf("Total Lumber Production in Canada (%d-%d)",
			sum.First.Period.Year, sum.Last.Period.Year),
		XLabel: "Year",
		YLabel: "Production (thousands of cubic metres)",
		XAxis:  charts.TimeAxis,
		Lines: []charts.Line{{
			XYs:   charts.SeriesXYs(production, charts.TimeAxis),
			Style: charts.Style{Width: 1.5, Alpha: 0.8},
		}},
		Markers: []charts.Marker{slaStart, slaEnd, trumpElected},
		Spans:   []charts.Span{financialCrisis},
		Legend:  charts.LegendTopRight,
	}
	if err := u.save(ctx, chart, "lumber_output_graph.png"); err != nil {
		return err
	}

	out.Section("Lumber Production Summary Statistics")
	out.Linef("Time Period: %s to %s", sum.First.Period.Label(), sum.Last.Period.Label())
	out.Linef("Mean Production: %s thousand cubic metres", out.Num(sum.Mean, 0))
	out.Linef("Maximum Production: %s thousand cubic metres (%s)", out.Num(sum.Max.Value, 0), sum.Max.Period.Label())
	out.Linef("Minimum Production: %s thousand cubic metres (%s)", out.Num(sum.Min.Value, 0), sum.Min.Period.Label())
	out.Linef("Latest (most recent): %s thousand cubic metres (%s)", out.Num(sum.Last.Value, 0), sum.Last.Period.Label())

	annual := dp.AggregateByYear(production, dp.Mean)
	out.Section("Annual Average Production")
	for _, p := range annual.Points() {
		out.Linef("%d: %s thousand cubic metres", p.Period.Year, out.Num(p.Value, 0))
	}

	return u.export(ctx, production)
}
