package graphs

import (
	"context"
	"fmt"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// NewForestryGDP charts agriculture, forestry, fishing and hunting as a share
// of total GDP.
func NewForestryGDP(env *Env) *Unit {
	return newUnit(env, "forestry-gdp", "Forestry GDP Graph",
		[]dataset{gdpData}, runForestryGDP)
}

// industryGDP extracts the annual GDP rows of the industry table.
func industryGDP(ctx context.Context, u *Unit, sels ...dp.RowSelector) ([]dp.Series, error) {
	t, err := u.load(ctx, gdpData)
	if err != nil {
		return nil, err
	}
	out := make([]dp.Series, len(sels))
	for i, sel := range sels {
		if out[i], err = dp.Extract(t, sel, nil); err != nil {
			return nil, fmt.Errorf("gdp: %w", err)
		}
	}
	return out, nil
}

func runForestryGDP(ctx context.Context, u *Unit, out *exporter.Summary) error {
	rows, err := industryGDP(ctx, u, allIndustries, forestryRow)
	if err != nil {
		return err
	}
	total, forestry := rows[0], rows[1]
	share := dp.Ratio("forestry_share_pct", forestry, total, 100)

	sum, err := dp.Describe(share)
	if err != nil {
		return err
	}

	chart := charts.TimeSeries{
		Title: fmt.Sprintf("Agriculture, Forestry, Fishing and Hunting as %% of Total GDP (%s-%s)",
			sum.First.Period.Label(), sum.Last.Period.Label()),
		XLabel: "Year",
		YLabel: "Percentage of Total GDP (%)",
		XAxis:  charts.YearAxis,
		Lines:  []charts.Line{{XYs: charts.SeriesXYs(share, charts.YearAxis)}},
		References: []charts.Reference{{
			Label: fmt.Sprintf("Mean: %.2f%%", sum.Mean),
			Y:     sum.Mean,
			Style: charts.Style{Color: charts.Gray, Dashes: charts.Dashed, Alpha: 0.5},
		}},
	}
	if err := u.saveWith(ctx, u.env.Renderer.Sized(14, 7), chart, "forestry_gdp.png"); err != nil {
		return err
	}

	out.Section("Summary Statistics")
	out.Linef("Mean: %.2f%%", sum.Mean)
	out.Linef("Min: %.2f%% (Year %s)", sum.Min.Value, sum.Min.Period.Label())
	out.Linef("Max: %.2f%% (Year %s)", sum.Max.Value, sum.Max.Period.Label())
	out.Linef("Latest (%s): %.2f%%", sum.Last.Period.Label(), sum.Last.Value)

	return u.export(ctx, total, forestry, share)
}
