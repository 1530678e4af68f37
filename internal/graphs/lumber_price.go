package graphs

import (
	"context"
	"fmt"
	"time"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// priceYears are the years whose January value is reported.
var priceYears = []int{2003, 2004, 2005, 2010, 2015, 2018, 2019, 2020, 2021, 2022, 2023, 2024, 2025}

// NewLumberPrice charts the softwood lumber producer price index.
func NewLumberPrice(env *Env) *Unit {
	return newUnit(env, "lumber-price", "Lumber Price Graph",
		[]dataset{priceData}, runLumberPrice)
}

// loadPrices extracts one row of the industrial product price index table
// for each selector.
func loadPrices(ctx context.Context, u *Unit, sels ...dp.RowSelector) ([]dp.Series, error) {
	t, err := u.load(ctx, priceData)
	if err != nil {
		return nil, err
	}
	out := make([]dp.Series, len(sels))
	for i, sel := range sels {
		if out[i], err = dp.Extract(t, sel, nil); err != nil {
			return nil, fmt.Errorf("prices: %w", err)
		}
	}
	return out, nil
}

func runLumberPrice(ctx context.Context, u *Unit, out *exporter.Summary) error {
	rows, err := loadPrices(ctx, u, lumberPriceRow)
	if err != nil {
		return err
	}
	prices := dp.From(rows[0], seriesStart).WithName("lumber_price_index")
	sum, err := dp.Describe(prices)
	if err != nil {
		return err
	}

	chart := charts.TimeSeries{
		Title: fmt.Sprintf("Softwood Lumber Price Index in Canada (%d-%d)",
			sum.First.Period.Year, sum.Last.Period.Year),
		XLabel: "Year",
		YLabel: "Price Index (January 2020 = 100)",
		XAxis:  charts.TimeAxis,
		Lines: []charts.Line{{
			XYs:   charts.SeriesXYs(prices, charts.TimeAxis),
			Style: charts.Style{Width: 1.5, Alpha: 0.8},
		}},
	}
	if err := u.save(ctx, chart, "lumber_price_graph.png"); err != nil {
		return err
	}

	out.Section("Softwood Lumber Price Index Summary Statistics")
	out.Linef("Time Period: %s to %s", sum.First.Period.Label(), sum.Last.Period.Label())
	out.Linef("Mean Price Index: %.1f", sum.Mean)
	out.Linef("Maximum Price Index: %.1f (%s)", sum.Max.Value, sum.Max.Period.Label())
	out.Linef("Minimum Price Index: %.1f (%s)", sum.Min.Value, sum.Min.Period.Label())
	out.Linef("Latest: %.1f (%s)", sum.Last.Value, sum.Last.Period.Label())

	out.Section("Price Index by Year (January values)")
	for _, year := range priceYears {
		if v, ok := prices.Value(dp.Month(year, time.January)); ok {
			out.Linef("January %d: %.1f", year, v)
		}
	}

	return u.export(ctx, prices)
}
