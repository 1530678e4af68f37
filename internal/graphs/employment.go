package graphs

import (
	"context"
	"fmt"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// NewEmployment charts annual employment in sawmills and wood preservation.
func NewEmployment(env *Env) *Unit {
	return newUnit(env, "employment", "Employment Graph",
		[]dataset{employmentData}, runEmployment)
}

// loadEmployment extracts the annual sawmill employment series.
func loadEmployment(ctx context.Context, u *Unit) (dp.Series, error) {
	t, err := u.load(ctx, employmentData)
	if err != nil {
		return dp.Series{}, err
	}
	s, err := dp.Extract(t, sawmillRow, nil)
	if err != nil {
		return dp.Series{}, fmt.Errorf("sawmill employment: %w", err)
	}
	return s.WithName("employment"), nil
}

func runEmployment(ctx context.Context, u *Unit, out *exporter.Summary) error {
	employment, err := loadEmployment(ctx, u)
	if err != nil {
		return err
	}
	sum, err := dp.Describe(employment)
	if err != nil {
		return err
	}

	chart := charts.TimeSeries{
		Title: fmt.Sprintf("Employment in Sawmills and Wood Preservation (%s-%s)",
			sum.First.Period.Label(), sum.Last.Period.Label()),
		XLabel: "Year",
		YLabel: "Number of Employees (Persons)",
		XAxis:  charts.YearAxis,
		Lines:  []charts.Line{{XYs: charts.SeriesXYs(employment, charts.YearAxis)}},
	}
	if err := u.saveWith(ctx, u.env.Renderer.Sized(12, 6), chart, "employment.png"); err != nil {
		return err
	}

	out.Section("Sawmill Employment Summary")
	out.Linef("Time Period: %s to %s", sum.First.Period.Label(), sum.Last.Period.Label())
	out.Linef("Mean Employment: %s persons", out.Num(sum.Mean, 0))
	out.Linef("Maximum Employment: %s persons (%s)", out.Num(sum.Max.Value, 0), sum.Max.Period.Label())
	out.Linef("Minimum Employment: %s persons (%s)", out.Num(sum.Min.Value, 0), sum.Min.Period.Label())
	out.Linef("Latest (%s): %s persons", sum.Last.Period.Label(), out.Num(sum.Last.Value, 0))
	out.Linef("Change Since %s: %s", sum.First.Period.Label(), out.SignedPct(sum.Change(), 1))

	return u.export(ctx, employment)
}
