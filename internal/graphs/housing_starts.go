package graphs

import (
	"context"
	"fmt"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// keyPeriod is a range of years averaged in the housing starts report. A
// zero To runs to the latest year.
type keyPeriod struct {
	label    string
	from, to int
}

var housingPeriods = []keyPeriod{
	{"Financial Crisis Average", 2008, 2009},
	{"Recovery Period Average", 2010, 2015},
	{"Recent Period Average", 2020, 0},
}

// NewHousingStarts charts monthly Canadian housing starts.
func NewHousingStarts(env *Env) *Unit {
	return newUnit(env, "housing-starts", "Canadian Housing Starts Graph",
		[]dataset{canadaHousingData}, runHousingStarts)
}

func runHousingStarts(ctx context.Context, u *Unit, out *exporter.Summary) error {
	t, err := u.load(ctx, canadaHousingData)
	if err != nil {
		return err
	}
	starts, err := dp.Extract(t, canadaRow, nil)
	if err != nil {
		return fmt.Errorf("housing starts: %w", err)
	}
	starts = starts.WithName("housing_starts")
	sum, err := dp.Describe(starts)
	if err != nil {
		return err
	}
	first, last := sum.First.Period, sum.Last.Period

	chart := charts.TimeSeries{
		Title:  fmt.Sprintf("Canadian Housing Starts (%d-%d)", first.Year, last.Year),
		XLabel: "Year",
		YLabel: "Housing Starts (thousands)",
		XAxis:  charts.TimeAxis,
		Lines: []charts.Line{{
			XYs:   charts.SeriesXYs(starts, charts.TimeAxis),
			Style: charts.Style{Width: 1.5, Alpha: 0.8},
		}},
	}
	const image = "canada_housing_starts.png"
	if err := u.save(ctx, chart, image); err != nil {
		return err
	}

	out.Section("Canadian Housing Starts Summary Statistics")
	out.Linef("Time Period: %s to %s", first.Label(), last.Label())
	out.Linef("Mean Housing Starts: %s thousand units", out.Num(sum.Mean, 0))
	out.Linef("Maximum Housing Starts: %s thousand units (%s)", out.Num(sum.Max.Value, 0), sum.Max.Period.Label())
	out.Linef("Minimum Housing Starts: %s thousand units (%s)", out.Num(sum.Min.Value, 0), sum.Min.Period.Label())
	out.Linef("Latest (most recent): %s thousand units (%s)", out.Num(sum.Last.Value, 0), last.Label())

	out.Section("Annual Average Housing Starts")
	for _, p := range dp.AggregateByYear(starts, dp.Mean).Points() {
		out.Linef("%d: %s thousand units", p.Period.Year, out.Num(p.Value, 0))
	}

	out.Section("Key Periods")
	for _, kp := range housingPeriods {
		to := kp.to
		if to == 0 {
			to = last.Year
		}
		if mean, ok := dp.YearRangeMean(starts, kp.from, to); ok {
			out.Linef("%s (%d-%d): %s thousand units", kp.label, kp.from, to, out.Num(mean, 0))
		}
	}
	out.Linef("\nGraph saved to: %s", u.env.Paths.ImagePath(image))

	return u.export(ctx, starts)
}
