package graphs

import (
	"context"
	"fmt"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// NewSawmillRevenue charts annual sawmill revenue from goods manufactured.
func NewSawmillRevenue(env *Env) *Unit {
	return newUnit(env, "sawmill-revenue", "Sawmill Revenue Graph",
		[]dataset{revenueData}, runSawmillRevenue)
}

func runSawmillRevenue(ctx context.Context, u *Unit, out *exporter.Summary) error {
	t, err := u.load(ctx, revenueData)
	if err != nil {
		return err
	}
	raw, err := dp.Extract(t, revenueRow, nil)
	if err != nil {
		return fmt.Errorf("sawmill revenue: %w", err)
	}
	// thousands of dollars to billions
	revenue := dp.Scale(raw, 1e-6).WithName("revenue_billions")
	sum, err := dp.Describe(revenue)
	if err != nil {
		return err
	}

	chart := charts.TimeSeries{
		Title: fmt.Sprintf("Sawmill Revenue from Goods Manufactured in Canada (%s-%s)",
			sum.First.Period.Label(), sum.Last.Period.Label()),
		XLabel:      "Year",
		YLabel:      "Revenue (billions of dollars)",
		XAxis:       charts.YearAxis,
		Lines:       []charts.Line{{XYs: charts.SeriesXYs(revenue, charts.YearAxis)}},
		YTickFormat: func(v float64) string { return fmt.Sprintf("$%.1fB", v) },
	}
	if err := u.saveWith(ctx, u.env.Renderer.Sized(12, 7), chart, "sawmill_revenue_graph.png"); err != nil {
		return err
	}

	out.Section("Sawmill Revenue Summary Statistics")
	out.Linef("Time Period: %s to %s", sum.First.Period.Label(), sum.Last.Period.Label())
	out.Linef("Mean Revenue: $%.2f billion", sum.Mean)
	out.Linef("Maximum Revenue: $%.2f billion (Year %s)", sum.Max.Value, sum.Max.Period.Label())
	out.Linef("Minimum Revenue: $%.2f billion (Year %s)", sum.Min.Value, sum.Min.Period.Label())
	out.Linef("Latest (%s): $%.2f billion", sum.Last.Period.Label(), sum.Last.Value)

	out.Section("Annual Revenue")
	for _, p := range revenue.Points() {
		out.Linef("%s: $%.2f billion", p.Period.Label(), p.Value)
	}

	changes := dp.PeriodChanges(revenue).WithName("yoy_growth_pct")
	out.Section("Year-over-Year Growth Rates")
	for i := 1; i < revenue.Len(); i++ {
		prev, cur := revenue.At(i-1).Period, revenue.At(i).Period
		if g, ok := changes.Value(cur); ok {
			out.Linef("%s to %s: %+.1f%%", prev.Label(), cur.Label(), g)
		}
	}

	return u.export(ctx, revenue, changes)
}
