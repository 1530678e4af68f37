package graphs

import (
	"context"
	"fmt"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// NewProductivity charts annual lumber output per sawmill worker as an index.
func NewProductivity(env *Env) *Unit {
	return newUnit(env, "productivity", "Productivity Analysis Graph",
		[]dataset{employmentData, outputOldData, outputNewData}, runProductivity)
}

func runProductivity(ctx context.Context, u *Unit, out *exporter.Summary) error {
	employment, err := loadEmployment(ctx, u)
	if err != nil {
		return err
	}
	monthly, err := loadProduction(ctx, u)
	if err != nil {
		return err
	}
	production := dp.AggregateByYear(monthly, dp.Sum)

	employment = dp.From(employment, productivityStart).Filter(func(p dp.Point) bool {
		return p.Value > 0
	})
	aligned := dp.Align(employment, production)
	employment, production = aligned[0], aligned[1]
	if employment.IsEmpty() {
		return apperrors.InsufficientData("no overlapping years of employment and production").
			WithContext("employment_years", employment.Len()).
			WithContext("production_years", production.Len())
	}

	perWorker := dp.Ratio("output_per_worker", production, employment, 1)
	index, err := dp.RebaseFirst(perWorker)
	if err != nil {
		return err
	}
	index = index.WithName("productivity_index")

	first, last := index.First().Period, index.Last().Period
	chart := charts.TimeSeries{
		Title:      fmt.Sprintf("Sawmill Productivity Index: Output per Worker (%s = 100)", first.Label()),
		XLabel:     "Year",
		YLabel:     "Productivity Index",
		XAxis:      charts.YearAxis,
		Lines:      []charts.Line{{XYs: charts.SeriesXYs(index, charts.YearAxis)}},
		References: []charts.Reference{indexBase(charts.Style{Color: charts.Gray, Dashes: charts.Dashed, Width: 1, Alpha: 0.5})},
	}
	if err := u.saveWith(ctx, u.env.Renderer.Sized(14, 7), chart, "productivity_analysis.png"); err != nil {
		return err
	}

	out.Section("Sawmill Productivity Analysis")
	out.Linef("Time Period: %s to %s", first.Label(), last.Label())
	for _, end := range []struct {
		heading string
		i       int
	}{
		{"Base Year", 0},
		{"Latest Year", index.Len() - 1},
	} {
		out.Linef("\n%s (%s):", end.heading, index.At(end.i).Period.Label())
		out.Linef("  Employment: %s persons", out.Num(employment.At(end.i).Value, 0))
		out.Linef("  Production: %s thousand cubic metres", out.Num(production.At(end.i).Value, 0))
		out.Linef("  Productivity: %.2f thousand cubic metres per worker", perWorker.At(end.i).Value)
		out.Linef("  Index: %.1f", index.At(end.i).Value)
	}
	out.Linef("\nProductivity Change: %s", out.SignedPct(index.Last().Value-100, 1))

	out.Section("Productivity Index by Year")
	for i, p := range index.Points() {
		out.Linef("%d: %6.1f (Employment: %6s, Production: %7s, Output/Worker: %.2f)",
			p.Period.Year, p.Value,
			out.Num(employment.At(i).Value, 0),
			out.Num(production.At(i).Value, 0),
			perWorker.At(i).Value)
	}

	return u.export(ctx, employment, production, perWorker, index)
}
