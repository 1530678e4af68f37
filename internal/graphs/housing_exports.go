package graphs

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/plot/plotter"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// The exports-by-mode table has one group of four columns per year (total,
// rail, truck, water) after the label column.
const (
	modeFirstYear = 2000
	modeLastYear  = 2024
	modeStride    = 4
)

// NewHousingExports compares US housing starts with Canadian lumber exports
// and regresses one on the other.
func NewHousingExports(env *Env) *Unit {
	return newUnit(env, "housing-exports", "Housing vs Exports Comparison",
		[]dataset{usHousingData, exportsByModeData}, runHousingExports)
}

// totalExports reads the yearly totals from the first data row of the
// exports-by-mode table. Years whose cell is missing are skipped.
func totalExports(t *dp.Table) (dp.Series, error) {
	if len(t.Rows) == 0 {
		return dp.Series{}, apperrors.InsufficientData("exports table has no data row")
	}
	var points []dp.Point
	for i, year := 0, modeFirstYear; year <= modeLastYear; i, year = i+1, year+1 {
		v, ok := dp.NormalizeCell(t.Cell(0, 1+i*modeStride))
		if !ok {
			continue
		}
		points = append(points, dp.Point{Period: dp.Year(year), Value: v})
	}
	if len(points) == 0 {
		return dp.Series{}, apperrors.InsufficientData("no yearly export totals")
	}
	return dp.NewSeries("total_exports", points), nil
}

func runHousingExports(ctx context.Context, u *Unit, out *exporter.Summary) error {
	ht, err := u.load(ctx, usHousingData)
	if err != nil {
		return err
	}
	monthly, err := dp.ExtractColumns(ht, "observation_date", "HOUST")
	if err != nil {
		return fmt.Errorf("housing starts: %w", err)
	}
	housing := dp.AggregateByYear(monthly, dp.Mean).WithName("housing_starts")

	et, err := u.load(ctx, exportsByModeData)
	if err != nil {
		return err
	}
	exports, err := totalExports(et)
	if err != nil {
		return err
	}
	u.env.Logger.DebugContext(ctx, "exports_by_mode_parsed",
		slog.Int("years", exports.Len()),
		slog.Any("first", exports.Values()[:min(5, exports.Len())]))

	aligned := dp.Align(housing, exports)
	housing, exports = aligned[0], aligned[1]
	if housing.IsEmpty() {
		return apperrors.InsufficientData("housing starts and exports share no years")
	}

	housingIndex, err := dp.RebaseFirst(housing)
	if err != nil {
		return err
	}
	exportsIndex, err := dp.RebaseFirst(exports)
	if err != nil {
		return err
	}
	housingIndex = housingIndex.WithName("housing_index")
	exportsIndex = exportsIndex.WithName("exports_index")

	base := housing.First().Period
	latest := housing.Last().Period

	comparison := charts.TimeSeries{
		Title:  fmt.Sprintf("US Housing Starts vs Canadian Lumber Exports (%s=100)", base.Label()),
		XLabel: "Year",
		YLabel: fmt.Sprintf("Index (%s = 100)", base.Label()),
		XAxis:  charts.YearAxis,
		Lines: []charts.Line{
			{Label: "US Housing Starts Index", XYs: charts.SeriesXYs(housingIndex, charts.YearAxis)},
			{Label: "Canadian Lumber Exports Index", XYs: charts.SeriesXYs(exportsIndex, charts.YearAxis),
				Style: charts.Style{Color: charts.Gray, Dashes: charts.Dashed}},
		},
		References: []charts.Reference{
			indexBase(charts.Style{Dashes: charts.Dotted, Width: 1, Alpha: 0.5}),
		},
	}
	if err := u.save(ctx, comparison, "housing_exports_comparison.png"); err != nil {
		return err
	}

	hs, err := dp.Describe(housingIndex)
	if err != nil {
		return err
	}
	es, err := dp.Describe(exportsIndex)
	if err != nil {
		return err
	}

	out.Section("US Housing Starts vs Canadian Lumber Exports")
	out.Linef("Time Period: %s to %s", base.Label(), latest.Label())
	out.Linef("Base Year: %s (Index = 100)", base.Label())
	out.Heading("Base Year Values:")
	out.Linef("  US Housing Starts: %s thousand units (annual average)", out.Num(housing.First().Value, 0))
	out.Linef("  Canadian Lumber Exports: %s thousand cubic metres", out.Num(exports.First().Value, 0))

	out.Section("Latest Values")
	out.Linef("  Year: %s", latest.Label())
	out.Linef("  Housing Starts Index: %.1f", hs.Last.Value)
	out.Linef("  Lumber Exports Index: %.1f", es.Last.Value)

	out.Section("Key Statistics")
	out.Linef("Housing Starts - Min Index: %.1f (%s)", hs.Min.Value, hs.Min.Period.Label())
	out.Linef("Housing Starts - Max Index: %.1f (%s)", hs.Max.Value, hs.Max.Period.Label())
	out.Linef("Lumber Exports - Min Index: %.1f (%s)", es.Min.Value, es.Min.Period.Label())
	out.Linef("Lumber Exports - Max Index: %.1f (%s)", es.Max.Value, es.Max.Period.Label())

	if r, err := dp.Correlation(housingIndex, exportsIndex); err == nil {
		out.Linef("\nCorrelation between Housing Starts and Lumber Exports: %.3f", r)
	}

	// Regress on the raw values so the slope reads in physical units.
	fit, err := dp.LinearFit(housing, exports)
	if err != nil {
		return err
	}
	writeRegression(out, fit)

	residuals := dp.Residuals(fit, housing, exports)
	rs, err := dp.Describe(residuals)
	if err != nil {
		return err
	}
	out.Heading("Residual Statistics:")
	out.Linef("Mean Residual: %.2f (should be close to 0)", rs.Mean)
	out.Linef("Std Dev of Residuals: %.2f", rs.StdDev)
	out.Linef("Max Positive Residual: %.2f thousand cubic metres (%s)", rs.Max.Value, rs.Max.Period.Label())
	out.Linef("Max Negative Residual: %.2f thousand cubic metres (%s)", rs.Min.Value, rs.Min.Period.Label())

	scatter := charts.Scatter{
		Title:  "Linear Regression: Housing Starts vs Lumber Exports",
		XLabel: "US Housing Starts (thousand units)",
		YLabel: "Canadian Lumber Exports (thousand cubic metres)",
		Points: alignedXYs(housing, exports),
		Fit: &charts.FitLine{
			Label:     fmt.Sprintf("y = %.0f + %.2fx\nR² = %.4f", fit.Intercept, fit.Slope, fit.RSquared),
			Slope:     fit.Slope,
			Intercept: fit.Intercept,
		},
	}
	if err := u.saveWith(ctx, u.scatterRenderer(), scatter, "housing_exports_scatter.png"); err != nil {
		return err
	}

	residualPlot := charts.ResidualPlot("Residual Plot Over Time",
		"Residuals (thousand cubic metres)", residuals)
	if err := u.saveWith(ctx, u.scatterRenderer(), residualPlot, "housing_exports_residuals.png"); err != nil {
		return err
	}

	return u.export(ctx, housing, exports, housingIndex, exportsIndex, residuals)
}

// writeRegression prints the fitted model of exports on housing starts.
func writeRegression(out *exporter.Summary, fit dp.Fit) {
	out.Section("Linear Regression Analysis")
	out.Linef("Dependent Variable: Canadian Lumber Exports (thousand cubic metres)")
	out.Linef("Independent Variable: US Housing Starts (thousand units)")
	out.Linef("\nRegression Equation: Exports = %.2f + %.2f × Housing_Starts", fit.Intercept, fit.Slope)
	out.Linef("\nR-squared: %.4f", fit.RSquared)
	out.Linef("Correlation coefficient (r): %.4f", fit.R)
	out.Linef("P-value: %.6f", fit.PValue)
	out.Linef("Standard Error: %.4f", fit.StdErr)

	out.Heading("Interpretation:")
	out.Linef("- For every 1,000 unit increase in US housing starts, Canadian lumber exports")
	out.Linef("  increase by %.2f thousand cubic metres (or %s cubic metres)", fit.Slope, out.Num(fit.Slope*1000, 0))
	out.Linef("- The model explains %.1f%% of the variation in lumber exports", fit.RSquared*100)
	switch fit.Significance() {
	case 0.001:
		out.Linef("- The relationship is statistically significant at the 0.1%% level")
	case 0.01:
		out.Linef("- The relationship is statistically significant at the 1%% level")
	case 0.05:
		out.Linef("- The relationship is statistically significant at the 5%% level")
	}
}

// alignedXYs pairs the values of x and y on their common periods.
func alignedXYs(x, y dp.Series) plotter.XYs {
	aligned := dp.Align(x, y)
	xs, ys := aligned[0].Values(), aligned[1].Values()
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i].X, xys[i].Y = xs[i], ys[i]
	}
	return xys
}
