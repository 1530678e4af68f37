package graphs

import (
	"context"
	"fmt"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// NewExportValue charts monthly export value and volume as indices of their
// first common month.
func NewExportValue(env *Env) *Unit {
	return newUnit(env, "export-value", "Export Value Graph",
		[]dataset{valueExportsData, volumeExportsData}, runExportValue)
}

// loadMonthly reads a two-column trade extract: period in the first column,
// value in the second. Footer rows fail to parse and are dropped.
func loadMonthly(ctx context.Context, u *Unit, d dataset, name string) (dp.Series, error) {
	t, err := u.load(ctx, d)
	if err != nil {
		return dp.Series{}, err
	}
	if len(t.Header) < 2 {
		return dp.Series{}, apperrors.NewParsingError(
			fmt.Sprintf("%s: expected period and value columns, found %d", d.Path, len(t.Header)), nil)
	}
	s, err := dp.ExtractColumns(t, t.Header[0], t.Header[1])
	if err != nil {
		return dp.Series{}, fmt.Errorf("%s: %w", d.Path, err)
	}
	return s.WithName(name), nil
}

// monthsPerYear counts the observations in each year.
func monthsPerYear(values []float64) float64 {
	return float64(len(values))
}

func runExportValue(ctx context.Context, u *Unit, out *exporter.Summary) error {
	value, err := loadMonthly(ctx, u, valueExportsData, "value")
	if err != nil {
		return err
	}
	volume, err := loadMonthly(ctx, u, volumeExportsData, "volume")
	if err != nil {
		return err
	}

	aligned := dp.Align(value, volume)
	value, volume = aligned[0], aligned[1]
	if value.IsEmpty() {
		return apperrors.InsufficientData("export value and volume share no months")
	}

	valueIndex, err := dp.RebaseFirst(value)
	if err != nil {
		return err
	}
	volumeIndex, err := dp.RebaseFirst(volume)
	if err != nil {
		return err
	}
	valueIndex = valueIndex.WithName("value_index")
	volumeIndex = volumeIndex.WithName("volume_index")

	base := value.First()
	latest := value.Last().Period
	baseLabel := base.Period.Label()

	chart := charts.TimeSeries{
		Title:  fmt.Sprintf("Softwood Lumber Export Value and Volume Indices (%s=100)", baseLabel),
		XLabel: "Year",
		YLabel: fmt.Sprintf("Index (%s = 100)", baseLabel),
		XAxis:  charts.TimeAxis,
		Lines: []charts.Line{
			{Label: "Export Value Index", XYs: charts.SeriesXYs(valueIndex, charts.TimeAxis)},
			{Label: "Export Volume Index", XYs: charts.SeriesXYs(volumeIndex, charts.TimeAxis),
				Style: charts.Style{Color: charts.Gray, Dashes: charts.Dashed}},
		},
		References: []charts.Reference{
			indexBase(charts.Style{Dashes: charts.Dotted, Width: 1, Alpha: 0.5}),
		},
	}
	if err := u.save(ctx, chart, "export_value_graph.png"); err != nil {
		return err
	}

	out.Section("Softwood Lumber Export Indices Summary")
	out.Linef("Time Period: %s to %s", baseLabel, latest.Label())
	out.Linef("Base Month: %s (Index = 100)", baseLabel)
	out.Heading("Base Month Values:")
	out.Linef("  Export Value: %s", out.Money(base.Value, 0))
	out.Linef("  Export Volume: %s cubic metres", out.Num(volume.First().Value, 0))

	out.Section(fmt.Sprintf("Latest Values (%s)", latest.Label()))
	out.Linef("  Value Index: %.1f", valueIndex.Last().Value)
	out.Linef("  Volume Index: %.1f", volumeIndex.Last().Value)

	// A final year with fewer than twelve months would skew the averages.
	counts := dp.AggregateByYear(valueIndex, monthsPerYear)
	annualValue := dp.AggregateByYear(valueIndex, dp.Mean)
	annualVolume := dp.AggregateByYear(volumeIndex, dp.Mean)

	out.Section("Annual Average Indices")
	for i, p := range annualValue.Points() {
		if i == annualValue.Len()-1 && counts.At(i).Value < 12 {
			break
		}
		vol, _ := annualVolume.Value(p.Period)
		out.Linef("%d: Value=%.1f, Volume=%.1f", p.Period.Year, p.Value, vol)
	}

	return u.export(ctx, value, volume, valueIndex, volumeIndex)
}
