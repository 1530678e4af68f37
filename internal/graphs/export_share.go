package graphs

import (
	"context"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// exportSharePeriod is the month covered by the trade extract.
const exportSharePeriod = "January 2017"

const (
	unitedStates = "United States"
	restOfWorld  = "Rest of World"
)

// NewExportShare charts the share of export value going to the United States.
func NewExportShare(env *Env) *Unit {
	return newUnit(env, "export-share", "Export Share Pie Chart",
		[]dataset{rawExportsData}, runExportShare)
}

// regionTotals sums export value by destination region. Rows without a
// country or province (footnotes) and rows whose value is missing are
// skipped. Regions are returned in alphabetical order.
func regionTotals(t *dp.Table) ([]string, []float64, error) {
	cols := make([]int, 3)
	for i, name := range []string{"Country", "Province", "Value ($)"} {
		if cols[i] = t.ColumnIndex(name); cols[i] < 0 {
			return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("column %q", name))
		}
	}
	country, province, value := cols[0], cols[1], cols[2]

	totals := make(map[string]float64)
	for row := range t.Rows {
		c := strings.TrimSpace(t.Cell(row, country))
		if c == "" || strings.TrimSpace(t.Cell(row, province)) == "" {
			continue
		}
		v, ok := dp.NormalizeCell(t.Cell(row, value))
		if !ok {
			continue
		}
		region := restOfWorld
		if c == unitedStates {
			region = unitedStates
		}
		totals[region] += v
	}
	if len(totals) == 0 {
		return nil, nil, apperrors.InsufficientData("no export rows with a destination and value")
	}

	regions := make([]string, 0, len(totals))
	for r := range totals {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	values := make([]float64, len(regions))
	for i, r := range regions {
		values[i] = totals[r]
	}
	return regions, values, nil
}

func runExportShare(ctx context.Context, u *Unit, out *exporter.Summary) error {
	t, err := u.load(ctx, rawExportsData)
	if err != nil {
		return err
	}
	regions, values, err := regionTotals(t)
	if err != nil {
		return err
	}

	pie := charts.Pie{
		Title:      fmt.Sprintf("Canadian Softwood Lumber Export Share by Destination\n(%s)", exportSharePeriod),
		Categories: regions,
		Values:     values,
		Colors:     []color.Color{charts.DarkGray, charts.Pale},
	}
	if err := u.saveWith(ctx, u.env.Renderer.Sized(10, 8), pie, "export_share_piechart.png"); err != nil {
		return err
	}

	total := dp.Sum(values)
	shares := pie.Shares()

	out.Section("Canadian Softwood Lumber Export Share")
	out.Linef("Period: %s", exportSharePeriod)
	out.Linef("\nTotal Export Value: %s", out.Money(total, 0))
	out.Heading("Export Share by Destination:")
	for i, r := range regions {
		out.Linef("  %s: %s (%s)", r, out.Money(values[i], 0), out.Pct(shares[i], 1))
	}

	if u.env.ExportCSV {
		records := make([][]string, len(regions))
		for i, r := range regions {
			records[i] = []string{r, formatValue(values[i]), formatValue(shares[i])}
		}
		path := u.env.Paths.ReportPath(u.ID() + ".csv")
		if err := u.env.CSV.WriteSimpleCSV(path, []string{"region", "value", "share_pct"}, records); err != nil {
			return fmt.Errorf("export %s: %w", u.ID(), err)
		}
	}
	return nil
}
