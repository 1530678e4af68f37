package graphs

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

const isoDate = "2006-01-02"

// The daily tariff timeline covers the first countervailing duty to the last
// observation.
var (
	tariffStart = date(2017, time.April, 28)
	tariffEnd   = date(2025, time.November, 26)
)

// tariffPeriod is one row of the tariff weights table. An open period has no
// end date and applies from Start onwards.
type tariffPeriod struct {
	Start time.Time
	End   time.Time
	Open  bool
	Rate  float64
	Event string
}

func (p tariffPeriod) covers(day time.Time) bool {
	if day.Before(p.Start) {
		return false
	}
	return p.Open || !day.After(p.End)
}

// NewTariffTimeline charts the weighted US duty on Canadian softwood lumber
// day by day.
func NewTariffTimeline(env *Env) *Unit {
	return newUnit(env, "tariff-timeline", "Tariff Timeline Graph",
		[]dataset{tariffData}, runTariffTimeline)
}

// parseTariffPeriods reads the start_date, end_date, weighted_tariff and
// event columns. Rates are fractions, 0.2 for 20%.
func parseTariffPeriods(t *dp.Table) ([]tariffPeriod, error) {
	names := []string{"start_date", "end_date", "weighted_tariff", "event"}
	cols := make([]int, len(names))
	for i, name := range names {
		if cols[i] = t.ColumnIndex(name); cols[i] < 0 {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("column %q", name))
		}
	}

	periods := make([]tariffPeriod, 0, len(t.Rows))
	for row := range t.Rows {
		start := strings.TrimSpace(t.Cell(row, cols[0]))
		if start == "" {
			continue
		}
		var (
			p   tariffPeriod
			err error
		)
		if p.Start, err = time.Parse(isoDate, start); err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("row %d: start_date", row+1), err)
		}
		if end := strings.TrimSpace(t.Cell(row, cols[1])); end == "" {
			p.Open = true
		} else if p.End, err = time.Parse(isoDate, end); err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("row %d: end_date", row+1), err)
		}
		if p.Rate, err = strconv.ParseFloat(strings.TrimSpace(t.Cell(row, cols[2])), 64); err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("row %d: weighted_tariff", row+1), err)
		}
		p.Event = strings.TrimSpace(t.Cell(row, cols[3]))
		periods = append(periods, p)
	}
	if len(periods) == 0 {
		return nil, apperrors.InsufficientData("tariff table has no periods")
	}
	return periods, nil
}

// dailyRates returns the rate in force on each day of [from, to], taken from
// the first period that covers it. Days no period covers are left out.
func dailyRates(periods []tariffPeriod, from, to time.Time) ([]time.Time, []float64) {
	var (
		days  []time.Time
		rates []float64
	)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		for _, p := range periods {
			if p.covers(day) {
				days = append(days, day)
				rates = append(rates, p.Rate)
				break
			}
		}
	}
	return days, rates
}

func runTariffTimeline(ctx context.Context, u *Unit, out *exporter.Summary) error {
	t, err := u.load(ctx, tariffData)
	if err != nil {
		return err
	}
	periods, err := parseTariffPeriods(t)
	if err != nil {
		return err
	}
	days, rates := dailyRates(periods, tariffStart, tariffEnd)
	if len(days) == 0 {
		return apperrors.InsufficientData("no tariff period covers the timeline")
	}

	xys := make(plotter.XYs, len(days))
	for i, day := range days {
		xys[i].X, xys[i].Y = charts.TimeX(day), rates[i]*100
	}

	chart := charts.TimeSeries{
		Title: fmt.Sprintf("US Weighted Tariff Rate on Canadian Softwood Lumber (%d-%d)",
			tariffStart.Year(), tariffEnd.Year()),
		XLabel:  "Year",
		YLabel:  "Weighted Tariff Rate (%)",
		XAxis:   charts.TimeAxis,
		Lines:   []charts.Line{{XYs: xys}},
		Spans:   []charts.Span{financialCrisis},
		Markers: []charts.Marker{trumpElected, trumpReelected},
		Legend:  charts.LegendTopLeft,
	}
	if err := u.save(ctx, chart, "tariff_timeline.png"); err != nil {
		return err
	}

	out.Section("US Softwood Lumber Tariff Summary")
	out.Linef("Time Period: %s to %s", days[0].Format("January 02, 2006"), days[len(days)-1].Format("January 02, 2006"))
	out.Heading("Weighted Tariff Rates:")
	for _, p := range periods {
		end := "Present"
		if !p.Open {
			end = p.End.Format(isoDate)
		}
		out.Linef("  %s to %s: %.1f%% - %s", p.Start.Format(isoDate), end, p.Rate*100, p.Event)
	}
	out.Linef("\nCurrent Tariff Rate: %.1f%%", periods[len(periods)-1].Rate*100)
	out.Linef("Average Tariff Rate (%d-%d): %.1f%%", tariffStart.Year(), tariffEnd.Year(), stat.Mean(rates, nil)*100)
	out.Linef("Minimum Tariff Rate: %.1f%%", floats.Min(rates)*100)
	out.Linef("Maximum Tariff Rate: %.1f%%", floats.Max(rates)*100)

	if u.env.ExportCSV {
		records := make([][]string, len(days))
		for i, day := range days {
			records[i] = []string{day.Format(isoDate), formatValue(rates[i] * 100)}
		}
		path := u.env.Paths.ReportPath(u.ID() + ".csv")
		if err := u.env.CSV.WriteSimpleCSV(path, []string{"date", "weighted_tariff_pct"}, records); err != nil {
			return fmt.Errorf("export %s: %w", u.ID(), err)
		}
	}
	return nil
}
