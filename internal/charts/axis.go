package charts

import (
	"math"
	"strconv"
	"time"

	stdfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
)

// Axis selects how x values are interpreted and labelled.
type Axis int

const (
	// LinearAxis plots x as a plain number.
	LinearAxis Axis = iota
	// YearAxis plots x as a calendar year, labelled on whole years.
	YearAxis
	// TimeAxis plots x as Unix seconds, labelled on 1 January of each year.
	TimeAxis
)

// Font sizes shared by all charts.
var (
	TitleSize  = vg.Points(18)
	LabelSize  = vg.Points(14)
	TickSize   = vg.Points(11)
	LegendSize = vg.Points(12)
)

// maxYearLabels caps the number of labelled years before labels are thinned
// to every other (or every nth) year.
const maxYearLabels = 13

// TimeX converts t to a TimeAxis coordinate.
func TimeX(t time.Time) float64 {
	return float64(t.Unix())
}

// PeriodX converts p to a coordinate on axis.
func PeriodX(p dataprocessing.Period, axis Axis) float64 {
	if axis == TimeAxis {
		return TimeX(p.Time())
	}
	return float64(p.Year)
}

// SeriesXYs converts s to plot points on axis.
func SeriesXYs(s dataprocessing.Series, axis Axis) plotter.XYs {
	xys := make(plotter.XYs, s.Len())
	for i, p := range s.Points() {
		xys[i].X = PeriodX(p.Period, axis)
		xys[i].Y = p.Value
	}
	return xys
}

// yearTicks labels whole years. For TimeAxis the tick values are Unix
// seconds at the start of each year.
type yearTicks struct {
	unix bool
}

func (t yearTicks) Ticks(min, max float64) []plot.Tick {
	toYear := func(v float64) float64 { return v }
	fromYear := func(y int) float64 { return float64(y) }
	if t.unix {
		toYear = func(v float64) float64 {
			tm := time.Unix(int64(v), 0).UTC()
			return float64(tm.Year()) + float64(tm.YearDay()-1)/366
		}
		fromYear = func(y int) float64 {
			return TimeX(time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC))
		}
	}

	lo := int(math.Ceil(toYear(min)))
	hi := int(math.Floor(toYear(max)))
	if hi < lo {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	step := (hi-lo)/maxYearLabels + 1

	ticks := make([]plot.Tick, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		tick := plot.Tick{Value: fromYear(y)}
		if (y-lo)%step == 0 {
			tick.Label = strconv.Itoa(y)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

// formatTicks relabels the major ticks of an underlying ticker.
type formatTicks struct {
	ticker plot.Ticker
	format func(float64) string
}

func (t formatTicks) Ticks(min, max float64) []plot.Tick {
	ticks := t.ticker.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = t.format(ticks[i].Value)
		}
	}
	return ticks
}

// applyXAxis configures the x ticks for axis.
func applyXAxis(p *plot.Plot, axis Axis) {
	switch axis {
	case YearAxis:
		p.X.Tick.Marker = yearTicks{}
	case TimeAxis:
		p.X.Tick.Marker = yearTicks{unix: true}
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
}

// applyYFormat relabels the y ticks with format when it is set.
func applyYFormat(p *plot.Plot, format func(float64) string) {
	if format == nil {
		return
	}
	p.Y.Tick.Marker = formatTicks{ticker: plot.DefaultTicks{}, format: format}
}

// newPlot creates a plot with the shared title and label styling.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()

	p.Title.Text = title
	p.Title.TextStyle.Font.Size = TitleSize
	p.Title.TextStyle.Font.Weight = stdfont.WeightBold
	p.Title.Padding = vg.Points(10)

	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Label.TextStyle.Font.Size = LabelSize
	p.Y.Label.TextStyle.Font.Size = LabelSize
	p.X.Tick.Label.Font.Size = TickSize
	p.Y.Tick.Label.Font.Size = TickSize

	p.Legend.TextStyle.Font.Size = LegendSize
	p.Legend.Top = true
	p.Legend.ThumbnailWidth = vg.Points(30)

	return p
}
