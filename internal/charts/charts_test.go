package charts

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/config"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/files"
)

func testRenderer(t *testing.T) (*Renderer, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(config.PathsConfig{
		Root:       t.TempDir(),
		DataDir:    "data",
		ImagesDir:  "images",
		ReportsDir: "reports",
		LogsDir:    "logs",
	})
	r := NewRenderer(config.RenderConfig{DPI: 50, WidthInches: 6, HeightInches: 4}, files.NewManager(paths))
	return r, paths
}

func monthly(name string, year int, values ...float64) dataprocessing.Series {
	points := make([]dataprocessing.Point, len(values))
	for i, v := range values {
		points[i] = dataprocessing.Point{
			Period: dataprocessing.Month(year+i/12, time.Month(i%12+1)),
			Value:  v,
		}
	}
	return dataprocessing.NewSeries(name, points)
}

func annual(name string, from int, values ...float64) dataprocessing.Series {
	points := make([]dataprocessing.Point, len(values))
	for i, v := range values {
		points[i] = dataprocessing.Point{Period: dataprocessing.Year(from + i), Value: v}
	}
	return dataprocessing.NewSeries(name, points)
}

func TestRenderer_RenderSizes(t *testing.T) {
	r, _ := testRenderer(t)
	s := annual("employment", 2001, 30, 28, 25, 27)

	tests := []struct {
		name  string
		r     *Renderer
		wantW int
		wantH int
	}{
		{"configured size", r, 300, 200},
		{"resized", r.Sized(3, 3), 150, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tt.r.Render(TimeSeries{
				Title: "Employment",
				XAxis: YearAxis,
				Lines: []Line{{XYs: SeriesXYs(s, YearAxis)}},
			}, &buf)
			require.NoError(t, err)

			cfg, err := png.DecodeConfig(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, cfg.Width)
			assert.Equal(t, tt.wantH, cfg.Height)
		})
	}

	assert.Equal(t, 6*vg.Inch, r.Width, "Sized must not modify the receiver")
}

func TestRenderer_SaveAllKinds(t *testing.T) {
	r, paths := testRenderer(t)
	prices := monthly("lumber", 2015, 100, 104, 98, 120, 150, 170, 160, 140, 130, 125, 128, 131, 135)

	tests := []struct {
		name  string
		chart Chart
	}{
		{"time series with annotations", TimeSeries{
			Title:  "Lumber Production",
			XLabel: "Year",
			YLabel: "Production",
			XAxis:  TimeAxis,
			Lines: []Line{
				{Label: "Production", XYs: SeriesXYs(prices, TimeAxis)},
				{Label: "Rebased", XYs: SeriesXYs(dataprocessing.Scale(prices, 0.5), TimeAxis),
					Style: Style{Color: Gray, Dashes: Dashed}},
			},
			Markers: []Marker{
				{Label: "SLA End", X: TimeX(time.Date(2015, 10, 1, 0, 0, 0, 0, time.UTC)),
					Style: Style{Color: Slate, Dashes: Dotted}},
				{Label: "Outside", X: TimeX(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))},
			},
			Spans: []Span{
				{Label: "Slump", From: TimeX(time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)),
					To: TimeX(time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC))},
			},
			References:  []Reference{{Label: "Base", Y: 100, Style: Style{Dashes: Dotted, Alpha: 0.5}}},
			YTickFormat: func(v float64) string { return "$" + formatTick(v) },
			Legend:      LegendTopLeft,
		}},
		{"bar", Bar{
			Title:       "Industry GDP",
			Categories:  []string{"Forestry", "Construction"},
			Values:      []float64{45000, 150000},
			ValueFormat: func(v float64) string { return "$" + formatTick(v) + "M" },
			XTickFormat: func(v float64) string { return "$" + formatTick(v/1000) + "B" },
		}},
		{"pie", Pie{
			Title:      "Export Share",
			Categories: []string{"United States", "Rest of World"},
			Values:     []float64{690, 310},
		}},
		{"scatter with fit", Scatter{
			Title:  "Regression",
			Points: plotter.XYs{{X: 1, Y: 2}, {X: 2, Y: 4.1}, {X: 3, Y: 5.9}},
			Fit:    &FitLine{Label: "y = 0.1 + 1.95x", Slope: 1.95, Intercept: 0.1},
		}},
		{"residuals", ResidualPlot("Residuals", "Residual", annual("r", 2000, 1.5, -0.5, -1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := paths.ImagePath("chart.png")
			require.NoError(t, r.Save(tt.chart, path))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			_, err = png.Decode(f)
			assert.NoError(t, err)
		})
	}
}

func TestChart_LayoutErrors(t *testing.T) {
	r, paths := testRenderer(t)

	tests := []struct {
		name  string
		chart Chart
	}{
		{"time series without lines", TimeSeries{Title: "empty"}},
		{"time series with empty line", TimeSeries{Lines: []Line{{Label: "none"}}}},
		{"bar without values", Bar{Title: "empty"}},
		{"bar length mismatch", Bar{Categories: []string{"a"}, Values: []float64{1, 2}}},
		{"pie summing to zero", Pie{Categories: []string{"a", "b"}, Values: []float64{0, 0}}},
		{"pie with negative wedge", Pie{Categories: []string{"a", "b"}, Values: []float64{3, -1}}},
		{"scatter without points", Scatter{Title: "empty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := paths.ImagePath("broken.png")
			err := r.Save(tt.chart, path)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrTypeRender, appErr.Type)
			assert.NoFileExists(t, path, "failed renders leave no file behind")
		})
	}
}

func TestRenderer_SaveWithoutManager(t *testing.T) {
	r := &Renderer{Width: 100, Height: 100, DPI: 50}
	err := r.Save(Pie{Categories: []string{"a"}, Values: []float64{1}}, "x.png")
	assert.Error(t, err)
}

func TestYearTicks(t *testing.T) {
	tests := []struct {
		name       string
		ticks      yearTicks
		min, max   float64
		wantLabels []string
	}{
		{
			name:       "short range labels every year",
			min:        2013,
			max:        2016,
			wantLabels: []string{"2013", "2014", "2015", "2016"},
		},
		{
			name:       "fractional bounds round inward",
			min:        2012.6,
			max:        2015.2,
			wantLabels: []string{"2013", "2014", "2015"},
		},
		{
			name: "long range labels every other year",
			min:  2001,
			max:  2024,
			wantLabels: []string{"2001", "2003", "2005", "2007", "2009", "2011", "2013",
				"2015", "2017", "2019", "2021", "2023"},
		},
		{
			name:       "unix seconds",
			ticks:      yearTicks{unix: true},
			min:        TimeX(time.Date(2017, 4, 28, 0, 0, 0, 0, time.UTC)),
			max:        TimeX(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)),
			wantLabels: []string{"2018", "2019", "2020"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var labels []string
			for _, tick := range tt.ticks.Ticks(tt.min, tt.max) {
				if tick.Label != "" {
					labels = append(labels, tick.Label)
				}
			}
			assert.Equal(t, tt.wantLabels, labels)
		})
	}
}

func TestYearTicks_UnixValuesAreNewYear(t *testing.T) {
	ticks := yearTicks{unix: true}.Ticks(
		TimeX(time.Date(2017, 4, 28, 0, 0, 0, 0, time.UTC)),
		TimeX(time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)))
	require.Len(t, ticks, 2)
	assert.Equal(t, TimeX(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)), ticks[0].Value)
	assert.Equal(t, TimeX(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)), ticks[1].Value)
}

func TestFormatTicks(t *testing.T) {
	ticks := formatTicks{
		ticker: yearTicks{},
		format: func(v float64) string { return "Y" + formatTick(v) },
	}.Ticks(2000, 2002)

	require.Len(t, ticks, 3)
	assert.Equal(t, "Y2000", ticks[0].Label)
	assert.Equal(t, "Y2002", ticks[2].Label)
}

func TestSeriesXYs(t *testing.T) {
	s := monthly("prices", 2020, 1, 2)

	byYear := SeriesXYs(s, YearAxis)
	assert.Equal(t, plotter.XYs{{X: 2020, Y: 1}, {X: 2020, Y: 2}}, byYear)

	byTime := SeriesXYs(s, TimeAxis)
	assert.Equal(t, TimeX(time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)), byTime[1].X)
}

func TestPie_Shares(t *testing.T) {
	pie := Pie{Categories: []string{"US", "RoW"}, Values: []float64{75, 25}}
	assert.Equal(t, []float64{75, 25}, pie.Shares())
	assert.Equal(t, []float64{0, 0}, Pie{Values: []float64{0, 0}}.Shares())
}

func TestTranslucent(t *testing.T) {
	assert.Equal(t, Black, Translucent(Black, 0))
	assert.Equal(t, Black, Translucent(Black, 1))

	c := Translucent(color.Gray{Y: 0xFF}, 0.5)
	r, _, _, a := c.RGBA()
	assert.InDelta(t, 0x7fff, a, 1)
	assert.Equal(t, a, r, "colours are alpha-premultiplied")
}

func TestStyle_Defaults(t *testing.T) {
	ls := Style{}.lineStyle()
	assert.Equal(t, Black, ls.Color)
	assert.Greater(t, float64(ls.Width), 0.0)
	assert.Nil(t, ls.Dashes)
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
