package charts

import (
	"fmt"
	"image/color"
	"math"

	stdfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Pie is a pie chart labelled with each category name and its share of the
// total. Wedges start at twelve o'clock and run counterclockwise.
type Pie struct {
	Title      string
	Categories []string
	Values     []float64
	// Colors cycles over the wedges; nil uses dark and light gray.
	Colors []color.Color
}

// Plot builds the chart.
func (pc Pie) Plot() (*plot.Plot, error) {
	if len(pc.Values) == 0 {
		return nil, fmt.Errorf("pie chart %q has no values", pc.Title)
	}
	if len(pc.Categories) != len(pc.Values) {
		return nil, fmt.Errorf("pie chart %q: %d categories for %d values",
			pc.Title, len(pc.Categories), len(pc.Values))
	}
	total := 0.0
	for _, v := range pc.Values {
		if v < 0 {
			return nil, fmt.Errorf("pie chart %q: negative value %g", pc.Title, v)
		}
		total += v
	}
	if total == 0 {
		return nil, fmt.Errorf("pie chart %q: values sum to zero", pc.Title)
	}

	colors := pc.Colors
	if len(colors) == 0 {
		colors = []color.Color{DarkGray, Pale}
	}

	p := newPlot(pc.Title, "", "")
	p.HideAxes()
	p.Add(wedges{
		labels: pc.Categories,
		values: pc.Values,
		total:  total,
		colors: colors,
	})
	return p, nil
}

// Shares returns each value as a percentage of the total.
func (pc Pie) Shares() []float64 {
	total := 0.0
	for _, v := range pc.Values {
		total += v
	}
	out := make([]float64, len(pc.Values))
	if total == 0 {
		return out
	}
	for i, v := range pc.Values {
		out[i] = v / total * 100
	}
	return out
}

// wedges draws the pie directly in canvas coordinates so it stays circular
// whatever the aspect ratio of the image.
type wedges struct {
	labels []string
	values []float64
	total  float64
	colors []color.Color
}

func (w wedges) Plot(c draw.Canvas, plt *plot.Plot) {
	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	radius := vg.Length(math.Min(float64(c.Max.X-c.Min.X), float64(c.Max.Y-c.Min.Y))) * 0.4

	edge := draw.LineStyle{Color: Black, Width: vg.Points(1.5)}

	pctStyle := plt.Legend.TextStyle
	pctStyle.Color = White
	pctStyle.Font.Size = vg.Points(14)
	pctStyle.Font.Weight = stdfont.WeightBold
	pctStyle.XAlign = draw.XCenter
	pctStyle.YAlign = draw.YCenter

	nameStyle := pctStyle
	nameStyle.Color = Black
	nameStyle.Font.Size = vg.Points(13)

	start := math.Pi / 2
	for i, v := range w.values {
		sweep := v / w.total * 2 * math.Pi

		var path vg.Path
		path.Move(center)
		path.Line(polar(center, radius, start))
		path.Arc(center, radius, start, sweep)
		path.Close()

		c.SetColor(w.colors[i%len(w.colors)])
		c.Fill(path)
		c.SetLineStyle(edge)
		c.Stroke(path)

		mid := start + sweep/2
		c.FillText(pctStyle, polar(center, radius*0.6, mid), fmt.Sprintf("%.1f%%", v/w.total*100))
		c.FillText(nameStyle, polar(center, radius*1.15, mid), w.labels[i])

		start += sweep
	}
}

func polar(center vg.Point, r vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(angle)),
		Y: center.Y + r*vg.Length(math.Sin(angle)),
	}
}
