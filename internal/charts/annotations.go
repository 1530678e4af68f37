package charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Marker is a vertical line at an event, such as an agreement expiring.
type Marker struct {
	Label string
	X     float64
	Style Style
}

// Span shades the region between two x values.
type Span struct {
	Label    string
	From, To float64
	Color    color.Color
	// Alpha defaults to 0.3.
	Alpha float64
}

// Reference is a horizontal line across the plot, such as an index base of
// 100 or a series mean.
type Reference struct {
	Label string
	Y     float64
	Style Style
}

// vline draws a full-height vertical line. It does not implement
// plot.DataRanger, so a marker never widens the axes and is skipped when it
// falls outside them.
type vline struct {
	x     float64
	style draw.LineStyle
}

func (v vline) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)
	x := trX(v.x)
	if !c.ContainsX(x) {
		return
	}
	c.StrokeLine2(v.style, x, c.Min.Y, x, c.Max.Y)
}

func (v vline) Thumbnail(c *draw.Canvas) {
	y := (c.Min.Y + c.Max.Y) / 2
	c.StrokeLine2(v.style, c.Min.X, y, c.Max.X, y)
}

// hline draws a full-width horizontal line.
type hline struct {
	y     float64
	style draw.LineStyle
}

func (h hline) Plot(c draw.Canvas, plt *plot.Plot) {
	_, trY := plt.Transforms(&c)
	y := trY(h.y)
	if !c.ContainsY(y) {
		return
	}
	c.StrokeLine2(h.style, c.Min.X, y, c.Max.X, y)
}

func (h hline) Thumbnail(c *draw.Canvas) {
	y := (c.Min.Y + c.Max.Y) / 2
	c.StrokeLine2(h.style, c.Min.X, y, c.Max.X, y)
}

// vspan fills a translucent band clipped to the plot area.
type vspan struct {
	from, to float64
	fill     color.Color
}

func (s vspan) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)
	x0, x1 := trX(s.from), trX(s.to)
	x0 = vg.Length(max(float64(x0), float64(c.Min.X)))
	x1 = vg.Length(min(float64(x1), float64(c.Max.X)))
	if x1 <= x0 {
		return
	}
	c.FillPolygon(s.fill, []vg.Point{
		{X: x0, Y: c.Min.Y},
		{X: x1, Y: c.Min.Y},
		{X: x1, Y: c.Max.Y},
		{X: x0, Y: c.Max.Y},
	})
}

func (s vspan) Thumbnail(c *draw.Canvas) {
	c.FillPolygon(s.fill, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Max.Y},
	})
}

func newVSpan(s Span) vspan {
	alpha := s.Alpha
	if alpha == 0 {
		alpha = 0.3
	}
	fill := s.Color
	if fill == nil {
		fill = Slate
	}
	return vspan{from: s.From, to: s.To, fill: Translucent(fill, alpha)}
}

// addReferences draws the horizontal reference lines and their legend
// entries, widening the y range to include them. Call it after the data
// plotters have been added.
func addReferences(p *plot.Plot, refs []Reference) {
	for _, r := range refs {
		h := hline{y: r.Y, style: r.Style.lineStyle()}
		p.Add(h)
		p.Y.Min = math.Min(p.Y.Min, r.Y)
		p.Y.Max = math.Max(p.Y.Max, r.Y)
		if r.Label != "" {
			p.Legend.Add(r.Label, h)
		}
	}
}
