package charts

import (
	"image/color"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Grayscale palette used by every figure.
var (
	Black     color.Color = color.Gray{Y: 0x00}
	Charcoal  color.Color = color.Gray{Y: 0x33}
	DarkGray  color.Color = color.Gray{Y: 0x40}
	Slate     color.Color = color.Gray{Y: 0x66}
	Gray      color.Color = color.Gray{Y: 0x80}
	Silver    color.Color = color.Gray{Y: 0x99}
	LightGray color.Color = color.Gray{Y: 0xA9}
	Pale      color.Color = color.Gray{Y: 0xBF}
	Mist      color.Color = color.Gray{Y: 0xCC}
	White     color.Color = color.Gray{Y: 0xFF}

	gridColor color.Color = color.Gray{Y: 0xD9}
)

// Dash patterns.
var (
	Solid   []vg.Length
	Dashed  = []vg.Length{vg.Points(6), vg.Points(3)}
	Dotted  = []vg.Length{vg.Points(1.5), vg.Points(2.5)}
	DashDot = []vg.Length{vg.Points(6), vg.Points(2.5), vg.Points(1.5), vg.Points(2.5)}
)

// Style describes how a line is stroked. The zero Style is a solid black
// line of the default width.
type Style struct {
	Color  color.Color
	Dashes []vg.Length
	Width  vg.Length
	// Alpha in (0, 1) makes the stroke translucent; zero means opaque.
	Alpha float64
}

func (s Style) lineStyle() draw.LineStyle {
	c := s.Color
	if c == nil {
		c = Black
	}
	w := s.Width
	if w == 0 {
		w = vg.Points(2)
	}
	return draw.LineStyle{
		Color:  Translucent(c, s.Alpha),
		Width:  w,
		Dashes: s.Dashes,
	}
}

// Translucent returns c with its alpha scaled to alpha. Values outside
// (0, 1) leave c unchanged.
func Translucent(c color.Color, alpha float64) color.Color {
	if alpha <= 0 || alpha >= 1 {
		return c
	}
	r, g, b, _ := c.RGBA()
	a := alpha * 0xffff
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(a),
	}
}

// newGrid returns the light dashed grid drawn behind every chart.
func newGrid(vertical, horizontal bool) *plotter.Grid {
	g := plotter.NewGrid()
	line := draw.LineStyle{Color: gridColor, Width: vg.Points(0.5), Dashes: Dashed}
	g.Vertical = line
	g.Horizontal = line
	if !vertical {
		g.Vertical.Color = nil
	}
	if !horizontal {
		g.Horizontal.Color = nil
	}
	return g
}
