package charts

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/config"
	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/files"
)

// Chart is anything that can be laid out as a gonum plot.
type Chart interface {
	Plot() (*plot.Plot, error)
}

// Renderer rasterizes charts to PNG at a fixed size and resolution.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
	DPI    int

	files *files.Manager
}

// NewRenderer creates a renderer from the render configuration. Saved images
// are written through fm.
func NewRenderer(cfg config.RenderConfig, fm *files.Manager) *Renderer {
	return &Renderer{
		Width:  vg.Length(cfg.WidthInches) * vg.Inch,
		Height: vg.Length(cfg.HeightInches) * vg.Inch,
		DPI:    cfg.DPI,
		files:  fm,
	}
}

// Sized returns a copy of r that draws at the given size in inches.
func (r *Renderer) Sized(widthInches, heightInches float64) *Renderer {
	out := *r
	out.Width = vg.Length(widthInches) * vg.Inch
	out.Height = vg.Length(heightInches) * vg.Inch
	return &out
}

// Render draws ch and encodes it as PNG to w.
func (r *Renderer) Render(ch Chart, w io.Writer) error {
	p, err := ch.Plot()
	if err != nil {
		return apperrors.NewRenderError("failed to lay out chart", err)
	}

	img := vgimg.NewWith(vgimg.UseWH(r.Width, r.Height), vgimg.UseDPI(r.DPI))
	p.Draw(draw.New(img))

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return apperrors.NewRenderError("failed to encode PNG", err)
	}
	return nil
}

// Save renders ch to path. The image replaces any existing file only once
// it has been written completely.
func (r *Renderer) Save(ch Chart, path string) error {
	if r.files == nil {
		return apperrors.NewRenderError(fmt.Sprintf("no file manager to save %s", path), nil)
	}
	return r.files.AtomicWrite(path, func(w io.Writer) error {
		return r.Render(ch, w)
	})
}
