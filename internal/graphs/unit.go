package graphs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"gonum.org/v1/plot/vg"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/operations"
)

// dataset is the fixed layout of one input file.
type dataset struct {
	// Path is relative to the data directory.
	Path    string
	Skip    int
	MaxRows int
}

func (d dataset) options() dataprocessing.LoadOptions {
	return dataprocessing.LoadOptions{SkipRows: d.Skip, MaxRows: d.MaxRows}
}

// runFunc draws one unit's charts and prints its statistics to out.
type runFunc func(ctx context.Context, u *Unit, out *exporter.Summary) error

// Unit is one chart-generation step of the batch.
type Unit struct {
	operations.BaseStage
	env    *Env
	inputs []dataset
	run    runFunc
}

func newUnit(env *Env, id, name string, inputs []dataset, run runFunc) *Unit {
	return &Unit{
		BaseStage: operations.NewBaseStage(id, name),
		env:       env,
		inputs:    inputs,
		run:       run,
	}
}

// Inputs returns the absolute paths of the files the unit reads.
func (u *Unit) Inputs() []string {
	paths := make([]string, len(u.inputs))
	for i, d := range u.inputs {
		paths[i] = u.env.Paths.DataFile(d.Path)
	}
	return paths
}

// Execute checks the inputs, then runs the unit with its report written to
// out.
func (u *Unit) Execute(ctx context.Context, out io.Writer) error {
	if err := u.env.Validator.ValidateDataFiles(u.Inputs()...); err != nil {
		return err
	}
	summary := exporter.NewSummary(out)
	if err := u.run(ctx, u, summary); err != nil {
		return err
	}
	return summary.Err()
}

// load reads one of the unit's datasets.
func (u *Unit) load(ctx context.Context, d dataset) (*dataprocessing.Table, error) {
	t, err := dataprocessing.LoadTable(u.env.Paths.DataFile(d.Path), d.options())
	if err != nil {
		return nil, err
	}
	u.env.Logger.DebugContext(ctx, "dataset_loaded",
		slog.String("path", d.Path),
		slog.Int("rows", len(t.Rows)),
		slog.Int("columns", len(t.Header)))
	return t, nil
}

// save renders ch at the default size into the images directory.
func (u *Unit) save(ctx context.Context, ch charts.Chart, file string) error {
	return u.saveWith(ctx, u.env.Renderer, ch, file)
}

func (u *Unit) saveWith(ctx context.Context, r *charts.Renderer, ch charts.Chart, file string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := u.env.Paths.ImagePath(file)
	if err := r.Save(ch, path); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	u.env.Logger.InfoContext(ctx, "chart_saved", slog.String("path", u.displayPath(path)))
	return nil
}

// scatterRenderer draws regression plots at the narrower scatter width.
func (u *Unit) scatterRenderer() *charts.Renderer {
	r := u.env.Renderer
	return r.Sized(u.env.ScatterWidth, float64(r.Height/vg.Inch))
}

// export writes the unit's series to reports/<id>.csv when CSV export is on.
func (u *Unit) export(ctx context.Context, series ...dataprocessing.Series) error {
	if !u.env.ExportCSV {
		return nil
	}
	path := u.env.Paths.ReportPath(u.ID() + ".csv")
	if err := u.env.CSV.WriteSeriesCSV(path, series...); err != nil {
		return fmt.Errorf("export %s: %w", u.ID(), err)
	}
	u.env.Logger.InfoContext(ctx, "series_exported", slog.String("path", u.displayPath(path)))
	return nil
}

// displayPath shortens path to be relative to the project root for logs.
func (u *Unit) displayPath(path string) string {
	if rel, err := u.env.Files.GetRelativePath(path); err == nil {
		return rel
	}
	return path
}

// formatValue renders a number for CSV output without rounding.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
