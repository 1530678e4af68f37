package graphs

import (
	"log/slog"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/config"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/files"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/infrastructure"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/validation"
)

// Env carries the collaborators every chart unit needs. Units only read from
// it, so one Env is shared by units running in parallel.
type Env struct {
	Paths     *config.Paths
	Files     *files.Manager
	Renderer  *charts.Renderer
	Validator *validation.FileValidator
	CSV       *exporter.CSVWriter
	// ExportCSV writes each unit's cleaned series to the reports directory.
	ExportCSV bool
	// ScatterWidth is the width in inches of regression plots.
	ScatterWidth float64
	Logger       *slog.Logger
}

// NewEnv wires the collaborators from the loaded configuration.
func NewEnv(cfg *config.Config, paths *config.Paths, logger *slog.Logger) *Env {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	fm := files.NewManager(paths)
	return &Env{
		Paths:        paths,
		Files:        fm,
		Renderer:     charts.NewRenderer(cfg.Render, fm),
		Validator:    validation.NewFileValidator(logger),
		CSV:          exporter.NewCSVWriter(fm),
		ExportCSV:    cfg.Batch.ExportCSV,
		ScatterWidth: cfg.Render.ScatterWidthInches,
		Logger:       infrastructure.WithComponent(logger, "graphs"),
	}
}
