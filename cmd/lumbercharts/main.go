// Command lumbercharts regenerates the softwood lumber charts and prints the
// statistics behind each one.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/config"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/files"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/graphs"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/infrastructure"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/operations"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/validation"
)

// options are the command-line overrides applied on top of the loaded
// configuration.
type options struct {
	configPath string
	dataDir    string
	imagesDir  string
	only       string
	parallel   bool
	workers    int
	timeout    time.Duration
	list       bool
	exportCSV  bool
	strict     bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet(config.ToolName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.dataDir, "data", "", "data directory (overrides config)")
	fs.StringVar(&opts.imagesDir, "images", "", "images output directory (overrides config)")
	fs.StringVar(&opts.only, "only", "", "comma-separated unit IDs to run")
	fs.BoolVar(&opts.parallel, "parallel", false, "run units concurrently")
	fs.IntVar(&opts.workers, "workers", 0, "maximum concurrent units in parallel mode")
	fs.DurationVar(&opts.timeout, "timeout", 0, "per-unit timeout, overrides the configured one")
	fs.BoolVar(&opts.list, "list", false, "list the units and the datasets found, then exit")
	fs.BoolVar(&opts.exportCSV, "export-csv", false, "write each unit's series to the reports directory")
	fs.BoolVar(&opts.strict, "strict", false, "exit non-zero when any unit fails")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

// apply layers the flags over cfg
func (o *options) apply(cfg *config.Config) {
	if o.dataDir != "" {
		cfg.Paths.DataDir = o.dataDir
	}
	if o.imagesDir != "" {
		cfg.Paths.ImagesDir = o.imagesDir
	}
	if o.only != "" {
		cfg.Batch.Only = nil
		for _, id := range strings.Split(o.only, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.Batch.Only = append(cfg.Batch.Only, id)
			}
		}
	}
	if o.parallel {
		cfg.Batch.Parallel = true
	}
	if o.workers > 0 {
		cfg.Batch.Workers = o.workers
	}
	if o.timeout > 0 {
		cfg.Batch.Timeout = o.timeout
	}
	if o.exportCSV {
		cfg.Batch.ExportCSV = true
	}
	if o.strict {
		cfg.Batch.Strict = true
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the batch and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	paths := config.NewPaths(cfg.Paths)
	cfg.Logging.FilePath = cfg.Resolve(cfg.Logging.FilePath)
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()
	paths.LogPathResolution(logger)

	env := graphs.NewEnv(cfg, paths, logger)
	registry := operations.NewRegistry()
	if err := graphs.Register(registry, env); err != nil {
		logger.Error("unit_registration_failed", slog.String("error", err.Error()))
		return 1
	}

	if opts.list {
		if err := list(stdout, registry, paths.DataDir); err != nil {
			logger.Error("list_failed", slog.String("error", err.Error()))
			return 1
		}
		return 0
	}
	for _, id := range cfg.Batch.Only {
		if !registry.Has(id) {
			fmt.Fprintf(stderr, "Unknown unit %q; run with -list to see the units\n", id)
			return 2
		}
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(paths.DataDir); err != nil {
		logger.Error("data_directory_invalid",
			slog.String("path", paths.DataDir),
			slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "Data directory not usable: %v\n", err)
		return 1
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("output_directories_failed", slog.String("error", err.Error()))
		return 1
	}
	if err := validator.ValidateOutputDirectory(paths.ImagesDir); err != nil {
		fmt.Fprintf(stderr, "Images directory not writable: %v\n", err)
		return 1
	}

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, paths.LogPath(cfg.Telemetry.TraceFile), stderr, logger)
	if err != nil {
		logger.Error("telemetry_init_failed", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			infrastructure.WithError(logger, err).Warn("telemetry_shutdown_failed")
		}
	}()

	tracer, err := operations.NewOperationTracer(providers)
	if err != nil {
		logger.Error("tracer_init_failed", slog.String("error", err.Error()))
		return 1
	}

	reporter := operations.NewReporter(stdout, paths.ImagesDir)
	manager := operations.NewManager(registry, operations.ConfigFromBatch(cfg.Batch), tracer, reporter, logger)

	ctx = infrastructure.EnsureTraceID(ctx)
	runLog := infrastructure.WithRun(ctx, infrastructure.WithComponent(logger, "cli"))

	reporter.Start(paths.Root)
	state, err := manager.Execute(ctx, operations.OperationRequest{
		ID:    "batch-" + uuid.NewString()[:8],
		Steps: cfg.Batch.Only,
	})
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	if err := providers.WriteMetrics(paths.ReportPath(cfg.Telemetry.MetricsFile)); err != nil {
		infrastructure.WithError(runLog, err).Warn("metrics_write_failed")
	}

	runLog.Info("batch_result", slog.Any("result", operations.NewOperationResponse(state)))
	if n, err := validator.CountFiles(paths.ImagesDir, "*.png"); err == nil {
		runLog.Info("images_present", slog.String("dir", paths.ImagesDir), slog.Int("count", n))
	}
	if err := state.Err(); err != nil {
		infrastructure.WithError(runLog, err).Warn("batch_failures")
		if cfg.Batch.Strict {
			return 1
		}
	}
	return 0
}

// list prints the registered units with their inputs and the datasets
// present under the data directory.
func list(w io.Writer, registry *operations.Registry, dataDir string) error {
	fmt.Fprintf(w, "%s %s\n\nUnits:\n", config.AppName, config.AppVersion)
	for _, id := range registry.ListIDs() {
		step, err := registry.Get(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-20s %s\n", step.ID(), step.Name())
		if u, ok := step.(*graphs.Unit); ok {
			for _, in := range u.Inputs() {
				marker := " "
				if !config.FileExists(in) {
					marker = "!"
				}
				fmt.Fprintf(w, "    %s %s\n", marker, in)
			}
		}
	}

	datasets, err := files.NewDiscovery(dataDir).FindDatasets()
	if err != nil {
		return fmt.Errorf("scan %s: %w", dataDir, err)
	}
	fmt.Fprintf(w, "\nDatasets in %s (%d):\n", dataDir, len(datasets))
	for _, d := range datasets {
		fmt.Fprintf(w, "  %-55s %10d  %s\n", d.Rel, d.Size, d.ModTime.Format("2006-01-02"))
	}
	return nil
}
