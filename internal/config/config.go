package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "LUMBER"

// Config represents the complete application configuration. Defaults come
// from Default; a YAML file and then LUMBER_* environment variables are
// layered on top.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Render    RenderConfig    `yaml:"render" envconfig:"RENDER"`
	Batch     BatchConfig     `yaml:"batch" envconfig:"BATCH"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration. Relative paths are
// resolved against Root.
type PathsConfig struct {
	Root       string `yaml:"root" envconfig:"ROOT"`
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ImagesDir  string `yaml:"images_dir" envconfig:"IMAGES_DIR" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// RenderConfig controls raster output of the charts
type RenderConfig struct {
	DPI          int     `yaml:"dpi" envconfig:"DPI" validate:"min=50,max=1200"`
	WidthInches  float64 `yaml:"width_inches" envconfig:"WIDTH_INCHES" validate:"gt=0,lte=40"`
	HeightInches float64 `yaml:"height_inches" envconfig:"HEIGHT_INCHES" validate:"gt=0,lte=40"`

	// ScatterWidthInches narrows regression plots.
	ScatterWidthInches float64 `yaml:"scatter_width_inches" envconfig:"SCATTER_WIDTH_INCHES" validate:"gt=0,lte=40"`
}

// BatchConfig controls how chart units are run
type BatchConfig struct {
	Parallel  bool     `yaml:"parallel" envconfig:"PARALLEL"`
	Workers   int      `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
	Only      []string `yaml:"only" envconfig:"ONLY"`
	ExportCSV bool     `yaml:"export_csv" envconfig:"EXPORT_CSV"`
	Strict    bool     `yaml:"strict" envconfig:"STRICT"`
	// Timeout bounds each unit; zero means no limit.
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"min=0"`
	// Timeouts overrides Timeout for the named units.
	Timeouts map[string]time.Duration `yaml:"timeouts" envconfig:"TIMEOUTS"`
}

// TelemetryConfig controls tracing and run metrics
type TelemetryConfig struct {
	Enabled        bool   `yaml:"enabled" envconfig:"ENABLED"`
	ServiceName    string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required_if=Enabled true"`
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none file stdout"`
	TraceFile      string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile    string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
}

// Load loads configuration from environment variables and config file.
// An explicit path that does not exist is an error; with an empty path the
// common locations are searched.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	} else if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("config file %s", path), err)
	}

	// Load from config file if exists
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
	}

	// Environment variables take precedence over the file
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, apperrors.NewConfigError("failed to resolve paths", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// resolvePaths anchors the configured directories to the root directory,
// which defaults to the working directory.
func (c *Config) resolvePaths() error {
	if c.Paths.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		c.Paths.Root = wd
	}
	root, err := filepath.Abs(c.Paths.Root)
	if err != nil {
		return err
	}
	c.Paths.Root = root
	return nil
}

// Validate checks the struct tags of every section
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	return nil
}

// Resolve returns the absolute location of p, anchored at the root directory.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Paths.Root, p)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"lumbercharts.yaml",
		"configs/lumbercharts.yaml",
		"../configs/lumbercharts.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/lumbercharts.log",
		},
		Paths: PathsConfig{
			DataDir:    DefaultDataDir,
			ImagesDir:  DefaultImagesDir,
			ReportsDir: DefaultReportsDir,
			LogsDir:    DefaultLogsDir,
		},
		Render: RenderConfig{
			DPI:                DefaultDPI,
			WidthInches:        16,
			HeightInches:       8,
			ScatterWidthInches: 12,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Telemetry: TelemetryConfig{
			Enabled:        true,
			ServiceName:    ToolName,
			TraceExporter:  "none",
			TraceFile:      "traces.jsonl",
			MetricsFile:    "lumbercharts.prom",
			MetricsEnabled: true,
		},
	}
}
