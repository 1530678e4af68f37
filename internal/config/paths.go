package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	Root       string
	DataDir    string
	ImagesDir  string
	ReportsDir string
	LogsDir    string
}

// NewPaths resolves the configured directories against the root directory.
// Absolute directories are kept as given.
func NewPaths(cfg PathsConfig) *Paths {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(cfg.Root, p)
	}
	return &Paths{
		Root:       cfg.Root,
		DataDir:    resolve(cfg.DataDir),
		ImagesDir:  resolve(cfg.ImagesDir),
		ReportsDir: resolve(cfg.ReportsDir),
		LogsDir:    resolve(cfg.LogsDir),
	}
}

// EnsureDirectories creates the output directories if they don't exist.
// The data directory is input only and is never created.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.ImagesDir,
		p.ReportsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}

	return nil
}

// DataFile returns the path of a dataset file, given relative to the data
// directory (e.g. "employment/1410020201-eng.csv").
func (p *Paths) DataFile(rel string) string {
	return filepath.Join(p.DataDir, filepath.FromSlash(rel))
}

// ImagePath returns the path for a chart image
func (p *Paths) ImagePath(filename string) string {
	return filepath.Join(p.ImagesDir, filename)
}

// ReportPath returns the path for a report file
func (p *Paths) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// LogPath returns the path for a log file
func (p *Paths) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("root", p.Root),
			slog.String("data", p.DataDir),
			slog.String("images", p.ImagesDir),
			slog.String("reports", p.ReportsDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("status",
			slog.Bool("data_exists", FileExists(p.DataDir)),
		))
}
