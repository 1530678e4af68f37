// Package config provides centralized configuration management for the chart
// batch. It handles loading configuration from multiple sources, validation,
// and resolution of the input and output directories.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern LUMBER_<SECTION>_<KEY>:
//
//	LUMBER_LOGGING_LEVEL=debug
//	LUMBER_PATHS_DATA_DIR=/srv/statcan
//	LUMBER_RENDER_DPI=150
//	LUMBER_BATCH_PARALLEL=true
//	LUMBER_BATCH_TIMEOUTS=tariff-timeline:90s,employment:30s
//	LUMBER_TELEMETRY_TRACE_EXPORTER=file
//
// # Path Management
//
// Paths resolves every directory against the root directory, which defaults
// to the working directory:
//
//	paths := config.NewPaths(cfg.Paths)
//	csv := paths.DataFile("employment/1410020201-eng.csv")
//	png := paths.ImagePath("employment.png")
//
// # Validation
//
// Struct tags are checked with go-playground/validator at load time.
package config
