package config

// Application constants
const (
	// Application Info
	AppName    = "Softwood Lumber Charts"
	AppVersion = "1.0.0"
	ToolName   = "lumbercharts"

	// Default directories (relative to the root directory)
	DefaultDataDir    = "data-python"
	DefaultImagesDir  = "images"
	DefaultReportsDir = "reports"
	DefaultLogsDir    = "logs"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Rendering
	DefaultDPI = 300
)
