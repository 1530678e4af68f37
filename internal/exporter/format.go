package exporter

import (
	"strconv"
)

// formatFloat formats a float64 value for CSV output. Values keep their full
// precision so exported series round-trip exactly.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
