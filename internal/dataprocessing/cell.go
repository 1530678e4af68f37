package dataprocessing

import (
	"strconv"
	"strings"
	"unicode"
)

// missingSentinels are the cell values statistics agencies publish in place
// of a number.
var missingSentinels = map[string]bool{
	"":    true,
	".":   true,
	"..":  true,
	"...": true,
}

// NormalizeCell converts a raw table cell into a number. Quality-flag letters
// around the number ("1,050 A", "45E", "r123") and thousands separators are
// stripped. The second result is false for sentinel markers, blanks and any
// cell that still fails to parse; NormalizeCell never fails loudly.
func NormalizeCell(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if missingSentinels[s] {
		return 0, false
	}

	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsSpace(r)
	})
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
