package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCell(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantValue   float64
		wantPresent bool
	}{
		{"thousands separator", "1,234", 1234, true},
		{"plain integer", "42", 42, true},
		{"decimal", "3.75", 3.75, true},
		{"negative", "-12.5", -12.5, true},
		{"trailing flag", "45A", 45, true},
		{"trailing flag after space", "1,050 A", 1050, true},
		{"estimate flag", "2,345.6E", 2345.6, true},
		{"leading revision flag", "r123", 123, true},
		{"surrounding whitespace", "  7  ", 7, true},
		{"double dot sentinel", "..", 0, false},
		{"triple dot sentinel", "...", 0, false},
		{"single dot", ".", 0, false},
		{"blank", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"suppressed flag only", "x", 0, false},
		{"flag only", "F", 0, false},
		{"text", "Number", 0, false},
		{"garbage between digits", "12-34", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present := NormalizeCell(tt.raw)
			assert.Equal(t, tt.wantPresent, present)
			if tt.wantPresent {
				assert.Equal(t, tt.wantValue, got)
			}
		})
	}
}
