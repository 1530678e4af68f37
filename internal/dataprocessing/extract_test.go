package dataprocessing

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
)

func widgetTable() *Table {
	return &Table{
		Header: []string{"Label", "January 2020", "February 2020"},
		Rows: [][]string{
			{"Widget production", "1,000", "1,050 A"},
		},
	}
}

func TestExtract_WidgetScenario(t *testing.T) {
	s, err := Extract(widgetTable(), ExactLabel("Widget production"), nil)
	require.NoError(t, err)

	assert.Equal(t, "Widget production", s.Name())
	assert.Equal(t, []Point{
		{Period: Month(2020, time.January), Value: 1000},
		{Period: Month(2020, time.February), Value: 1050},
	}, s.Points())
}

func TestExtract_SkipsBadColumnsAndCells(t *testing.T) {
	tbl := &Table{
		Header: []string{"Geography", "March 2020", "Unnamed: 2", "January 2020", "", "February 2020", "April 2020"},
		Rows: [][]string{
			{"Units", "Number", "", "Number", "", "Number", "Number"},
			{"Canada", "30", "999", "10", "5", "..", "40 E"},
		},
	}

	s, err := Extract(tbl, ExactLabel("Canada"), nil)
	require.NoError(t, err)
	assert.Equal(t, []Period{
		Month(2020, time.January),
		Month(2020, time.March),
		Month(2020, time.April),
	}, s.Periods())
	assert.Equal(t, []float64{10, 30, 40}, s.Values())
}

func TestExtract_ExplicitColumns(t *testing.T) {
	tbl := &Table{
		Header: []string{"Geography", "2019", "2020", "2021"},
		Rows:   [][]string{{"Canada", "1", "2", "3"}},
	}

	s, err := Extract(tbl, ExactLabel("Canada"), []string{"2021", "2019", "Missing column"})
	require.NoError(t, err)
	assert.Equal(t, []Period{Year(2019), Year(2021)}, s.Periods())
}

func TestExtract_DuplicatePeriodLastWins(t *testing.T) {
	tbl := &Table{
		Header: []string{"Label", "March 2021", "Mar-21"},
		Rows:   [][]string{{"Lumber", "1", "2"}},
	}

	s, err := Extract(tbl, ExactLabel("Lumber"), nil)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 2.0, s.First().Value)
}

func TestExtract_RowSelection(t *testing.T) {
	tbl := &Table{
		Header: []string{"Industry", "2020"},
		Rows: [][]string{
			{"Sawmills and wood preservation  [3211]", "1"},
			{"Sawmills and wood preservation, total", "2"},
			{"Construction [23]", "3"},
		},
	}

	tests := []struct {
		name    string
		sel     RowSelector
		wantErr error
		want    float64
	}{
		{"exact match", ExactLabel("Construction [23]"), nil, 3},
		{"exact match trims selector", ExactLabel(" Construction [23] "), nil, 3},
		{"contains unique", ContainsLabel("[3211]"), nil, 1},
		{"regex unique", MatchLabel(regexp.MustCompile(`^Construction`)), nil, 3},
		{"contains ambiguous", ContainsLabel("Sawmills"), apperrors.ErrAmbiguousRow, 0},
		{"regex ambiguous", MatchLabel(regexp.MustCompile(`wood`)), apperrors.ErrAmbiguousRow, 0},
		{"exact not found", ExactLabel("Mining"), apperrors.ErrRowNotFound, 0},
		{"any label on many rows", AnyLabel(), apperrors.ErrAmbiguousRow, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Extract(tbl, tt.sel, nil)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Contains(t, err.Error(), tt.sel.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.First().Value)
		})
	}
}

func TestExtract_AmbiguousRowListsMatches(t *testing.T) {
	tbl := &Table{
		Header: []string{"Label", "2020"},
		Rows:   [][]string{{"Canada", "1"}, {"Canada", "2"}},
	}

	_, err := Extract(tbl, ExactLabel("Canada"), nil)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeAmbiguousRow, appErr.Type)
	assert.Equal(t, []string{"Canada", "Canada"}, appErr.Context["matches"])
}

func TestExtractColumns(t *testing.T) {
	tbl := &Table{
		Header: []string{"Period", "Value ($)", "Note"},
		Rows: [][]string{
			{"Feb-24", "2,000", ""},
			{"Jan-24", "1,000", ""},
			{"Total", "3,000", ""},
			{"Mar-24", "..", ""},
		},
	}

	s, err := ExtractColumns(tbl, "Period", "Value ($)")
	require.NoError(t, err)
	assert.Equal(t, "Value ($)", s.Name())
	assert.Equal(t, []Period{Month(2024, time.January), Month(2024, time.February)}, s.Periods())
	assert.Equal(t, []float64{1000, 2000}, s.Values())

	_, err = ExtractColumns(tbl, "Date", "Value ($)")
	assert.Error(t, err)
	_, err = ExtractColumns(tbl, "Period", "Volume")
	assert.Error(t, err)
}

func TestAnyLabel_SingleRow(t *testing.T) {
	tbl := &Table{
		Header: []string{"", "2000", "", "", "", "2001"},
		Rows:   [][]string{{"Total, all modes", "100", "1", "2", "3", "110"}},
	}

	s, err := Extract(tbl, AnyLabel(), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 110}, s.Values())
}
