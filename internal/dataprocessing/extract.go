package dataprocessing

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
)

// RowSelector picks rows of a table by their label.
type RowSelector interface {
	Match(label string) bool
	String() string
}

type exactLabel string

// ExactLabel selects the row whose trimmed label equals label.
func ExactLabel(label string) RowSelector {
	return exactLabel(strings.TrimSpace(label))
}

func (e exactLabel) Match(label string) bool { return label == string(e) }
func (e exactLabel) String() string          { return fmt.Sprintf("label %q", string(e)) }

type containsLabel string

// ContainsLabel selects rows whose label contains substr.
func ContainsLabel(substr string) RowSelector {
	return containsLabel(substr)
}

func (c containsLabel) Match(label string) bool { return strings.Contains(label, string(c)) }
func (c containsLabel) String() string          { return fmt.Sprintf("label containing %q", string(c)) }

type matchLabel struct {
	re *regexp.Regexp
}

// MatchLabel selects rows whose label matches the regular expression.
func MatchLabel(re *regexp.Regexp) RowSelector {
	return matchLabel{re: re}
}

func (m matchLabel) Match(label string) bool { return m.re.MatchString(label) }
func (m matchLabel) String() string          { return fmt.Sprintf("label matching /%s/", m.re) }

type anyLabel struct{}

// AnyLabel selects every row. It resolves only on tables holding a single
// data row, such as those loaded with LoadOptions.MaxRows set to 1.
func AnyLabel() RowSelector {
	return anyLabel{}
}

func (anyLabel) Match(string) bool { return true }
func (anyLabel) String() string    { return "any label" }

// SelectRow resolves sel to exactly one row index of t.
func SelectRow(t *Table, sel RowSelector) (int, error) {
	var (
		found   = -1
		matches []string
	)
	for i := range t.Rows {
		label := t.Label(i)
		if !sel.Match(label) {
			continue
		}
		if found < 0 {
			found = i
		}
		matches = append(matches, label)
	}
	switch len(matches) {
	case 0:
		return -1, apperrors.RowNotFound(sel.String())
	case 1:
		return found, nil
	default:
		return -1, apperrors.AmbiguousRow(sel.String(), matches)
	}
}

// Extract reads the row chosen by sel as a series. columns lists the period
// headers to read, in order; nil means every header after the label column.
// Columns whose header is not a period and cells that normalize to missing
// are skipped. When two columns name the same period, the later one wins.
func Extract(t *Table, sel RowSelector, columns []string) (Series, error) {
	row, err := SelectRow(t, sel)
	if err != nil {
		return Series{}, err
	}

	type column struct {
		header string
		index  int
	}
	var cols []column
	if columns == nil {
		for i := 1; i < len(t.Header); i++ {
			cols = append(cols, column{t.Header[i], i})
		}
	} else {
		for _, h := range columns {
			if i := t.ColumnIndex(h); i > 0 {
				cols = append(cols, column{h, i})
			}
		}
	}

	points := make([]Point, 0, len(cols))
	for _, col := range cols {
		period, err := ParsePeriod(col.header)
		if err != nil {
			continue
		}
		value, ok := NormalizeCell(t.Cell(row, col.index))
		if !ok {
			continue
		}
		points = append(points, Point{Period: period, Value: value})
	}
	return NewSeries(t.Label(row), points), nil
}

// ExtractColumns reads a long-format table where each row holds one period,
// such as a monthly trade export. Rows whose period or value fails to parse
// are skipped. Later rows win on duplicate periods.
func ExtractColumns(t *Table, periodCol, valueCol string) (Series, error) {
	pi := t.ColumnIndex(periodCol)
	if pi < 0 {
		return Series{}, apperrors.NewNotFoundError(fmt.Sprintf("column %q", periodCol))
	}
	vi := t.ColumnIndex(valueCol)
	if vi < 0 {
		return Series{}, apperrors.NewNotFoundError(fmt.Sprintf("column %q", valueCol))
	}

	points := make([]Point, 0, len(t.Rows))
	for row := range t.Rows {
		period, err := ParsePeriod(t.Cell(row, pi))
		if err != nil {
			continue
		}
		value, ok := NormalizeCell(t.Cell(row, vi))
		if !ok {
			continue
		}
		points = append(points, Point{Period: period, Value: value})
	}
	return NewSeries(valueCol, points), nil
}
