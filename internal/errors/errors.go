package errors

import "fmt"

// Kind sentinels. Compare with errors.Is; any AppError of the same Type matches.
var (
	// ErrParseFailure marks a single cell or header that could not be parsed.
	// It is absorbed by extraction and never aborts a chart.
	ErrParseFailure = &AppError{Type: ErrTypeParsing, Message: "parse failure"}

	// ErrRowNotFound is returned when a row selector matches no rows.
	ErrRowNotFound = &AppError{Type: ErrTypeRowNotFound, Message: "row not found"}

	// ErrAmbiguousRow is returned when a row selector matches more than one row.
	ErrAmbiguousRow = &AppError{Type: ErrTypeAmbiguousRow, Message: "ambiguous row"}

	// ErrEmptySeries is returned by summaries of a series with no points.
	ErrEmptySeries = &AppError{Type: ErrTypeEmptySeries, Message: "empty series"}

	// ErrBasePeriodNotFound is returned when rebasing to a period the series lacks.
	ErrBasePeriodNotFound = &AppError{Type: ErrTypeBasePeriodNotFound, Message: "base period not found"}

	// ErrInsufficientData is returned when a statistic's preconditions are not met.
	ErrInsufficientData = &AppError{Type: ErrTypeInsufficientData, Message: "insufficient data"}
)

// RowNotFound creates a row selection error for a selector that matched nothing
func RowNotFound(selector string) *AppError {
	return NewAppError(ErrTypeRowNotFound, fmt.Sprintf("no row matches %s", selector), nil).
		WithContext("selector", selector)
}

// AmbiguousRow creates a row selection error for a selector that matched several rows
func AmbiguousRow(selector string, matches []string) *AppError {
	return NewAppError(ErrTypeAmbiguousRow,
		fmt.Sprintf("%d rows match %s", len(matches), selector), nil).
		WithContext("selector", selector).
		WithContext("matches", matches)
}

// EmptySeries creates an empty series error
func EmptySeries(name string) *AppError {
	return NewAppError(ErrTypeEmptySeries, fmt.Sprintf("series %q has no data points", name), nil)
}

// BasePeriodNotFound creates an error for a missing rebasing period
func BasePeriodNotFound(series, period string) *AppError {
	return NewAppError(ErrTypeBasePeriodNotFound,
		fmt.Sprintf("series %q has no value for base period %s", series, period), nil)
}

// InsufficientData creates an error for a computation lacking data
func InsufficientData(message string) *AppError {
	return NewAppError(ErrTypeInsufficientData, message, nil)
}
