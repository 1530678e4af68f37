// Package dataprocessing turns statistics-agency table exports into clean,
// ordered time series and derives the figures reported alongside each chart.
//
// # Architecture
//
// The package is organized into four layers:
//
// 1. Loading: LoadCSV, ReadCSV and LoadExcel read a Table after skipping a
// caller-supplied number of preamble lines
// 2. Cleaning: NormalizeCell and ParsePeriod turn raw cells and column
// headers into numbers and Period keys
// 3. Extraction: Extract and ExtractColumns select one row with a RowSelector
// and build a Series, skipping cells that do not parse
// 4. Derivation: Merge, Rebase, AggregateByYear, Describe, LinearFit and
// friends; pure functions from Series to Series or to summaries
//
// # Usage
//
//	tbl, err := dataprocessing.LoadCSV("lumber-output/1610001701-eng.csv",
//	    dataprocessing.LoadOptions{SkipRows: 9})
//	if err != nil {
//	    return err
//	}
//	output, err := dataprocessing.Extract(tbl,
//	    dataprocessing.ExactLabel("Total softwood and hardwood, production"), nil)
//	if err != nil {
//	    return err
//	}
//	index, err := dataprocessing.RebaseFirst(output)
//
// # Error Handling
//
// Cells and headers that cannot be parsed are skipped, never reported.
// Structural problems return typed errors from internal/errors that can be
// matched with errors.Is:
//
//   - ErrRowNotFound and ErrAmbiguousRow when a selector does not resolve
//     to exactly one row
//   - ErrBasePeriodNotFound when rebasing to an absent period
//   - ErrEmptySeries and ErrInsufficientData when a statistic has too little
//     data
//
// # Testing
//
// Use table-driven tests when adding new functionality.
package dataprocessing
