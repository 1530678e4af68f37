// Package exporter writes the text and CSV outputs of the chart units.
//
// Summary prints the statistics block each unit writes to standard output,
// with thousands separators from golang.org/x/text. CSVWriter exports the
// cleaned series of a unit for use outside the batch.
//
// Example usage:
//
//	sum := exporter.NewSummary(out)
//	sum.Section("Lumber Production Summary Statistics")
//	sum.Linef("Mean Production: %s thousand cubic metres", sum.Num(stats.Mean, 0))
//
//	writer := exporter.NewCSVWriter(files.NewManager(paths))
//	err := writer.WriteSeriesCSV("reports/lumber_output.csv", production)
package exporter
