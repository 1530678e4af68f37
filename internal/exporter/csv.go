package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/files"
)

// utf8BOM helps Excel recognise UTF-8 CSV files
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	files *files.Manager
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(manager *files.Manager) *CSVWriter {
	return &CSVWriter{files: manager}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options. Relative
// paths resolve through the file manager, e.g. "reports/employment.csv".
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	slog.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	return w.files.AtomicWrite(filePath, func(out io.Writer) error {
		if options.BOMPrefix {
			if _, err := out.Write(utf8BOM); err != nil {
				return fmt.Errorf("failed to write BOM: %w", err)
			}
		}

		writer := csv.NewWriter(out)

		if len(options.Headers) > 0 {
			if err := writer.Write(options.Headers); err != nil {
				return fmt.Errorf("failed to write headers: %w", err)
			}
		}

		for i, record := range options.Records {
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
		}

		writer.Flush()
		return writer.Error()
	})
}

// WriteSimpleCSV writes a simple CSV file with headers and records
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteSeriesCSV exports series side by side, one row per period in the
// union of their periods. A series without a value for a period leaves the
// cell empty.
func (w *CSVWriter) WriteSeriesCSV(filePath string, series ...dataprocessing.Series) error {
	headers, records := SeriesRecords(series...)
	return w.WriteSimpleCSV(filePath, headers, records)
}

// SeriesRecords lays series out as a "period" column followed by one column
// per series
func SeriesRecords(series ...dataprocessing.Series) ([]string, [][]string) {
	headers := make([]string, 0, len(series)+1)
	headers = append(headers, "period")

	seen := make(map[dataprocessing.Period]bool)
	var periods []dataprocessing.Period
	for i, s := range series {
		name := s.Name()
		if name == "" {
			name = fmt.Sprintf("series_%d", i+1)
		}
		headers = append(headers, name)
		for _, p := range s.Periods() {
			if !seen[p] {
				seen[p] = true
				periods = append(periods, p)
			}
		}
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Before(periods[j])
	})

	records := make([][]string, len(periods))
	for r, p := range periods {
		row := make([]string, len(series)+1)
		row[0] = p.String()
		for c, s := range series {
			if v, ok := s.Value(p); ok {
				row[c+1] = formatFloat(v)
			}
		}
		records[r] = row
	}
	return headers, records
}
