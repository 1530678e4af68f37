package exporter

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/config"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/files"
)

func newTestWriter(t *testing.T) (*CSVWriter, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(config.PathsConfig{
		Root:       t.TempDir(),
		DataDir:    "data",
		ImagesDir:  "images",
		ReportsDir: "reports",
		LogsDir:    "logs",
	})
	return NewCSVWriter(files.NewManager(paths)), paths
}

func TestSeriesRecords(t *testing.T) {
	value := dataprocessing.NewSeries("value_index", []dataprocessing.Point{
		{Period: dataprocessing.Month(2017, time.January), Value: 100},
		{Period: dataprocessing.Month(2017, time.February), Value: 104.25},
	})
	volume := dataprocessing.NewSeries("", []dataprocessing.Point{
		{Period: dataprocessing.Month(2017, time.February), Value: 98.5},
		{Period: dataprocessing.Month(2017, time.March), Value: 97},
	})

	headers, records := SeriesRecords(value, volume)

	assert.Equal(t, []string{"period", "value_index", "series_2"}, headers)
	assert.Equal(t, [][]string{
		{"2017-01", "100", ""},
		{"2017-02", "104.25", "98.5"},
		{"2017-03", "", "97"},
	}, records)
}

func TestCSVWriter_WriteSeriesCSV(t *testing.T) {
	writer, paths := newTestWriter(t)

	employment := dataprocessing.NewSeries("employment", []dataprocessing.Point{
		{Period: dataprocessing.Year(2023), Value: 21450},
		{Period: dataprocessing.Year(2024), Value: 20875},
	})

	require.NoError(t, writer.WriteSeriesCSV("reports/employment.csv", employment))

	content, err := os.ReadFile(paths.ReportPath("employment.csv"))
	require.NoError(t, err)
	assert.Equal(t, "\ufeffperiod,employment\n2023,21450\n2024,20875\n", string(content))
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	writer, paths := newTestWriter(t)

	require.NoError(t, writer.WriteCSV("reports/plain.csv", WriteOptions{
		Records: [][]string{{"a", "b,c"}},
	}))

	content, err := os.ReadFile(paths.ReportPath("plain.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,\"b,c\"\n", string(content))
}
