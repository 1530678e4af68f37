package dataprocessing

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
)

const utf8BOM = "\ufeff"

// Table is a loaded statistics export: one header row followed by data
// rows. Column 0 holds the row labels.
type Table struct {
	Source string
	Header []string
	Rows   [][]string
}

// LoadOptions describes the fixed layout of a source file.
type LoadOptions struct {
	// SkipRows is the number of preamble lines before the header row.
	SkipRows int
	// MaxRows limits the number of data rows read; zero means no limit.
	MaxRows int
	// Sheet selects the workbook sheet for Excel sources; empty means the first.
	Sheet string
}

// LoadTable loads a table from a CSV or Excel file, chosen by extension.
func LoadTable(path string, opts LoadOptions) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadExcel(path, opts)
	default:
		return LoadCSV(path, opts)
	}
}

// LoadCSV reads a delimited export from disk.
func LoadCSV(path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	t, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	t.Source = path
	return t, nil
}

// ReadCSV reads a delimited export. SkipRows counts physical lines, matching
// how the agencies number their preamble.
func ReadCSV(r io.Reader, opts LoadOptions) (*Table, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		br.Discard(len(utf8BOM))
	}
	for i := 0; i < opts.SkipRows; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return nil, apperrors.NewParsingError(
					fmt.Sprintf("file ended after %d of %d preamble lines", i, opts.SkipRows), nil)
			}
			return nil, apperrors.NewStorageError("failed to skip preamble", err)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("malformed CSV record", err)
		}
		records = append(records, rec)
		if opts.MaxRows > 0 && len(records) > opts.MaxRows {
			break
		}
	}
	return newTable(records)
}

// LoadExcel reads the same table shape from an Excel workbook.
func LoadExcel(path string, opts LoadOptions) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	if opts.SkipRows >= len(rows) {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("sheet %q has %d rows, cannot skip %d", sheet, len(rows), opts.SkipRows), nil)
	}
	rows = rows[opts.SkipRows:]
	if opts.MaxRows > 0 && len(rows) > opts.MaxRows+1 {
		rows = rows[:opts.MaxRows+1]
	}

	t, err := newTable(rows)
	if err != nil {
		return nil, err
	}
	t.Source = path
	return t, nil
}

func newTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("table has no header row", nil)
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}
	return &Table{Header: header, Rows: records[1:]}, nil
}

// ColumnIndex returns the index of the named header, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the raw cell at row/col, or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Label returns the label column of a row.
func (t *Table) Label(row int) string {
	return strings.TrimSpace(t.Cell(row, 0))
}
