// Package converter turns spreadsheet files into header-plus-rows tables.
package converter

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
)

// Table is converter output: the first line's fields and every following record
type Table struct {
	Header []string
	Rows   [][]string
}

// Converter reads a spreadsheet file into a Table
type Converter interface {
	// EnsureAvailable fails when the converter cannot run on this host
	EnsureAvailable() error
	// Convert reads the first sheet of the file at path
	Convert(path string) (*Table, error)
}

// ParseTable parses comma separated converter output. Only the text before
// the first form feed is read, since xls2csv separates sheets with one.
// Empty input yields an empty Table.
func ParseTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if i := bytes.IndexByte(data, '\f'); i >= 0 {
		data = data[:i]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return tableFromRows(records), nil
}

// tableFromRows splits rows into header and records, dropping rows whose
// cells are all blank
func tableFromRows(rows [][]string) *Table {
	t := &Table{}
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		if t.Header == nil {
			t.Header = row
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
