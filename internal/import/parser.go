package importutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ParsedData represents the raw data extracted from a file.
type ParsedData struct {
	Headers []string   // Column headers, as written in the file
	Rows    [][]string // Data rows (all values as strings)
}

// ParseFile reads a CSV file into headers and rows without interpreting
// the values. JSON catalog files are read by catalog.Load instead.
func ParseFile(filename string, reader io.Reader) (*ParsedData, error) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".csv":
		return parseCSV(reader)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", path.Ext(filename))
	}
}

func parseCSV(reader io.Reader) (*ParsedData, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, errors.New("CSV file is empty")
	}

	rows := records[1:]
	if len(rows) == 0 {
		return nil, errors.New("CSV file has no data rows")
	}

	return &ParsedData{
		Headers: records[0],
		Rows:    rows,
	}, nil
}
