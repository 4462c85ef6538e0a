// Package datatable loads CSV files whose rows parameterize script runs.
package datatable

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Table is a loaded datatable: one script run per row.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Load reads a CSV file. The header row names the variables; every record
// becomes one row map. Values are whitespace-trimmed.
func Load(path string) (*Table, error) {
	f, err := os.Open(path) //#nosec G304 -- path is user-provided datatable file
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: datatable has no header row", path)
	}

	t := &Table{}
	for _, col := range records[0] {
		t.Columns = append(t.Columns, strings.TrimSpace(col))
	}

	for i, rec := range records[1:] {
		if len(rec) != len(t.Columns) {
			return nil, fmt.Errorf("%s: record %d has %d values, header has %d", path, i+1, len(rec), len(t.Columns))
		}
		row := make(map[string]string, len(t.Columns))
		for j, col := range t.Columns {
			row[col] = strings.TrimSpace(rec[j])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
