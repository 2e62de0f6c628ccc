// Package sheet holds the in-memory row set produced by the loaders.
package sheet

import (
	"strings"
)

// Table is a header row plus data rows. Cells keep whatever type the
// source produced (string from spreadsheets, numbers from callers that
// build tables in code).
type Table struct {
	Columns []string
	Rows    [][]any
}

// FromStrings builds a table from string cells. Short rows are padded
// and long rows truncated to the header width.
func FromStrings(header []string, rows [][]string) *Table {
	t := &Table{
		Columns: append([]string(nil), header...),
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		row := make([]any, len(header))
		for i := range row {
			if i < len(r) {
				row[i] = r[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FromMaps builds a table with the given column order from keyed rows.
// Keys not listed in columns are ignored; absent keys become nil cells.
func FromMaps(columns []string, rows []map[string]any) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, m := range rows {
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = m[c]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of the column whose trimmed header equals
// name, or -1.
func (t *Table) Index(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if strings.TrimSpace(c) == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row/col, or nil when out of range.
func (t *Table) Cell(row, col int) any {
	if t == nil || row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][col]
}
