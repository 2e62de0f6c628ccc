package sheetgen

import (
	"github.com/okian/availreport/internal/domain/sample"
	"github.com/okian/availreport/internal/domain/sheet"
)

// Fixture returns the ten row reference sheet. Expected aggregates:
//
//	overall  10 rows, mean 54.3
//	North     4 rows, mean 76.5, 76-100 holds 3 (mean 82.0)
//	South     3 rows, mean 58.7
//	East      3 rows, mean 20.3, 0-25 holds 2 (mean 17.5)
//
// PGM only occurs in South.
func Fixture() *sheet.Table {
	return sheet.FromStrings(sample.Columns, [][]string{
		{"E01", "Ann", "PM", "North", "90%"},
		{"E02", "Bob", "SCRUM Master", "North", "80%"},
		{"E03", "Cid", "PM", "North", "76"},
		{"E04", "Dee", "TPDL", "North", "60.9"},
		{"E05", "Eve", "PGM", "South", "75%"},
		{"E06", "Fay", "Developer", "South", "51%"},
		{"E07", "Gus", "PM", "South", "50%"},
		{"E08", "Hal", "SCRUM PM", "East", "26%"},
		{"E09", "Ivy", "TPDL", "East", "25%"},
		{"E10", "Jon", "PM", "East", "10%"},
	})
}
