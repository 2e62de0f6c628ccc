// Package sample provides the built-in demonstration dataset.
package sample

import (
	"fmt"

	"github.com/okian/availreport/internal/domain/sheet"
)

// Size is the number of associates in the demo dataset.
const Size = 50

var (
	roles        = []string{"Developer", "Analyst", "Manager", "SCRUM Master", "TPDL", "PM", "PGM"}
	regions      = []string{"North", "South", "East", "West"}
	availability = []int{85, 60, 40, 90, 75, 30, 95, 55, 25, 80}
)

// Columns is the header of the demo dataset.
var Columns = []string{"Associate ID", "Associate Name", "Current Role", "Region", "Current Availability"}

// Table returns a fresh copy of the demo dataset: EMP001..EMP050 cycling
// through seven role labels, four regions and a ten step availability
// pattern. The role cycle covers 49 rows and the region cycle 48; the
// remaining rows fall back to Developer and North/South.
func Table() *sheet.Table {
	rows := make([][]string, 0, Size)
	for i := 0; i < Size; i++ {
		role := "Developer"
		if i < len(roles)*7 {
			role = roles[i%len(roles)]
		}
		region := []string{"North", "South"}[i%2]
		if i < len(regions)*12 {
			region = regions[i%len(regions)]
		}
		rows = append(rows, []string{
			fmt.Sprintf("EMP%03d", i+1),
			fmt.Sprintf("Associate %d", i+1),
			role,
			region,
			fmt.Sprintf("%d%%", availability[i%len(availability)]),
		})
	}
	return sheet.FromStrings(Columns, rows)
}
