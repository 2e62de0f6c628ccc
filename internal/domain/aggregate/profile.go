package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/okian/availreport/internal/domain/normalize"
	"github.com/okian/availreport/internal/domain/sheet"
	"github.com/okian/availreport/internal/domain/types"
)

// Profile summarises a raw sheet before cleaning: row count, distinct raw
// roles, distinct regions and the mean availability across every row, with
// unparseable values counted as 0. The required columns must be present.
func Profile(t *sheet.Table) (types.Overview, error) {
	cols, err := normalize.CheckColumns(t)
	if err != nil {
		return types.Overview{}, err
	}

	roles := make(map[string]struct{})
	regions := make(map[string]struct{})
	total := decimal.Zero
	for i := range t.Rows {
		if r := normalize.Text(t.Cell(i, cols[normalize.ColRole])); r != "" {
			roles[r] = struct{}{}
		}
		if r := normalize.Text(t.Cell(i, cols[normalize.ColRegion])); r != "" {
			regions[r] = struct{}{}
		}
		if v, ok := normalize.Percent(t.Cell(i, cols[normalize.ColAvailability])); ok {
			total = total.Add(decimal.NewFromFloat(v))
		}
	}

	ov := types.Overview{Rows: t.Len(), UniqueRoles: len(roles), Regions: len(regions)}
	if ov.Rows > 0 {
		ov.MeanAvailability = total.DivRound(decimal.NewFromInt(int64(ov.Rows)), 1).InexactFloat64()
	}
	return ov, nil
}
