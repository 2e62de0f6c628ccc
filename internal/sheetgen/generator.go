// Package sheetgen produces synthetic availability sheets and writes
// tables to disk for demos, load tests and fixtures.
package sheetgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/availreport/internal/domain/sample"
	"github.com/okian/availreport/internal/domain/sheet"
	"github.com/okian/availreport/pkg/logger"
)

// Cases for availability generation.
const (
	caseHigh = iota
	caseMedium
	caseLow
	caseVeryLow
	caseFraction
	caseZero
	caseJunk
	caseBlank
	caseCount
)

// Generate builds a sheet with the required columns plus the legacy
// "Avail Bucket" column, which carries deliberately wrong values.
func Generate(ctx context.Context, cfg Config) (*sheet.Table, error) {
	if cfg.Rows <= 0 {
		return nil, fmt.Errorf("rows must be positive, got %d", cfg.Rows)
	}
	roles := cfg.Roles
	if len(roles) == 0 {
		roles = DefaultRoles
	}
	regions := cfg.Regions
	if len(regions) == 0 {
		regions = DefaultRegions
	}

	columns := append(append([]string(nil), sample.Columns...), "Avail Bucket")
	rows := make([][]string, 0, cfg.Rows)
	for i := 0; i < cfg.Rows; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during sheet generation: %w", err)
		}
		role := roles[randInt(len(roles))]
		region := regions[randInt(len(regions))]
		avail := availability(cfg.Messy)
		if cfg.Messy && randInt(caseCount*4) == 0 {
			region = " "
		}
		rows = append(rows, []string{
			"A-" + uuid.New().String()[:8],
			"Associate " + strconv.Itoa(i+1),
			role,
			region,
			avail,
			"0-25%",
		})
	}

	logger.Get().Debug(ctx, "generated sheet", logger.Int("rows", len(rows)), logger.Bool("messy", cfg.Messy))
	return sheet.FromStrings(columns, rows), nil
}

func availability(messy bool) string {
	n := caseFraction + 1
	if messy {
		n = caseCount
	}
	switch randInt(n) {
	case caseHigh:
		return strconv.Itoa(76+randInt(25)) + "%"
	case caseMedium:
		return strconv.Itoa(51+randInt(25)) + "%"
	case caseLow:
		return strconv.Itoa(26+randInt(25)) + "%"
	case caseVeryLow:
		return strconv.Itoa(1+randInt(25)) + "%"
	case caseFraction:
		return strconv.Itoa(1+randInt(99)) + "." + strconv.Itoa(randInt(10))
	case caseZero:
		return "0%"
	case caseJunk:
		return "n/a"
	default:
		return ""
	}
}

// randInt returns a uniform value in [0,n) using crypto/rand.
func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
