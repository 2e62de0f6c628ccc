// Package normalize turns a raw sheet into cleaned availability records.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/availreport/internal/domain/model"
	"github.com/okian/availreport/internal/domain/sheet"
)

// Required column headers, compared after trimming.
const (
	ColRole         = "Current Role"
	ColRegion       = "Region"
	ColID           = "Associate ID"
	ColName         = "Associate Name"
	ColAvailability = "Current Availability"
)

// RequiredColumns lists the headers every input must carry.
var RequiredColumns = []string{ColRole, ColRegion, ColID, ColName, ColAvailability}

// Reasons recorded on skipped rows.
const (
	ReasonBlankRole   = "blank role"
	ReasonBlankRegion = "blank region"
)

// RowIssue describes a row that was skipped. Row is the 1-based position
// among data rows (the header is not counted).
type RowIssue struct {
	Row    int
	Reason string
}

// Result is the outcome of one normalization pass.
type Result struct {
	Records []model.Record // cleaned rows in input order
	Rows    int            // data rows read
	Dropped int            // rows removed for zero availability
	Issues  []RowIssue     // rows skipped for per-row faults
}

// Columns maps each required header to its position in t.
type Columns map[string]int

// CheckColumns resolves the required headers or reports which are absent.
func CheckColumns(t *sheet.Table) (Columns, error) {
	cols := make(Columns, len(RequiredColumns))
	var missing []string
	for _, name := range RequiredColumns {
		idx := t.Index(name)
		if idx < 0 {
			missing = append(missing, name)
			continue
		}
		cols[name] = idx
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}
	return cols, nil
}

// Normalize validates the header and cleans every row. Zero availability
// rows are dropped before any other check so that they never surface as
// issues. Extra columns, including the legacy "Avail Bucket", are ignored.
func Normalize(t *sheet.Table) (Result, error) {
	cols, err := CheckColumns(t)
	if err != nil {
		return Result{}, err
	}

	res := Result{Rows: t.Len(), Records: make([]model.Record, 0, t.Len())}
	for i := range t.Rows {
		avail := Availability(t.Cell(i, cols[ColAvailability]))
		if avail == 0 {
			res.Dropped++
			continue
		}

		rawRole := Text(t.Cell(i, cols[ColRole]))
		region := Text(t.Cell(i, cols[ColRegion]))
		switch {
		case rawRole == "":
			res.Issues = append(res.Issues, RowIssue{Row: i + 1, Reason: ReasonBlankRole})
			continue
		case region == "":
			res.Issues = append(res.Issues, RowIssue{Row: i + 1, Reason: ReasonBlankRegion})
			continue
		}

		res.Records = append(res.Records, model.Record{
			ID:           Text(t.Cell(i, cols[ColID])),
			Name:         Text(t.Cell(i, cols[ColName])),
			RawRole:      rawRole,
			Role:         model.CanonicalRole(rawRole),
			Region:       region,
			Availability: avail,
		})
	}
	return res, nil
}

// Availability coerces a cell to a whole percentage in [0,100]. Fractions
// are truncated toward zero; anything unparseable is 0.
func Availability(v any) int {
	f, ok := Percent(v)
	if !ok {
		return 0
	}
	f = math.Trunc(f)
	switch {
	case f <= 0:
		return 0
	case f >= 100:
		return 100
	default:
		return int(f)
	}
}

// Percent parses "NN%", "NN.N" and numeric cells without truncation.
func Percent(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case float32:
		f = float64(x)
	case float64:
		f = x
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(x, "%", ""))
		if s == "" {
			return 0, false
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return Percent(fmt.Sprint(x))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Text renders a cell as trimmed text; nil is the empty string.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
