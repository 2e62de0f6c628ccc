package sheetgen

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/availreport/internal/domain/normalize"
	"github.com/okian/availreport/internal/domain/sheet"
)

// DefaultSheetName names the worksheet written by WriteXLSX.
const DefaultSheetName = "Availability"

// WriteFile writes t to path as .xlsx or .csv depending on the extension.
func WriteFile(path string, t *sheet.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		err = WriteXLSX(f, t, DefaultSheetName)
	case ".csv":
		err = WriteCSV(f, t)
	default:
		err = fmt.Errorf("cannot write %q files", ext)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
	}
	return err
}

// WriteXLSX writes t as a single-sheet workbook. Cell values keep their Go
// type, so numbers stay numeric.
func WriteXLSX(w io.Writer, t *sheet.Table, sheetName string) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
		return err
	}
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := file.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	for i := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := t.Rows[i]
		if err := file.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	return file.Write(w)
}

// WriteCSV writes t as comma separated text.
func WriteCSV(w io.Writer, t *sheet.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for i := range t.Rows {
		rec := make([]string, len(t.Rows[i]))
		for j, v := range t.Rows[i] {
			rec[j] = normalize.Text(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
