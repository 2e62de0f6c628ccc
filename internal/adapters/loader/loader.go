// Package loader reads spreadsheet files into sheet tables.
package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/okian/availreport/internal/domain/sheet"
	"github.com/okian/availreport/pkg/logger"
)

const defaultMaxRows = 100000

// Extensions lists every file extension Load understands.
var Extensions = []string{".xlsx", ".xlsm", ".xls", ".csv"}

// Loader decodes spreadsheets by file extension.
type Loader struct {
	sheet   string
	maxRows int
	logger  logger.Logger
}

// New constructs a Loader with default configuration.
func New(opts ...Option) *Loader {
	l := &Loader{maxRows: defaultMaxRows, logger: logger.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Supported reports whether name has an extension Load understands.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadFile opens path and decodes it.
func (l *Loader) LoadFile(ctx context.Context, path string) (*sheet.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return l.Load(ctx, filepath.Base(path), f)
}

// Load decodes r using the extension of name. The first non-blank row is
// the header; fully blank rows are skipped and the rest are squared to the
// header width.
func (l *Loader) Load(ctx context.Context, name string, r io.Reader) (*sheet.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(name))
	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".xlsx", ".xlsm":
		rows, err = l.readWorkbook(r)
	case ".xls":
		rows, err = l.readLegacy(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		if errors.Is(err, ErrNoWorksheet) || errors.Is(err, ErrUnsupportedFormat) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return nil, fmt.Errorf("read %s: %w: %w", name, ErrDecode, err)
	}

	t, err := toTable(rows)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	l.logger.Debug(ctx, "sheet loaded",
		logger.String("name", name),
		logger.Int("columns", len(t.Columns)),
		logger.Int("rows", t.Len()),
	)
	return t, nil
}

func (l *Loader) readWorkbook(r io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := l.sheet
	if sheetName == "" {
		sheetName = file.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, ErrNoWorksheet
	}
	return file.GetRows(sheetName)
}

func (l *Loader) readLegacy(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	switch n := workbook.NumSheets(); {
	case n == 0:
		return nil, ErrNoWorksheet
	case n > 1:
		// ReadAllCells concatenates every sheet.
		return nil, fmt.Errorf("%w: .xls workbooks must hold a single worksheet, found %d", ErrUnsupportedFormat, n)
	}
	return workbook.ReadAllCells(l.maxRows), nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func toTable(rows [][]string) (*sheet.Table, error) {
	var header []string
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		if blank(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		data = append(data, row)
	}
	if header == nil {
		return nil, ErrEmptySheet
	}
	return sheet.FromStrings(header, data), nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
