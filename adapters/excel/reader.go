package excel

import (
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"salesloader/domain/core"
	"salesloader/domain/record"
	"salesloader/internal"
	"salesloader/internal/errors"
	"salesloader/ports"
)

// Reader opens .xlsx workbooks with excelize
type Reader struct {
	config ExcelConfig
	logger *internal.Logger
}

// NewReader creates a workbook reader
func NewReader(config ExcelConfig, logger *internal.Logger) *Reader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Reader{config: config, logger: logger}
}

var _ ports.SpreadsheetReader = (*Reader)(nil)

// Open opens the workbook at path
func (r *Reader) Open(path string) (ports.Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.FileAccess(path, err)
	}

	start := time.Now()
	f, err := excelize.OpenFile(path, r.config.options())
	if err != nil {
		return nil, errors.FileAccess(path, err)
	}
	r.logger.Debug("[ExcelReader] %s opened in %.2fms", path, float64(time.Since(start).Nanoseconds())/1e6)

	return &workbook{path: path, file: f, logger: r.logger}, nil
}

type workbook struct {
	path   string
	file   *excelize.File
	logger *internal.Logger
}

func (w *workbook) FirstSheetRows() (ports.RowIterator, error) {
	sheets := w.file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.FileAccess(w.path, core.ErrNoSheets)
	}
	sheet := sheets[0]

	rows, err := w.file.Rows(sheet)
	if err != nil {
		return nil, errors.FileAccess(w.path, fmt.Errorf("failed to read sheet %s: %w", sheet, err))
	}
	w.logger.Trace("[ExcelReader] iterating sheet %q of %s", sheet, w.path)

	return &rowIterator{file: w.file, sheet: sheet, path: w.path, rows: rows, index: -1}, nil
}

func (w *workbook) Close() error {
	if err := w.file.Close(); err != nil {
		return errors.FileAccess(w.path, err)
	}
	return nil
}

type rowIterator struct {
	file   *excelize.File
	sheet  string
	path   string
	rows   *excelize.Rows
	index  int
	values []string
	stored bool
	err    error
}

func (it *rowIterator) Next() bool {
	if it.err != nil || !it.rows.Next() {
		return false
	}
	it.index++

	opts := it.rows.GetRowOpts()
	values, err := it.rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		it.err = errors.FileAccess(it.path, err)
		return false
	}
	it.values = values
	it.stored = len(values) > 0 || hasRowAttributes(opts)
	return true
}

func (it *rowIterator) Index() int { return it.index }

func (it *rowIterator) Stored() bool { return it.stored }

// hasRowAttributes reports whether a row carries formatting of its own.
// excelize fills in rows missing from the sheet with no values and default
// attributes, so a row without values is only known to exist when it has
// non-default height, style, visibility or outline level.
func hasRowAttributes(opts excelize.RowOpts) bool {
	if opts.Hidden || opts.StyleID != 0 || opts.OutlineLevel != 0 {
		return true
	}
	return opts.Height != 0 && opts.Height != defaultRowHeight
}

// Cells returns the non-empty cells of the current row with their stored
// types. Values are read raw so numbers keep full precision and dates stay
// serial numbers. excelize does not report cells without a value, so blank
// cells never appear here.
func (it *rowIterator) Cells() ([]record.Cell, error) {
	if it.err != nil {
		return nil, it.err
	}

	cells := make([]record.Cell, 0, len(it.values))
	for col, raw := range it.values {
		// padding between cells, or a formula without a cached value
		if raw == "" {
			continue
		}
		name, err := excelize.CoordinatesToCellName(col+1, it.index+1)
		if err != nil {
			it.err = errors.FileAccess(it.path, err)
			return nil, it.err
		}
		cellType, err := it.file.GetCellType(it.sheet, name)
		if err != nil {
			it.err = errors.FileAccess(it.path, err)
			return nil, it.err
		}
		formula, err := it.file.GetCellFormula(it.sheet, name)
		if err != nil {
			it.err = errors.FileAccess(it.path, err)
			return nil, it.err
		}
		cells = append(cells, record.Cell{Column: col, Kind: kindOf(cellType, formula), Raw: raw})
	}
	return cells, nil
}

func (it *rowIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	if err := it.rows.Error(); err != nil {
		return errors.FileAccess(it.path, err)
	}
	return nil
}

func (it *rowIterator) Close() error {
	return it.rows.Close()
}
