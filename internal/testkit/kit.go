// Package testkit builds spreadsheet fixtures for tests and local runs.
package testkit

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Sheet is the name used for generated first sheets
const Sheet = "Sheet1"

// WriteWorkbook saves rows to dir/name as an .xlsx file and returns its path.
// A nil value leaves the cell absent.
func WriteWorkbook(dir, name string, rows [][]interface{}) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return "", err
			}
			if formula, ok := v.(Formula); ok {
				if err := f.SetCellFormula(Sheet, cell, string(formula)); err != nil {
					return "", err
				}
				continue
			}
			if err := f.SetCellValue(Sheet, cell, v); err != nil {
				return "", fmt.Errorf("failed to set %s: %w", cell, err)
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return path, nil
}

// Formula marks a fixture value to be written as a cell formula
type Formula string

// SetRowHeight gives row (1-based) of the first sheet of an existing
// workbook an explicit height, which stores the row even when it has no
// values
func SetRowHeight(path string, row int, height float64) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SetRowHeight(Sheet, row, height); err != nil {
		return fmt.Errorf("failed to set height of row %d: %w", row, err)
	}
	return f.Save()
}
