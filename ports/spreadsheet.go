package ports

import (
	"salesloader/domain/record"
)

// SpreadsheetReader opens workbooks from disk
type SpreadsheetReader interface {
	// Open opens the workbook at path. Missing or malformed files are errors.
	Open(path string) (Workbook, error)
}

// Workbook is an open spreadsheet file
type Workbook interface {
	// FirstSheetRows iterates the rows of the first sheet, row 0 first
	FirstSheetRows() (RowIterator, error)
	Close() error
}

// RowIterator walks sheet rows in order
type RowIterator interface {
	Next() bool
	// Index is the zero-based row number of the current row
	Index() int
	// Stored reports whether the current row exists in the sheet. Row
	// numbers the sheet skips are still visited so Index stays the sheet
	// position, but they report false.
	Stored() bool
	// Cells returns the cells of the current row that hold a value
	Cells() ([]record.Cell, error)
	Err() error
	Close() error
}
