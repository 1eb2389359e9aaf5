package app

import (
	"time"

	"salesloader/domain/core"
)

// FileReport summarises one spreadsheet of a load
type FileReport struct {
	Path string
	// RowsRead counts the rows stored in the sheet, header row included
	RowsRead int
	// RecordsWritten counts puts; rows without data cells are not written
	RecordsWritten int
	// Overwritten counts row keys already written by an earlier file of the
	// same run
	Overwritten int
}

// LoadReport summarises a whole run
type LoadReport struct {
	RunID       core.RunID
	Table       string
	Headers     []string
	Files       []FileReport
	ScannedRows int
	Duration    time.Duration
}

// RecordsWritten totals puts across files
func (r *LoadReport) RecordsWritten() int {
	total := 0
	for _, f := range r.Files {
		total += f.RecordsWritten
	}
	return total
}
