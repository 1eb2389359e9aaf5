package app

import (
	"context"
	"fmt"
	"io"

	"salesloader/domain/record"
	"salesloader/internal/errors"
	"salesloader/ports"
)

// ScanTableData prints every cell of table to out, one line per cell, and
// returns the number of rows seen
func ScanTableData(ctx context.Context, table ports.Table, out io.Writer) (rows int, err error) {
	scanner, err := table.Scan(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to scan %s", table.Name())
	}
	defer func() {
		if cerr := scanner.Close(); cerr != nil && err == nil {
			err = errors.Storage("close scanner", cerr)
		}
	}()

	for scanner.Next() {
		PrintResult(out, scanner.Result())
		rows++
	}
	if err := scanner.Err(); err != nil {
		return rows, errors.Wrapf(err, "scan of %s stopped after %d rows", table.Name(), rows)
	}
	return rows, nil
}

// PrintResult prints the cells of one scanned row
func PrintResult(out io.Writer, result record.Result) {
	for _, c := range result.Cells {
		fmt.Fprintf(out, "Row: %s, Family: %s, Qualifier: %s, Value: %s\n", c.Row, c.Family, c.Qualifier, c.Value)
	}
}
