package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrTableNotFound  = fmt.Errorf("%w: table", ErrNotFound)
	ErrFamilyNotFound = fmt.Errorf("%w: column family", ErrNotFound)

	ErrTableExists      = errors.New("table already exists")
	ErrInvalidTableName = errors.New("invalid table name")
	ErrNoColumnFamilies = errors.New("table needs at least one column family")
	ErrColumnOutOfRange = errors.New("cell column has no header")
	ErrNoSheets         = errors.New("workbook has no sheets")
)

// NewTableNotFoundError reports a table that the store does not know
func NewTableNotFoundError(table string) error {
	return fmt.Errorf("%w %s", ErrTableNotFound, table)
}

// NewFamilyNotFoundError reports a put into a family the table was not created with
func NewFamilyNotFoundError(table, family string) error {
	return fmt.Errorf("%w %s in table %s", ErrFamilyNotFound, family, table)
}

// NewColumnOutOfRangeError reports a data cell to the right of the last header
func NewColumnOutOfRangeError(row, column, headers int) error {
	return fmt.Errorf("%w: row %d column %d (only %d headers)", ErrColumnOutOfRange, row, column, headers)
}

// IsNotFoundError checks for any not-found condition
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
