package excel

import (
	"github.com/xuri/excelize/v2"

	"salesloader/domain/record"
)

// defaultRowHeight is the height excelize reports for rows without an
// explicit one
const defaultRowHeight = 15

// kindOf maps the stored cell type to the loader's cell kind. Cells written
// without a type attribute default to numbers in SpreadsheetML.
func kindOf(t excelize.CellType, formula string) record.CellKind {
	if formula != "" {
		return record.KindFormula
	}
	switch t {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		return record.KindNumeric
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return record.KindString
	case excelize.CellTypeBool:
		return record.KindBoolean
	case excelize.CellTypeFormula:
		return record.KindFormula
	case excelize.CellTypeError:
		return record.KindError
	}
	return record.KindBlank
}
