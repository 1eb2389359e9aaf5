package record

import (
	"strconv"
	"strings"
)

// Field is one (group, qualifier) -> value entry of a record
type Field struct {
	Group     ColumnGroup
	Qualifier string
	Value     []byte
}

// Record is everything written under one row key in a single put
type Record struct {
	Key    string
	Fields []Field
}

// RowKey encodes a per-file row counter as a row key
func RowKey(counter int) string {
	return strconv.Itoa(counter)
}

// Add appends a field routed by ClassifyHeader
func (r *Record) Add(header string, value string) {
	r.Fields = append(r.Fields, Field{
		Group:     ClassifyHeader(header),
		Qualifier: header,
		Value:     []byte(value),
	})
}

// IsEmpty reports whether the record has no fields and should not be written
func (r *Record) IsEmpty() bool {
	return len(r.Fields) == 0
}

// StoredCell is one cell as it comes back from a table scan
type StoredCell struct {
	Row       string
	Family    string
	Qualifier string
	Value     []byte
}

// Result is one row of a scan, cells ordered by family then qualifier
type Result struct {
	Row   string
	Cells []StoredCell
}

// NormalizeHeader removes embedded line feeds from a header cell. Nothing
// else is trimmed.
func NormalizeHeader(raw string) string {
	return strings.ReplaceAll(raw, "\n", "")
}
