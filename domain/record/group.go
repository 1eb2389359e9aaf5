// Package record holds the model of what the loader writes: column groups,
// cell values and the records keyed by row counter.
package record

// ColumnGroup is a column family of the destination table
type ColumnGroup string

const (
	GroupSales ColumnGroup = "SALES"
	GroupEtc   ColumnGroup = "ETC"
)

// String returns the family name as stored
func (g ColumnGroup) String() string { return string(g) }

// salesHeaders are routed to SALES; every other header goes to ETC.
// Matching is exact: case and surrounding spaces count.
var salesHeaders = map[string]struct{}{
	"TOTAL UNITS": {},
	"YEAR BUILT":  {},
	"SALE PRICE":  {},
}

// SalesHeaders returns the headers routed to SALES
func SalesHeaders() []string {
	return []string{"TOTAL UNITS", "YEAR BUILT", "SALE PRICE"}
}

// ClassifyHeader returns the column group a header belongs to
func ClassifyHeader(header string) ColumnGroup {
	if _, ok := salesHeaders[header]; ok {
		return GroupSales
	}
	return GroupEtc
}

// DefaultGroups are the families the destination table is created with
func DefaultGroups() []ColumnGroup {
	return []ColumnGroup{GroupSales, GroupEtc}
}

// GroupNames converts groups to their stored names
func GroupNames(groups []ColumnGroup) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.String()
	}
	return names
}
