package leveldbstore

import (
	"bytes"
	"strings"

	"salesloader/domain/core"
)

var tablePrefix = []byte("/table/")
var cellPrefix = []byte("/cell/")

const sep = "\x00"

func tableKey(name string) []byte {
	return append(append([]byte{}, tablePrefix...), name...)
}

// cell keys are /cell/<table>\0<row>\0<family>\0<qualifier>, so a prefix
// scan returns rows ordered by key bytes, then family, then qualifier
func cellKey(table, row, family, qualifier string) []byte {
	var b bytes.Buffer
	b.Write(cellPrefix)
	b.WriteString(table)
	b.WriteString(sep)
	b.WriteString(row)
	b.WriteString(sep)
	b.WriteString(family)
	b.WriteString(sep)
	b.WriteString(qualifier)
	return b.Bytes()
}

func tableCellPrefix(table string) []byte {
	return append(append(append([]byte{}, cellPrefix...), table...), sep...)
}

// splitCellKey is the inverse of cellKey for keys under tableCellPrefix(table)
func splitCellKey(table string, key []byte) (row, family, qualifier string, ok bool) {
	rest := strings.TrimPrefix(string(key), string(tableCellPrefix(table)))
	parts := strings.SplitN(rest, sep, 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func encodeFamilies(families []string) []byte {
	return []byte(strings.Join(families, sep))
}

func decodeFamilies(b []byte) []string {
	return strings.Split(string(b), sep)
}

// validName rejects names that would break the key layout
func validName(name string) error {
	if name == "" || strings.Contains(name, sep) {
		return core.ErrInvalidTableName
	}
	return nil
}
