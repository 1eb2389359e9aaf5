package sqlstore

import (
	"fmt"
	"regexp"

	"salesloader/domain/core"
)

// dialect captures the few statements that differ between backends
type dialect struct {
	driver    string
	blobType  string
	orderKeys string
}

var dialects = map[string]dialect{
	"postgres": {
		driver:    "postgres",
		blobType:  "BYTEA",
		orderKeys: `row_key COLLATE "C", family COLLATE "C", qualifier COLLATE "C"`,
	},
	"sqlite": {
		driver:    "sqlite",
		blobType:  "BLOB",
		orderKeys: `row_key, family, qualifier`,
	},
}

func dialectFor(driver string) (dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported SQL driver %q", driver)
	}
	return d, nil
}

// Each wide table is one SQL table, so its name has to be a plain identifier
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

func quoteTable(name string) (string, error) {
	if !tableNamePattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidTableName, name)
	}
	return `"` + name + `"`, nil
}

func (d dialect) createTableSQL(quoted string) string {
	return fmt.Sprintf(`
		CREATE TABLE %s (
			row_key TEXT NOT NULL,
			family VARCHAR(255) NOT NULL,
			qualifier TEXT NOT NULL,
			value %s NOT NULL,
			PRIMARY KEY (row_key, family, qualifier)
		)`, quoted, d.blobType)
}

func (d dialect) upsertSQL(quoted string) string {
	return fmt.Sprintf(`
		INSERT INTO %s (row_key, family, qualifier, value) VALUES (?, ?, ?, ?)
		ON CONFLICT (row_key, family, qualifier) DO UPDATE SET value = excluded.value`, quoted)
}

func (d dialect) scanSQL(quoted string) string {
	return fmt.Sprintf(`SELECT row_key, family, qualifier, value FROM %s ORDER BY %s`, quoted, d.orderKeys)
}
