package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesloader/adapters/excel"
	"salesloader/domain/record"
	apperrors "salesloader/internal/errors"
	"salesloader/internal/testkit"
)

func TestInitHeaderReadsOnlyFirstRow(t *testing.T) {
	path, err := testkit.WriteWorkbook(t.TempDir(), "h.xlsx", [][]interface{}{
		{"BOROUGH", "SALE\nPRICE", nil, "NOTE"},
		{"not", "a", "header", "row", "wider"},
	})
	require.NoError(t, err)

	headers, err := NewHeaderService(excel.NewReader(excel.DefaultExcelConfig(), quietLogger()), quietLogger()).InitHeader(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"BOROUGH", "SALEPRICE", "", "NOTE"}, headers)
}

func TestInitHeaderEmptySheet(t *testing.T) {
	path, err := testkit.WriteWorkbook(t.TempDir(), "empty.xlsx", nil)
	require.NoError(t, err)

	headers, err := NewHeaderService(excel.NewReader(excel.DefaultExcelConfig(), quietLogger()), quietLogger()).InitHeader(path)
	require.NoError(t, err)
	assert.Empty(t, headers)
}

func TestInitHeaderMissingFile(t *testing.T) {
	_, err := NewHeaderService(excel.NewReader(excel.DefaultExcelConfig(), quietLogger()), quietLogger()).
		InitHeader(filepath.Join(t.TempDir(), "refined_2020_manhattan.xlsx"))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeFileAccess, apperrors.GetCode(err))
}

func TestFormatHeaders(t *testing.T) {
	assert.Equal(t, "[SALE PRICE, NOTE]", FormatHeaders([]string{"SALE PRICE", "NOTE"}))
	assert.Equal(t, "[]", FormatHeaders(nil))
}

func TestHeaderDrift(t *testing.T) {
	ref := []string{"SALE PRICE", "NOTE"}
	same := []record.Cell{{Column: 0, Raw: "SALE PRICE"}, {Column: 1, Raw: "NOTE"}}
	swapped := []record.Cell{{Column: 0, Raw: "NOTE"}, {Column: 1, Raw: "SALE PRICE"}}
	shorter := []record.Cell{{Column: 0, Raw: "SALE PRICE"}}

	assert.Equal(t, "", headerDrift(ref, same))
	assert.Equal(t, `column 0 is "NOTE", reference has "SALE PRICE"`, headerDrift(ref, swapped))
	assert.Equal(t, "1 headers instead of 2: [SALE PRICE]", headerDrift(ref, shorter))
}
