package excel

import "github.com/xuri/excelize/v2"

// ExcelConfig holds settings for opening workbooks
type ExcelConfig struct {
	// Password unlocks encrypted exports; empty for plain files
	Password string `json:"password"`
}

// DefaultExcelConfig returns the settings for unencrypted workbooks
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{}
}

func (c ExcelConfig) options() excelize.Options {
	return excelize.Options{Password: c.Password}
}
