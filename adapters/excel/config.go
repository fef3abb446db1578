package excel

import (
	"legumedash/adapters/datareadiness/coercer"
	"legumedash/domain/nutrient"
)

// ExcelConfig holds configuration for the file data source
type ExcelConfig struct {
	FilePath        string                 `json:"file_path"`
	SheetName       string                 `json:"sheet_name"` // xlsx only; empty selects the first sheet
	CoercionConfig  coercer.CoercionConfig `json:"coercion_config"`
	RequiredColumns []string               `json:"required_columns"`
}

// DefaultExcelConfig returns the dashboard defaults for a data file path
func DefaultExcelConfig(path string) ExcelConfig {
	return ExcelConfig{
		FilePath:        path,
		CoercionConfig:  coercer.DefaultCoercionConfig(),
		RequiredColumns: nutrient.RequiredColumns(),
	}
}
