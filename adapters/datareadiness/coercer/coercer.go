package coercer

import (
	"math"
	"strconv"
	"strings"

	"legumedash/domain/nutrient"
)

// TypeCoercer turns raw string cells into typed table columns
type TypeCoercer struct {
	config  CoercionConfig
	missing map[string]bool
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	MissingTokens []string `json:"missing_tokens"` // cell values treated as absent
	TrimSpace     bool     `json:"trim_space"`     // trim cells before parsing
}

// pandasNA is the default na_values set of pandas.read_csv
var pandasNA = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// DefaultCoercionConfig returns the tokens pandas treats as NA by default, plus "-"
func DefaultCoercionConfig() CoercionConfig {
	tokens := append([]string(nil), pandasNA...)
	return CoercionConfig{
		MissingTokens: append(tokens, "-"),
		TrimSpace:     true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	missing := make(map[string]bool, len(config.MissingTokens))
	for _, tok := range config.MissingTokens {
		missing[tok] = true
	}
	return &TypeCoercer{config: config, missing: missing}
}

func (c *TypeCoercer) clean(raw string) string {
	if c.config.TrimSpace {
		return strings.TrimSpace(raw)
	}
	return raw
}

// IsMissing reports whether a raw cell is an absent value
func (c *TypeCoercer) IsMissing(raw string) bool {
	return c.missing[c.clean(raw)]
}

// ParseNumeric parses a non-missing cell as a float. Missing cells return NaN, true.
func (c *TypeCoercer) ParseNumeric(raw string) (float64, bool) {
	if c.IsMissing(raw) {
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(c.clean(raw), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// AnalyzeColumn counts how many present values parse as numbers
func (c *TypeCoercer) AnalyzeColumn(values []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(values), FirstBadRow: -1}
	for i, raw := range values {
		if c.IsMissing(raw) {
			analysis.MissingCount++
			continue
		}
		analysis.ValidCount++
		if _, ok := c.ParseNumeric(raw); ok {
			analysis.NumericCount++
		} else if analysis.FirstBadRow < 0 {
			analysis.FirstBadRow = i
		}
	}
	return analysis
}

// CoerceColumn infers the column kind and converts its cells. A column is
// numeric when every present cell parses; an all-missing column is numeric NaN.
func (c *TypeCoercer) CoerceColumn(name string, values []string) (nutrient.Column, TypeAnalysis) {
	analysis := c.AnalyzeColumn(values)
	if !analysis.IsNumeric() {
		text := make([]string, len(values))
		for i, raw := range values {
			if c.IsMissing(raw) {
				continue
			}
			text[i] = c.clean(raw)
		}
		return nutrient.NewTextColumn(name, text), analysis
	}

	numbers := make([]float64, len(values))
	for i, raw := range values {
		numbers[i], _ = c.ParseNumeric(raw)
	}
	return nutrient.NewNumericColumn(name, numbers), analysis
}

// CoerceText converts cells to text, blanking missing tokens
func (c *TypeCoercer) CoerceText(name string, values []string) nutrient.Column {
	text := make([]string, len(values))
	for i, raw := range values {
		if !c.IsMissing(raw) {
			text[i] = c.clean(raw)
		}
	}
	return nutrient.NewTextColumn(name, text)
}

// TypeAnalysis contains the results of column type analysis
type TypeAnalysis struct {
	TotalCount   int `json:"total_count"`
	ValidCount   int `json:"valid_count"`
	MissingCount int `json:"missing_count"`
	NumericCount int `json:"numeric_count"`
	FirstBadRow  int `json:"first_bad_row"` // -1 when every present value parses
}

// IsNumeric reports whether every present value parsed as a number
func (a TypeAnalysis) IsNumeric() bool {
	return a.NumericCount == a.ValidCount
}
