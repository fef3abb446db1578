package coercer

import (
	"math"
	"testing"

	"legumedash/domain/nutrient"

	"github.com/stretchr/testify/assert"
)

func TestParseNumeric(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		raw     string
		want    float64
		ok      bool
		missing bool
	}{
		{"24.6", 24.6, true, false},
		{"  3 ", 3, true, false},
		{"-1e-3", -0.001, true, false},
		{"", 0, true, true},
		{"NA", 0, true, true},
		{" NaN ", 0, true, true},
		{"-", 0, true, true},
		{"abc", 0, false, false},
		{"1,5", 0, false, false},
	}

	for _, tt := range tests {
		got, ok := c.ParseNumeric(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		if tt.missing {
			assert.True(t, math.IsNaN(got), "raw=%q should be NaN", tt.raw)
		} else if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-12, "raw=%q", tt.raw)
		}
	}
}

func TestIsMissing_SpreadsheetTokens(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	for _, tok := range []string{
		"#N/A", "#N/A N/A", "#NA", "<NA>", "-NaN", "-nan",
		"1.#IND", "-1.#IND", "1.#QNAN", "-1.#QNAN", " #N/A ",
	} {
		t.Run(tok, func(t *testing.T) {
			assert.True(t, c.IsMissing(tok))
			v, ok := c.ParseNumeric(tok)
			assert.True(t, ok)
			assert.True(t, math.IsNaN(v))
		})
	}

	assert.False(t, c.IsMissing("#REF!"), "other spreadsheet errors are values")
}

func TestCoerceColumn_InfersKind(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	col, analysis := c.CoerceColumn("Iron (mg)", []string{"3.3", "", "2.9"})
	assert.Equal(t, nutrient.KindNumeric, col.Kind)
	assert.Equal(t, 1, analysis.MissingCount)
	assert.Equal(t, -1, analysis.FirstBadRow)

	col, analysis = c.CoerceColumn("Description", []string{"3.3", "red", "NA"})
	assert.Equal(t, nutrient.KindText, col.Kind)
	assert.Equal(t, 1, analysis.FirstBadRow)
	assert.False(t, analysis.IsNumeric())

	col, _ = c.CoerceColumn("Empty", []string{"", "NA"})
	assert.Equal(t, nutrient.KindNumeric, col.Kind, "all-missing column is numeric NaN")
	assert.Equal(t, 2, col.Len())
}

func TestCoerceText_BlanksMissing(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	col := c.CoerceText("Category", []string{" Lentils ", "NA", "1"})
	table, err := nutrient.NewTable("mem", []nutrient.Column{col})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Lentils", "", "1"}, table.Categories())
}
