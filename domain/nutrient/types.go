// Package nutrient holds the immutable legume nutrient table and the matrix
// type derived from it.
package nutrient

import (
	"fmt"
	"math"
	"strconv"

	"legumedash/domain/core"
)

// CategoryColumn is the grouping key header. Header strings are load-bearing.
const CategoryColumn = "Category"

// Radar field headers, units included.
const (
	FieldProtein    = "Protein (g)"
	FieldFat        = "Fat (g)"
	FieldCarbs      = "Carbs (g)"
	FieldStarch     = "Starch (g)"
	FieldIron       = "Iron (mg)"
	FieldMagnesium  = "Magnesium (mg)"
	FieldPhosphorus = "Phosphorus (mg)"
	FieldPotassium  = "Potassium (mg)"
	FieldSodium     = "Sodium (mg)"
	FieldZinc       = "Zinc (mg)"
	FieldCopper     = "Copper (mg)"
	FieldManganese  = "Manganese (mg)"
)

var radarFields = []string{
	FieldProtein, FieldFat, FieldCarbs, FieldStarch, FieldIron,
	FieldMagnesium, FieldPhosphorus, FieldPotassium, FieldSodium,
	FieldZinc, FieldCopper, FieldManganese,
}

// RadarFields returns the fixed radar axis order. The order determines the
// polygon shape and is identical for every category.
func RadarFields() []string {
	out := make([]string, len(radarFields))
	copy(out, radarFields)
	return out
}

// RequiredColumns returns every header a dataset must carry.
func RequiredColumns() []string {
	return append([]string{CategoryColumn}, radarFields...)
}

// ColumnKind distinguishes numeric from text columns
type ColumnKind string

const (
	KindNumeric ColumnKind = "numeric"
	KindText    ColumnKind = "text"
)

// Column is one named column. Missing numeric cells are NaN.
type Column struct {
	Name    string
	Kind    ColumnKind
	numbers []float64
	text    []string
}

// NewNumericColumn builds a numeric column; values are copied.
func NewNumericColumn(name string, values []float64) Column {
	v := make([]float64, len(values))
	copy(v, values)
	return Column{Name: name, Kind: KindNumeric, numbers: v}
}

// NewTextColumn builds a text column; values are copied.
func NewTextColumn(name string, values []string) Column {
	v := make([]string, len(values))
	copy(v, values)
	return Column{Name: name, Kind: KindText, text: v}
}

// Len returns the number of cells in the column
func (c Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.numbers)
	}
	return len(c.text)
}

// Cell is a single table value
type Cell struct {
	Numeric bool
	Number  float64
	Text    string
}

// IsMissing reports an absent value
func (c Cell) IsMissing() bool {
	if c.Numeric {
		return math.IsNaN(c.Number)
	}
	return c.Text == ""
}

// String renders the raw cell value; missing numbers render as "NaN".
func (c Cell) String() string {
	if c.Numeric {
		return strconv.FormatFloat(c.Number, 'g', -1, 64)
	}
	return c.Text
}

// Table is the loaded dataset. It is never mutated after NewTable returns, so
// a single *Table may be shared by concurrent render cycles without locking.
type Table struct {
	source      string
	loadedAt    core.Timestamp
	headers     []string
	columns     map[string]Column
	numeric     []string
	categories  []string
	rowCount    int
	fingerprint core.Hash
}

// NewTable assembles a table from columns in header order. A text column named
// Category is required and every column must have the same length.
func NewTable(source string, columns []Column) (*Table, error) {
	t := &Table{
		source:   source,
		loadedAt: core.Now(),
		columns:  make(map[string]Column, len(columns)),
		rowCount: -1,
	}

	for _, col := range columns {
		if _, dup := t.columns[col.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", core.ErrDataUnavailable, col.Name)
		}
		if t.rowCount >= 0 && col.Len() != t.rowCount {
			return nil, fmt.Errorf("%w: column %q has %d cells, expected %d",
				core.ErrDataUnavailable, col.Name, col.Len(), t.rowCount)
		}
		t.rowCount = col.Len()
		t.headers = append(t.headers, col.Name)
		t.columns[col.Name] = col
		if col.Kind == KindNumeric && col.Name != CategoryColumn {
			t.numeric = append(t.numeric, col.Name)
		}
	}

	cat, ok := t.columns[CategoryColumn]
	if !ok {
		return nil, core.NewMissingColumnError(CategoryColumn)
	}
	if cat.Kind != KindText {
		return nil, fmt.Errorf("%w: column %q must be categorical", core.ErrDataUnavailable, CategoryColumn)
	}
	t.categories = cat.text
	if t.rowCount < 0 {
		t.rowCount = 0
	}

	t.fingerprint = t.computeFingerprint()
	return t, nil
}

func (t *Table) computeFingerprint() core.Hash {
	hw := core.NewHashWriter()
	for _, h := range t.headers {
		hw.WriteString(h)
	}
	for row := 0; row < t.rowCount; row++ {
		for _, h := range t.headers {
			hw.WriteString(t.Cell(row, h).String())
		}
	}
	return hw.Sum()
}

// Source returns the path the table was loaded from
func (t *Table) Source() string { return t.source }

// LoadedAt returns when the table was assembled
func (t *Table) LoadedAt() core.Timestamp { return t.loadedAt }

// RowCount returns the number of data rows
func (t *Table) RowCount() int { return t.rowCount }

// Fingerprint is a content hash over headers and cells.
func (t *Table) Fingerprint() core.Hash { return t.fingerprint }

// Headers returns all column names in file order
func (t *Table) Headers() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

// NumericFields returns numeric column names in file order
func (t *Table) NumericFields() []string {
	out := make([]string, len(t.numeric))
	copy(out, t.numeric)
	return out
}

// IsNumeric reports whether name is a numeric column
func (t *Table) IsNumeric(name string) bool {
	col, ok := t.columns[name]
	return ok && col.Kind == KindNumeric
}

// Category returns the category of a row
func (t *Table) Category(row int) string {
	return t.categories[row]
}

// Categories returns the per-row category values
func (t *Table) Categories() []string {
	out := make([]string, len(t.categories))
	copy(out, t.categories)
	return out
}

// Numbers returns a copy of a numeric column
func (t *Table) Numbers(name string) ([]float64, bool) {
	col, ok := t.columns[name]
	if !ok || col.Kind != KindNumeric {
		return nil, false
	}
	out := make([]float64, len(col.numbers))
	copy(out, col.numbers)
	return out, true
}

// Cell returns the value at row for column name. Unknown columns yield an empty text cell.
func (t *Table) Cell(row int, name string) Cell {
	col, ok := t.columns[name]
	if !ok {
		return Cell{}
	}
	if col.Kind == KindNumeric {
		return Cell{Numeric: true, Number: col.numbers[row]}
	}
	return Cell{Text: col.text[row]}
}

// Equal reports content equality: same headers, kinds and cells, with NaN equal to NaN.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.rowCount != other.rowCount || len(t.headers) != len(other.headers) {
		return false
	}
	for i, h := range t.headers {
		if other.headers[i] != h {
			return false
		}
		a, b := t.columns[h], other.columns[h]
		if a.Kind != b.Kind {
			return false
		}
		for row := 0; row < t.rowCount; row++ {
			if a.Kind == KindNumeric {
				x, y := a.numbers[row], b.numbers[row]
				if x != y && !(math.IsNaN(x) && math.IsNaN(y)) {
					return false
				}
			} else if a.text[row] != b.text[row] {
				return false
			}
		}
	}
	return true
}
