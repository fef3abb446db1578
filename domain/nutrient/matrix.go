package nutrient

import "math"

// Matrix is a square matrix indexed by field name on both axes.
type Matrix struct {
	Fields []string
	Values [][]float64
}

// NewMatrix allocates an n×n matrix filled with NaN.
func NewMatrix(fields []string) Matrix {
	f := make([]string, len(fields))
	copy(f, fields)
	values := make([][]float64, len(f))
	for i := range values {
		values[i] = make([]float64, len(f))
		for j := range values[i] {
			values[i][j] = math.NaN()
		}
	}
	return Matrix{Fields: f, Values: values}
}

// Size returns the number of fields
func (m Matrix) Size() int { return len(m.Fields) }

// Index returns the position of field, or -1.
func (m Matrix) Index(field string) int {
	for i, f := range m.Fields {
		if f == field {
			return i
		}
	}
	return -1
}

// At returns the value for a field pair and whether both fields exist.
func (m Matrix) At(row, col string) (float64, bool) {
	i, j := m.Index(row), m.Index(col)
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.Values[i][j], true
}

// IsSymmetric reports M[i][j] == M[j][i] for every pair, treating NaN as equal to NaN.
func (m Matrix) IsSymmetric() bool {
	for i := range m.Values {
		for j := i + 1; j < len(m.Values); j++ {
			a, b := m.Values[i][j], m.Values[j][i]
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return false
			}
		}
	}
	return true
}
