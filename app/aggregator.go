package app

import (
	"math"

	"legumedash/domain/nutrient"
	"legumedash/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// MeanByCategory returns the mean of each field over rows of category,
// skipping missing cells. The result has exactly one key per field; a field
// with no present values (or that is not numeric) maps to NaN.
func MeanByCategory(table *nutrient.Table, category string, fields []string) (map[string]float64, error) {
	rows := rowsInCategory(table, category)
	if len(rows) == 0 {
		return nil, errors.UnknownCategory(category)
	}

	means := make(map[string]float64, len(fields))
	for _, field := range fields {
		column, ok := table.Numbers(field)
		if !ok {
			means[field] = math.NaN()
			continue
		}

		values := make([]float64, 0, len(rows))
		for _, row := range rows {
			if !math.IsNaN(column[row]) {
				values = append(values, column[row])
			}
		}
		mean, err := stats.Mean(values)
		if err != nil {
			// stats.EmptyInputErr: every cell missing for this category
			mean = math.NaN()
		}
		means[field] = mean
	}
	return means, nil
}

// CorrelationMatrix computes pairwise-complete Pearson correlation over every
// numeric column of the whole table. Pairs with fewer than two complete rows
// or zero variance are NaN. The diagonal is 1 unless the field has no variance.
func CorrelationMatrix(table *nutrient.Table) nutrient.Matrix {
	fields := table.NumericFields()
	matrix := nutrient.NewMatrix(fields)

	columns := make([][]float64, len(fields))
	for i, f := range fields {
		columns[i], _ = table.Numbers(f)
	}

	for i := range fields {
		matrix.Values[i][i] = selfCorrelation(columns[i])
		for j := i + 1; j < len(fields); j++ {
			r := pairwiseCorrelation(columns[i], columns[j])
			matrix.Values[i][j] = r
			matrix.Values[j][i] = r
		}
	}
	return matrix
}

func selfCorrelation(column []float64) float64 {
	present := make([]float64, 0, len(column))
	for _, v := range column {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) < 2 || stat.Variance(present, nil) == 0 {
		return math.NaN()
	}
	return 1.0
}

func pairwiseCorrelation(a, b []float64) float64 {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for k := range a {
		if math.IsNaN(a[k]) || math.IsNaN(b[k]) {
			continue
		}
		x = append(x, a[k])
		y = append(y, b[k])
	}
	if len(x) < 2 {
		return math.NaN()
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return math.NaN()
	}
	// rounding can push |r| marginally past 1
	return math.Max(-1, math.Min(1, r))
}

func rowsInCategory(table *nutrient.Table, category string) []int {
	if category == "" {
		return nil
	}
	var rows []int
	for row := 0; row < table.RowCount(); row++ {
		if table.Category(row) == category {
			rows = append(rows, row)
		}
	}
	return rows
}
