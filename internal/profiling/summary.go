package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
)

// ColumnSummary describes the non-missing values of one numeric column
type ColumnSummary struct {
	Name     string
	Count    int
	Missing  int
	Mean     float64
	StdDev   float64
	Min      float64
	Max      float64
	Median   float64
	Q25      float64
	Q75      float64
	Outliers int
}

// Summarize drops NaN values and computes summary statistics over the
// remainder. With no values left every statistic is NaN.
func Summarize(name string, values []float64) ColumnSummary {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}

	nan := math.NaN()
	s := ColumnSummary{
		Name:    name,
		Count:   len(present),
		Missing: len(values) - len(present),
		Mean:    nan,
		StdDev:  nan,
		Min:     nan,
		Max:     nan,
		Median:  nan,
		Q25:     nan,
		Q75:     nan,
	}
	if len(present) == 0 {
		return s
	}

	s.Mean, _ = stats.Mean(present)
	s.StdDev, _ = stats.StandardDeviationSample(present)
	s.Min, _ = stats.Min(present)
	s.Max, _ = stats.Max(present)
	s.Median, _ = stats.Median(present)
	if q, err := stats.Quartile(present); err == nil && len(present) >= 4 {
		s.Q25, s.Q75 = q.Q1, q.Q3
		s.Outliers = countOutliers(present, q.Q1, q.Q3)
	}
	if len(present) < 2 {
		s.StdDev = nan
	}
	return s
}

// countOutliers uses the 1.5 IQR fences
func countOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr

	n := 0
	for _, x := range data {
		if x < lower || x > upper {
			n++
		}
	}
	return n
}
