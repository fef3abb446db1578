package charts

import (
	"fmt"
	"math"

	"legumedash/domain/nutrient"
)

// Heatmap geometry in SVG user units
const (
	heatmapCell   = 44.0
	heatmapMargin = 130.0
	legendWidth   = 16.0
	legendGap     = 24.0
)

// HeatmapCell is one square of the grid
type HeatmapCell struct {
	Row, Col  string
	Value     float64
	Label     string
	Fill      string
	TextColor string
	X, Y      float64
}

// HeatmapLabel is an axis label position
type HeatmapLabel struct {
	Text string
	X, Y float64
}

// LegendStop is a gradient stop for the color bar
type LegendStop struct {
	Offset string
	Color  string
}

// HeatmapSpec is a square grid colored on a diverging scale centered at zero
type HeatmapSpec struct {
	Fields    []string
	Cells     [][]HeatmapCell
	RowLabels []HeatmapLabel
	ColLabels []HeatmapLabel
	CellSize  float64
	Margin    float64
	Width     float64
	Height    float64
	LegendX   float64
	Legend    []LegendStop
	ScaleMin  float64
	ScaleMax  float64
}

// BuildHeatmap lays out the matrix with labels rounded to two decimals.
func BuildHeatmap(m nutrient.Matrix) HeatmapSpec {
	scale := RdBuReversed()
	n := m.Size()
	grid := heatmapCell * float64(n)

	spec := HeatmapSpec{
		Fields:   append([]string(nil), m.Fields...),
		CellSize: heatmapCell,
		Margin:   heatmapMargin,
		Width:    heatmapMargin + grid + legendGap + legendWidth + 40,
		Height:   heatmapMargin + grid + 10,
		LegendX:  heatmapMargin + grid + legendGap,
		ScaleMin: scale.Min,
		ScaleMax: scale.Max,
	}

	spec.Cells = make([][]HeatmapCell, n)
	for i, row := range m.Fields {
		spec.RowLabels = append(spec.RowLabels, HeatmapLabel{
			Text: row,
			X:    heatmapMargin - 6,
			Y:    heatmapMargin + heatmapCell*float64(i) + heatmapCell/2,
		})
		spec.ColLabels = append(spec.ColLabels, HeatmapLabel{
			Text: row,
			X:    heatmapMargin + heatmapCell*float64(i) + heatmapCell/2,
			Y:    heatmapMargin - 6,
		})

		spec.Cells[i] = make([]HeatmapCell, n)
		for j, col := range m.Fields {
			v := m.Values[i][j]
			fill := scale.At(v)
			text := "#222222"
			if luminance(fill) < 0.5 {
				text = "#ffffff"
			}
			spec.Cells[i][j] = HeatmapCell{
				Row:       row,
				Col:       col,
				Value:     v,
				Label:     CellLabel(v),
				Fill:      Hex(fill),
				TextColor: text,
				X:         heatmapMargin + heatmapCell*float64(j),
				Y:         heatmapMargin + heatmapCell*float64(i),
			}
		}
	}

	for _, stop := range scale.Stops {
		// SVG gradients run top to bottom; +1 belongs at the top
		spec.Legend = append(spec.Legend, LegendStop{
			Offset: fmt.Sprintf("%.0f%%", (1-stop.Pos)*100),
			Color:  Hex(stop.Color),
		})
	}
	reverse(spec.Legend)
	return spec
}

// CellLabel formats a correlation to two decimals. NaN shows as "NaN".
func CellLabel(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	s := fmt.Sprintf("%.2f", v)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

func reverse(stops []LegendStop) {
	for i, j := 0, len(stops)-1; i < j; i, j = i+1, j-1 {
		stops[i], stops[j] = stops[j], stops[i]
	}
}

// GridSize is the side length of the cell grid, which the color bar spans
func (s HeatmapSpec) GridSize() float64 {
	return s.CellSize * float64(len(s.Fields))
}
