package ui

import (
	"math"

	"legumedash/app"
	"legumedash/domain/nutrient"
)

// viewResponse is the JSON form of a render. Missing numbers encode as null
// since encoding/json rejects NaN.
type viewResponse struct {
	RenderID    string         `json:"render_id"`
	Title       string         `json:"title"`
	Categories  []string       `json:"categories"`
	Selected    string         `json:"selected"`
	Requested   string         `json:"requested,omitempty"`
	Notice      string         `json:"notice,omitempty"`
	Radar       radarResponse  `json:"radar"`
	Table       tableResponse  `json:"table"`
	Correlation matrixResponse `json:"correlation"`
	Fingerprint string         `json:"fingerprint"`
	RowCount    int            `json:"row_count"`
}

type radarResponse struct {
	Title  string     `json:"title"`
	Name   string     `json:"name"`
	Fields []string   `json:"fields"`
	Values []*float64 `json:"values"`
	Max    float64    `json:"max"`
}

type tableResponse struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Numeric []bool     `json:"numeric"`
	Rows    [][]string `json:"rows"`
}

type matrixResponse struct {
	Title  string       `json:"title"`
	Fields []string     `json:"fields"`
	Values [][]*float64 `json:"values"`
}

func newViewResponse(vm *app.ViewModel) viewResponse {
	radar := radarResponse{
		Title:  vm.RadarTitle,
		Name:   vm.Radar.Name,
		Fields: vm.Radar.Fields,
		Max:    vm.Radar.Max,
	}
	// closing point included so clients can draw the polygon as-is
	for _, p := range vm.Radar.Points {
		radar.Values = append(radar.Values, nullable(p.Value))
	}

	return viewResponse{
		RenderID:   vm.RenderID.String(),
		Title:      vm.Title,
		Categories: vm.Categories,
		Selected:   vm.Selected,
		Requested:  vm.Requested,
		Notice:     vm.Notice,
		Radar:      radar,
		Table: tableResponse{
			Title:   vm.TableTitle,
			Headers: vm.Table.Headers,
			Numeric: vm.Table.Numeric,
			Rows:    vm.Table.Rows,
		},
		Correlation: newMatrixResponse(vm.HeatmapTitle, vm.Correlation),
		Fingerprint: vm.Fingerprint.String(),
		RowCount:    vm.RowCount,
	}
}

func newMatrixResponse(title string, m nutrient.Matrix) matrixResponse {
	out := matrixResponse{
		Title:  title,
		Fields: m.Fields,
		Values: make([][]*float64, len(m.Values)),
	}
	for i, row := range m.Values {
		out.Values[i] = make([]*float64, len(row))
		for j, v := range row {
			out.Values[i][j] = nullable(v)
		}
	}
	return out
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
