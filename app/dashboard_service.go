package app

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"legumedash/domain/core"
	"legumedash/domain/nutrient"
	"legumedash/internal"
	"legumedash/internal/charts"
	"legumedash/internal/errors"
	"legumedash/ports"
)

// Page copy
const (
	PageTitle    = "Legume Nutrient Dashboard"
	PageCaption  = "Explore nutrient profiles for legumes using your cleaned **USDA** dataset."
	TableTitle   = "Dataset Preview"
	HeatmapTitle = "Correlation Heatmap of Nutrients"
	MissingCell  = "—"
)

// TableView is the read-only display form of the full table
type TableView struct {
	Headers []string
	Numeric []bool
	Rows    [][]string
}

// ViewModel is everything one render of the page needs. It is built fresh per
// request and never shared between requests.
type ViewModel struct {
	RenderID     core.RenderID
	Title        string
	Caption      string
	Categories   []string
	Selected     string
	Requested    string
	Notice       string
	RadarTitle   string
	Mean         map[string]float64
	Radar        charts.RadarSpec
	TableTitle   string
	Table        TableView
	HeatmapTitle string
	Correlation  nutrient.Matrix
	Heatmap      charts.HeatmapSpec
	Fingerprint  core.Hash
	RowCount     int
}

// BuildView computes the three derived views for a selection. An empty
// selection means the first catalog entry. A selection missing from the
// catalog is reset to the first entry and reported in Notice.
func BuildView(table *nutrient.Table, selected string) (*ViewModel, error) {
	catalog := DistinctCategories(table)
	if len(catalog) == 0 {
		return nil, errors.DataUnavailable("dataset has no categories", core.ErrEmptyDataset)
	}

	vm := &ViewModel{
		RenderID:     core.NewRenderID(),
		Title:        PageTitle,
		Caption:      PageCaption,
		Categories:   catalog,
		Requested:    selected,
		TableTitle:   TableTitle,
		HeatmapTitle: HeatmapTitle,
		Fingerprint:  table.Fingerprint(),
		RowCount:     table.RowCount(),
	}

	effective := selected
	if effective == "" {
		effective = catalog[0]
	}

	fields := nutrient.RadarFields()
	mean, err := MeanByCategory(table, effective, fields)
	if err != nil {
		if !core.IsUnknownCategory(err) {
			return nil, err
		}
		vm.Notice = fmt.Sprintf("Unknown legume %q; showing %s instead.", selected, catalog[0])
		effective = catalog[0]
		if mean, err = MeanByCategory(table, effective, fields); err != nil {
			return nil, errors.Wrap(err, "fallback category")
		}
	}

	vm.Selected = effective
	vm.Mean = mean
	vm.RadarTitle = "Radar Chart for " + effective
	vm.Radar = charts.BuildRadar(mean, fields)
	vm.Radar.Name = effective
	vm.Table = BuildTableView(table)
	vm.Correlation = CorrelationMatrix(table)
	vm.Heatmap = charts.BuildHeatmap(vm.Correlation)
	return vm, nil
}

// BuildTableView formats every row and column for display
func BuildTableView(table *nutrient.Table) TableView {
	headers := table.Headers()
	view := TableView{
		Headers: headers,
		Numeric: make([]bool, len(headers)),
		Rows:    make([][]string, table.RowCount()),
	}
	for i, h := range headers {
		view.Numeric[i] = table.IsNumeric(h)
	}
	for row := 0; row < table.RowCount(); row++ {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = formatCell(table.Cell(row, h))
		}
		view.Rows[row] = cells
	}
	return view
}

func formatCell(c nutrient.Cell) string {
	if c.IsMissing() {
		return MissingCell
	}
	if c.Numeric {
		if math.IsInf(c.Number, 0) {
			return c.String()
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	}
	return c.Text
}

// DashboardService renders views over the table loaded at startup
type DashboardService struct {
	table  *nutrient.Table
	logger *internal.Logger
}

// NewDashboardService creates a renderer over an already-loaded table
func NewDashboardService(table *nutrient.Table, logger *internal.Logger) *DashboardService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DashboardService{table: table, logger: logger}
}

// Table returns the shared read-only table
func (s *DashboardService) Table() *nutrient.Table {
	return s.table
}

// Categories returns the selection catalog
func (s *DashboardService) Categories() []string {
	return DistinctCategories(s.table)
}

// Render builds the view for one request
func (s *DashboardService) Render(ctx context.Context, selected string) (*ViewModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	vm, err := BuildView(s.table, selected)
	if err != nil {
		s.logger.Error("[Dashboard] Render failed for %q: %v", selected, err)
		return nil, err
	}

	if vm.Notice != "" {
		s.logger.Warn("[Dashboard] render=%s unknown category %q, reset to %q", vm.RenderID, selected, vm.Selected)
	}
	if vm.Radar.Missing > 0 {
		s.logger.Debug("[Dashboard] render=%s %d radar fields have no values for %q",
			vm.RenderID, vm.Radar.Missing, vm.Selected)
	}
	s.logger.Debug("[Dashboard] render=%s category=%q in %.2fms",
		vm.RenderID, vm.Selected, float64(time.Since(start).Nanoseconds())/1e6)
	return vm, nil
}

// Bootstrap performs the one-time load and returns the renderer that every
// request shares. It is the only place the table store is read.
func Bootstrap(ctx context.Context, store ports.TableStore, logger *internal.Logger) (*DashboardService, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	table, err := store.Load(ctx)
	if err != nil {
		if !core.IsDataUnavailable(err) {
			err = errors.DataUnavailable("table store failed", err)
		}
		return nil, err
	}
	logger.Info("[Dashboard] Ready: %d rows, %d categories", table.RowCount(), len(DistinctCategories(table)))
	return NewDashboardService(table, logger), nil
}
