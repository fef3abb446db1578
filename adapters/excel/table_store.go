package excel

import (
	"context"
	"fmt"

	"legumedash/adapters/datareadiness/coercer"
	"legumedash/domain/core"
	"legumedash/domain/nutrient"
	"legumedash/internal"
	"legumedash/internal/errors"
	"legumedash/ports"
)

var _ ports.TableStore = (*FileTableStore)(nil)

// FileTableStore loads the nutrient table from a CSV or XLSX file
type FileTableStore struct {
	config  ExcelConfig
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewFileTableStore creates a store for the configured file
func NewFileTableStore(config ExcelConfig, logger *internal.Logger) *FileTableStore {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FileTableStore{
		config:  config,
		coercer: coercer.NewTypeCoercer(config.CoercionConfig),
		logger:  logger,
	}
}

// Load reads the file and builds the table. Every failure is DataUnavailable.
func (s *FileTableStore) Load(ctx context.Context) (*nutrient.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.DataUnavailable("load cancelled", err)
	}

	raw, err := NewDataReader(s.config.FilePath, s.config.SheetName, s.logger).ReadData()
	if err != nil {
		s.logger.Error("[TableStore] Failed to read %s: %v", s.config.FilePath, err)
		return nil, errors.DataUnavailable(fmt.Sprintf("cannot read %s", s.config.FilePath), err)
	}

	table, err := s.buildTable(raw)
	if err != nil {
		s.logger.Error("[TableStore] Rejected %s: %v", s.config.FilePath, err)
		return nil, errors.DataUnavailable(fmt.Sprintf("malformed dataset %s", s.config.FilePath), err)
	}

	s.logger.Info("[TableStore] Loaded %s (%d rows, %d columns, %d numeric, fingerprint %s)",
		s.config.FilePath, table.RowCount(), len(table.Headers()), len(table.NumericFields()),
		table.Fingerprint().Short())
	return table, nil
}

func (s *FileTableStore) buildTable(raw *RawRows) (*nutrient.Table, error) {
	index := make(map[string]int, len(raw.Headers))
	for i, h := range raw.Headers {
		index[h] = i
	}
	for _, req := range s.config.RequiredColumns {
		if _, ok := index[req]; !ok {
			return nil, core.NewMissingColumnError(req)
		}
	}

	required := make(map[string]bool, len(s.config.RequiredColumns))
	for _, req := range s.config.RequiredColumns {
		required[req] = true
	}

	columns := make([]nutrient.Column, 0, len(raw.Headers))
	for i, header := range raw.Headers {
		cells := raw.Column(i)
		if header == nutrient.CategoryColumn {
			columns = append(columns, s.coercer.CoerceText(header, cells))
			continue
		}

		col, analysis := s.coercer.CoerceColumn(header, cells)
		if required[header] && col.Kind != nutrient.KindNumeric {
			// +2: one for the header row, one for 1-based numbering
			return nil, core.NewNonNumericError(header, analysis.FirstBadRow+2, cells[analysis.FirstBadRow])
		}
		s.logger.Trace("[TableStore] Column %q kind=%s present=%d numeric=%d missing=%d",
			header, col.Kind, analysis.ValidCount, analysis.NumericCount, analysis.MissingCount)
		if analysis.MissingCount > 0 {
			s.logger.Debug("[TableStore] Column %q has %d missing values", header, analysis.MissingCount)
		}
		columns = append(columns, col)
	}

	table, err := nutrient.NewTable(s.config.FilePath, columns)
	if err != nil {
		return nil, err
	}

	for row := 0; row < table.RowCount(); row++ {
		if table.Category(row) != "" {
			return table, nil
		}
	}
	return nil, fmt.Errorf("%w: no row has a %s value", core.ErrEmptyDataset, nutrient.CategoryColumn)
}
