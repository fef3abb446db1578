package app

import (
	"bytes"
	"context"
	stderrors "errors"
	"math"
	"testing"

	"legumedash/domain/core"
	"legumedash/domain/nutrient"
	"legumedash/internal"
	"legumedash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTableStore implements ports.TableStore for testing
type MockTableStore struct {
	mock.Mock
}

func (m *MockTableStore) Load(ctx context.Context) (*nutrient.Table, error) {
	args := m.Called(ctx)
	table, _ := args.Get(0).(*nutrient.Table)
	return table, args.Error(1)
}

func legumeTable(t *testing.T) *nutrient.Table {
	t.Helper()
	fields := nutrient.RadarFields()
	numeric := make(map[string][]float64, len(fields))
	for i, f := range fields {
		numeric[f] = []float64{float64(i), float64(i + 2), float64(10 * i)}
	}
	numeric[nutrient.FieldStarch] = []float64{nan, nan, 4}
	return newTable(t, []string{"Lentils", "Lentils", "Peanuts"}, numeric, fields...)
}

func TestBuildView_DefaultsToFirstCategory(t *testing.T) {
	vm, err := BuildView(legumeTable(t), "")
	require.NoError(t, err)

	assert.Equal(t, "Lentils", vm.Selected)
	assert.Empty(t, vm.Notice)
	assert.Equal(t, []string{"Lentils", "Peanuts"}, vm.Categories)
	assert.Equal(t, "Radar Chart for Lentils", vm.RadarTitle)
	assert.Equal(t, PageTitle, vm.Title)
	assert.False(t, core.ID(vm.RenderID).IsEmpty())
}

func TestBuildView_SelectedCategory(t *testing.T) {
	vm, err := BuildView(legumeTable(t), "Peanuts")
	require.NoError(t, err)

	assert.Equal(t, "Peanuts", vm.Selected)
	assert.Equal(t, 10.0, vm.Mean[nutrient.FieldFat])
	require.Len(t, vm.Radar.Points, 13)
	assert.Equal(t, "Peanuts", vm.Radar.Name)
	assert.Equal(t, vm.Radar.Points[0].Field, vm.Radar.Points[12].Field)
}

func TestBuildView_AllMissingFieldRendersAsGap(t *testing.T) {
	vm, err := BuildView(legumeTable(t), "Lentils")
	require.NoError(t, err)

	assert.True(t, math.IsNaN(vm.Mean[nutrient.FieldStarch]))
	assert.True(t, vm.Radar.Points[3].Missing)
	assert.Equal(t, 1, vm.Radar.Missing)
}

func TestBuildView_UnknownCategoryFallsBack(t *testing.T) {
	vm, err := BuildView(legumeTable(t), "Soybeans")
	require.NoError(t, err, "unknown category must not fail the render")

	assert.Equal(t, "Lentils", vm.Selected)
	assert.Equal(t, "Soybeans", vm.Requested)
	assert.Contains(t, vm.Notice, "Soybeans")
	assert.Equal(t, "Radar Chart for Lentils", vm.RadarTitle)
}

func TestBuildView_TableAndHeatmapCoverWholeTable(t *testing.T) {
	table := legumeTable(t)
	vm, err := BuildView(table, "Peanuts")
	require.NoError(t, err)

	assert.Len(t, vm.Table.Rows, 3, "table view is unfiltered")
	assert.Equal(t, table.Headers(), vm.Table.Headers)
	assert.Equal(t, MissingCell, vm.Table.Rows[0][4])
	assert.False(t, vm.Table.Numeric[0])
	assert.True(t, vm.Table.Numeric[1])

	assert.Equal(t, table.NumericFields(), vm.Correlation.Fields)
	assert.True(t, vm.Correlation.IsSymmetric())
	assert.Len(t, vm.Heatmap.Cells, len(table.NumericFields()))

	other, err := BuildView(table, "Lentils")
	require.NoError(t, err)
	assert.Equal(t, vm.Heatmap.Cells[1][2].Label, other.Heatmap.Cells[1][2].Label,
		"correlation does not depend on the selection")
	assert.NotEqual(t, vm.RenderID, other.RenderID)
}

func TestDashboardService_RenderLogsFallback(t *testing.T) {
	var buf bytes.Buffer
	svc := NewDashboardService(legumeTable(t), internal.NewLoggerTo(internal.LogLevelWarn, &buf))

	vm, err := svc.Render(context.Background(), "Mung Beans")
	require.NoError(t, err)
	assert.Equal(t, "Lentils", vm.Selected)
	assert.Contains(t, buf.String(), "[WARN] [Dashboard]")
	assert.Contains(t, buf.String(), "Mung Beans")
}

func TestDashboardService_RenderHonorsCancellation(t *testing.T) {
	svc := NewDashboardService(legumeTable(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Render(ctx, "Lentils")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBootstrap_LoadsOnce(t *testing.T) {
	store := new(MockTableStore)
	store.On("Load", mock.Anything).Return(legumeTable(t), nil).Once()

	svc, err := Bootstrap(context.Background(), store, nil)
	require.NoError(t, err)

	for _, c := range []string{"Lentils", "Peanuts", "", "nope"} {
		_, err := svc.Render(context.Background(), c)
		require.NoError(t, err)
	}
	store.AssertNumberOfCalls(t, "Load", 1)
	assert.Equal(t, []string{"Lentils", "Peanuts"}, svc.Categories())
}

func TestBootstrap_DataUnavailable(t *testing.T) {
	store := new(MockTableStore)
	store.On("Load", mock.Anything).Return(nil, stderrors.New("disk on fire"))

	svc, err := Bootstrap(context.Background(), store, nil)
	assert.Nil(t, svc)
	assert.True(t, core.IsDataUnavailable(err))
	assert.Equal(t, errors.CodeDataUnavailable, errors.GetCode(err))
}
