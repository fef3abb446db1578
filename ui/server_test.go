package ui

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"legumedash/app"
	"legumedash/domain/nutrient"
	"legumedash/internal"
	"legumedash/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *internal.Logger {
	return internal.NewLoggerTo(internal.LogLevelError, io.Discard)
}

func testTable(t *testing.T) *nutrient.Table {
	t.Helper()
	cols := []nutrient.Column{
		nutrient.NewTextColumn(nutrient.CategoryColumn, []string{"Lentils", "Lentils", "Peanuts"}),
	}
	for i, f := range nutrient.RadarFields() {
		values := []float64{float64(i + 1), float64(i + 3), float64(5 * i)}
		if f == nutrient.FieldStarch {
			values = []float64{math.NaN(), math.NaN(), 7}
		}
		cols = append(cols, nutrient.NewNumericColumn(f, values))
	}
	table, err := nutrient.NewTable("mem", cols)
	require.NoError(t, err)
	return table
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := app.NewDashboardService(testTable(t), quietLogger())
	s, err := NewServer(svc, nil, quietLogger())
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndex_RendersRegionsInOrder(t *testing.T) {
	rec := get(t, newTestServer(t), "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Legume Nutrient Dashboard</title>")
	assert.Contains(t, body, "<strong>USDA</strong>")
	assert.Contains(t, body, "Select a Legume")
	assert.Contains(t, body, `<option value="Lentils" selected>`)
	assert.Contains(t, body, "Radar Chart for Lentils")
	assert.NotEmpty(t, rec.Header().Get("X-Render-ID"))
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	radar := strings.Index(body, `id="radar"`)
	table := strings.Index(body, `id="data-table"`)
	heatmap := strings.Index(body, `id="heatmap"`)
	require.True(t, radar > 0 && table > 0 && heatmap > 0)
	assert.Less(t, radar, table)
	assert.Less(t, table, heatmap)
}

func TestIndex_SelectsCategory(t *testing.T) {
	rec := get(t, newTestServer(t), "/?category=Peanuts")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Radar Chart for Peanuts")
	assert.Contains(t, body, `<option value="Peanuts" selected>`)
	assert.NotContains(t, body, `class="notice"`)
}

func TestIndex_UnknownCategoryShowsNotice(t *testing.T) {
	rec := get(t, newTestServer(t), "/?"+url.Values{"category": {"Mung Beans"}}.Encode())
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `class="notice"`)
	assert.Contains(t, body, "Mung Beans")
	assert.Contains(t, body, "Radar Chart for Lentils")
}

func TestIndex_MissingRadarValueIsMarked(t *testing.T) {
	rec := get(t, newTestServer(t), "/?category=Lentils")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `class="point missing"`)
	assert.Contains(t, body, nutrient.FieldStarch+": NaN")
}

func TestViewJSON_EncodesMissingAsNull(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/view?category=Lentils")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp viewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Lentils", resp.Selected)
	assert.Equal(t, []string{"Lentils", "Peanuts"}, resp.Categories)
	require.Len(t, resp.Radar.Values, len(nutrient.RadarFields())+1)
	assert.Nil(t, resp.Radar.Values[3], "starch has no values for Lentils")
	require.NotNil(t, resp.Radar.Values[0])
	assert.Equal(t, 2.0, *resp.Radar.Values[0])

	n := len(resp.Correlation.Fields)
	require.Len(t, resp.Correlation.Values, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b := resp.Correlation.Values[i][j], resp.Correlation.Values[j][i]
			if a == nil || b == nil {
				assert.True(t, a == nil && b == nil)
				continue
			}
			assert.Equal(t, *a, *b)
		}
	}
	assert.Len(t, resp.Table.Rows, 3)
}

func TestViewJSON_FallbackNotice(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/view?category=Soybeans")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp viewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Lentils", resp.Selected)
	assert.Equal(t, "Soybeans", resp.Requested)
	assert.Contains(t, resp.Notice, "Soybeans")
}

func TestCategoryParam_Rejected(t *testing.T) {
	s := newTestServer(t)
	tests := map[string]string{
		"oversized": strings.Repeat("a", maxCategoryLen+1),
		"bad utf-8": "\xff\xfe",
	}
	for name, category := range tests {
		t.Run(name, func(t *testing.T) {
			query := url.Values{"category": {category}}.Encode()

			rec := get(t, s, "/api/view?"+query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), errors.CodeInvalidInput)

			rec = get(t, s, "/?"+query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid request.")
			assert.NotContains(t, rec.Body.String(), `id="radar"`)
		})
	}

	rec := get(t, s, "/api/view?"+url.Values{"category": {strings.Repeat("a", maxCategoryLen)}}.Encode())
	assert.Equal(t, http.StatusOK, rec.Code, "a long unknown category still falls back")
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(3), body["rows"])
	assert.Equal(t, float64(2), body["categories"])
}

func TestStaticAssets(t *testing.T) {
	rec := get(t, newTestServer(t), "/static/css/dashboard.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".sidebar")
}

func TestUnavailableServer(t *testing.T) {
	loadErr := errors.DataUnavailable("cannot read legus_cleaned.csv", stderrors.New("no such file"))
	s, err := NewServer(nil, loadErr, quietLogger())
	require.NoError(t, err)

	rec := get(t, s, "/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="error-banner"`)
	assert.Contains(t, rec.Body.String(), "Dataset unavailable.")
	assert.Contains(t, rec.Body.String(), "legus_cleaned.csv")
	assert.NotContains(t, rec.Body.String(), `id="radar"`)

	rec = get(t, s, "/api/view")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), errors.CodeDataUnavailable)

	rec = get(t, s, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown(app.PageCaption))
	assert.Contains(t, out, "<strong>USDA</strong>")

	out = string(RenderMarkdown("hello <script>alert(1)</script>"))
	assert.NotContains(t, out, "<script>")
}

func TestServe_StopsOnCancel(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, "127.0.0.1:0", time.Second) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestServe_ListenFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	s := newTestServer(t)
	done := make(chan error, 1)
	go func() { done <- s.Serve(context.Background(), taken.Addr().String(), time.Second) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http server")
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not report the listen failure")
	}
}
