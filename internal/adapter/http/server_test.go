package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/microplastics-etl/internal/adapter/http"
	"github.com/couchcryptid/microplastics-etl/internal/observability"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error, dataDir string) (*httpadapter.Server, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, dataDir, metrics.Gatherer(), slog.Default()), metrics
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(nil, "")
	rec := get(srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(nil, "")
	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(fmt.Errorf("pipeline has not completed a run yet"), "")
	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "pipeline has not completed a run yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, metrics := newTestServer(nil, "")
	metrics.RowsRead.Add(42)

	rec := get(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "microplastics_etl_rows_read_total 42")
}

func TestDataServesDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metrics.json"), []byte(`{"summary":{}}`), 0o644))
	srv, _ := newTestServer(nil, dir)

	rec := get(srv, "/data/metrics.json")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"summary":{}}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	assert.Equal(t, http.StatusNotFound, get(srv, "/data/missing.json").Code)
}

func TestDataDisabledWithoutDir(t *testing.T) {
	srv, _ := newTestServer(nil, "")
	assert.Equal(t, http.StatusNotFound, get(srv, "/data/metrics.json").Code)
}
