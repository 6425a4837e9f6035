package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/observ-ing/core-sub000/internal/httpapi"
	"github.com/observ-ing/core-sub000/internal/supervisor"
)

// doRequest builds the server with httpapi.New and drives one request
// through its route table without binding a real listener, so handlers can
// be exercised with httptest.NewRecorder.
func doRequest(t *testing.T, state *supervisor.State, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	srv := httpapi.New(state, zaptest.NewLogger(t))
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth_ReportsConnectedAndCursor(t *testing.T) {
	state := supervisor.NewState()
	state.SetConnected(true)

	rec := doRequest(t, state, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["connected"])
	assert.Nil(t, body["cursor"])
}

func TestStats_IncludesRecentEventsAndCounters(t *testing.T) {
	state := supervisor.NewState()
	state.RecordSuccess("occurrence", "create", "at://did:plc:alice/org.rwell.test.occurrence/abc", 1, time.Now().UTC())

	rec := doRequest(t, state, http.MethodGet, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["occurrences"])

	events := body["recentEvents"].([]any)
	assert.Len(t, events, 1)
}

func TestDashboard_ServesHTML(t *testing.T) {
	state := supervisor.NewState()
	rec := doRequest(t, state, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Body.String(), "ingester")
}
