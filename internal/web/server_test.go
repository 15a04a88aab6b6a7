package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	run := func(_ context.Context, scanType types.ScanType) (*types.Report, error) {
		return &types.Report{
			ReportID: "rep-1",
			ScanType: scanType,
			Summary:  types.ReportSummary{OverallStatus: types.StatusCompleted},
		}, nil
	}
	return newServer(":0", run, newID, t.TempDir(), "client-1")
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var body map[string]string
	err = json.NewDecoder(resp.Body).Decode(&body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/nonexistent")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerHasManager(t *testing.T) {
	srv := newTestServer(t)
	assert.NotNil(t, srv.manager)
}
