package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/web/jobs"
	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

func integrationReport(scanType types.ScanType) *types.Report {
	return &types.Report{
		ReportID:  "rep-int-1",
		ScanID:    "scan-int-1",
		ScanType:  scanType,
		Timestamp: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		Summary: types.ReportSummary{
			RiskLevel:     types.RiskHigh,
			RiskScore:     41,
			IssueCount:    2,
			OverallStatus: types.StatusCompleted,
		},
		Details: types.ReportDetails{
			Issues: types.IssuesBySeverity{
				High: []types.Issue{
					{ID: "i-1", Title: "Firewall is disabled", Severity: types.SeverityHigh, Category: "firewall"},
					{ID: "i-2", Title: "Telnet service exposed", Severity: types.SeverityHigh, Category: "network"},
				},
			},
			Recommendations: []string{"Enable the firewall", "Disable telnet"},
		},
		AgentInfo: types.AgentInfo{ClientID: "client-1", Version: "test"},
	}
}

func newIntegrationServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	run := func(_ context.Context, scanType types.ScanType) (*types.Report, error) {
		return integrationReport(scanType), nil
	}
	srv := newServer(":0", run, newID, t.TempDir(), "client-1")
	ts := httptest.NewServer(srv.Router())
	return srv, ts
}

func waitForCompletion(t *testing.T, mgr *jobs.Manager, jobID string) {
	t.Helper()
	require.Eventually(t, func() bool {
		j, err := mgr.Get(jobID)
		if err != nil {
			return false
		}
		return j.Status == jobs.StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)
}

func TestIntegration_SubmitScanPollAndVerifyReport(t *testing.T) {
	srv, ts := newIntegrationServer(t)
	defer ts.Close()

	// Create scan via API.
	body := `{"scanType": "system"}`
	resp, err := http.Post(ts.URL+"/api/v1/scans", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	err = json.NewDecoder(resp.Body).Decode(&created)
	require.NoError(t, err)
	jobID := created["id"].(string)
	assert.NotEmpty(t, jobID)

	waitForCompletion(t, srv.manager, jobID)

	// Poll the job.
	resp2, err := http.Get(ts.URL + "/api/v1/scans/" + jobID)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	var job map[string]any
	err = json.NewDecoder(resp2.Body).Decode(&job)
	require.NoError(t, err)
	assert.Equal(t, "completed", job["status"])
	rep, ok := job["report"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "system", rep["scanType"])
}

func TestIntegration_CreateScanAndFetchHTMLReport(t *testing.T) {
	srv, ts := newIntegrationServer(t)
	defer ts.Close()

	body := `{"scanType": "network"}`
	resp, err := http.Post(ts.URL+"/api/v1/scans", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	jobID := created["id"].(string)

	waitForCompletion(t, srv.manager, jobID)

	resp2, err := http.Get(ts.URL + "/api/v1/scans/" + jobID + "/report")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Contains(t, resp2.Header.Get("Content-Type"), "text/html")

	htmlBody, _ := io.ReadAll(resp2.Body)
	assert.True(t, strings.HasPrefix(string(htmlBody), "<!DOCTYPE html>"))
	assert.Contains(t, string(htmlBody), "Telnet service exposed")
}

func TestIntegration_ScanListShowsCreatedScan(t *testing.T) {
	_, ts := newIntegrationServer(t)
	defer ts.Close()

	// Initially empty.
	resp, err := http.Get(ts.URL + "/api/v1/scans")
	require.NoError(t, err)
	defer resp.Body.Close()

	var emptyList []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&emptyList))
	assert.Empty(t, emptyList)

	body := `{"scanType": "quick"}`
	resp2, err := http.Post(ts.URL+"/api/v1/scans", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp2.Body.Close()

	resp3, err := http.Get(ts.URL + "/api/v1/scans")
	require.NoError(t, err)
	defer resp3.Body.Close()

	var list []any
	require.NoError(t, json.NewDecoder(resp3.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestIntegration_CreateAndDeleteScan(t *testing.T) {
	_, ts := newIntegrationServer(t)
	defer ts.Close()

	body := `{"scanType": "full"}`
	resp, err := http.Post(ts.URL+"/api/v1/scans", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	jobID := created["id"].(string)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/scans/"+jobID, nil)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp2.StatusCode)

	resp3, err := http.Get(ts.URL + "/api/v1/scans/" + jobID)
	require.NoError(t, err)
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp3.StatusCode)
}
