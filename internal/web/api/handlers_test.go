package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/web/jobs"
	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

func sampleReport() *types.Report {
	return &types.Report{
		ReportID:  "rep-1",
		ScanID:    "scan-1",
		ScanType:  types.ScanSystem,
		Timestamp: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		Summary: types.ReportSummary{
			RiskLevel:     types.RiskMedium,
			RiskScore:     64,
			IssueCount:    1,
			OverallStatus: types.StatusCompleted,
		},
		Details: types.ReportDetails{
			Issues: types.IssuesBySeverity{
				High: []types.Issue{{
					ID:       "issue-1",
					Title:    "Firewall is disabled",
					Severity: types.SeverityHigh,
					Category: "firewall",
				}},
			},
			Recommendations: []string{"Enable the firewall"},
		},
		AgentInfo: types.AgentInfo{ClientID: "client-7", Version: "test"},
	}
}

func setupTestHandlers(t *testing.T) (*Handlers, *chi.Mux) {
	t.Helper()

	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("job-%d", n)
	}
	run := func(_ context.Context, scanType types.ScanType) (*types.Report, error) {
		rep := sampleReport()
		rep.ScanType = scanType
		return rep, nil
	}
	mgr := jobs.NewManager(run, newID, time.Minute)
	h := NewHandlers(mgr, t.TempDir(), "client-7")

	r := chi.NewRouter()
	r.Post("/api/v1/scans", h.CreateScan)
	r.Get("/api/v1/scans", h.ListScans)
	r.Get("/api/v1/scans/{id}", h.GetScan)
	r.Get("/api/v1/scans/{id}/report", h.GetScanReport)
	r.Delete("/api/v1/scans/{id}", h.DeleteScan)
	r.Get("/api/v1/reports", h.ListReports)
	r.Get("/api/v1/reports/{name}", h.GetReportFile)
	return h, r
}

func waitForCompleted(t *testing.T, mgr *jobs.Manager, jobID string) {
	t.Helper()
	require.Eventually(t, func() bool {
		j, err := mgr.Get(jobID)
		return err == nil && j.Status == jobs.StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)
}

func TestCreateScan_ValidBody(t *testing.T) {
	_, router := setupTestHandlers(t)

	body := `{"scanType": "system"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, "running", resp["status"])
}

func TestCreateScan_MissingScanType(t *testing.T) {
	_, router := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scans", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateScan_UnknownScanType(t *testing.T) {
	_, router := setupTestHandlers(t)

	body := `{"scanType": "vulnerability"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateScan_InvalidJSON(t *testing.T) {
	_, router := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scans", bytes.NewBufferString("{invalid"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListScans_ReturnsJobs(t *testing.T) {
	h, router := setupTestHandlers(t)

	h.Manager.Create(types.ScanQuick, "client-7")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scans", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &list)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "quick", list[0]["scanType"])
	assert.Equal(t, "pending", list[0]["status"])
}

func TestGetScan_Found(t *testing.T) {
	h, router := setupTestHandlers(t)

	job := h.Manager.Create(types.ScanSystem, "")
	require.NoError(t, h.Manager.Start(job.ID))
	waitForCompleted(t, h.Manager, job.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+job.ID, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, job.ID, resp["id"])
	assert.NotNil(t, resp["report"])
}

func TestGetScan_NotFound(t *testing.T) {
	_, router := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scans/nonexistent", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetScanReport_DefaultsToHTML(t *testing.T) {
	h, router := setupTestHandlers(t)

	job := h.Manager.Create(types.ScanSystem, "")
	require.NoError(t, h.Manager.Start(job.ID))
	waitForCompleted(t, h.Manager, job.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+job.ID+"/report", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Firewall is disabled")
}

func TestGetScanReport_JSONFormat(t *testing.T) {
	h, router := setupTestHandlers(t)

	job := h.Manager.Create(types.ScanSystem, "")
	require.NoError(t, h.Manager.Start(job.ID))
	waitForCompleted(t, h.Manager, job.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+job.ID+"/report?format=json", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var rep types.Report
	err := json.Unmarshal(w.Body.Bytes(), &rep)
	require.NoError(t, err)
	assert.Equal(t, "rep-1", rep.ReportID)
}

func TestGetScanReport_UnknownFormat(t *testing.T) {
	h, router := setupTestHandlers(t)

	job := h.Manager.Create(types.ScanSystem, "")
	require.NoError(t, h.Manager.Start(job.ID))
	waitForCompleted(t, h.Manager, job.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+job.ID+"/report?format=xml", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetScanReport_PendingConflict(t *testing.T) {
	h, router := setupTestHandlers(t)

	job := h.Manager.Create(types.ScanSystem, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+job.ID+"/report", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteScan(t *testing.T) {
	h, router := setupTestHandlers(t)

	job := h.Manager.Create(types.ScanSystem, "")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/scans/"+job.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/scans/"+job.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListReports_EmptyDirMissing(t *testing.T) {
	h, router := setupTestHandlers(t)
	h.ReportsDir = filepath.Join(t.TempDir(), "does-not-exist")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListReports_ListsJSONFiles(t *testing.T) {
	h, router := setupTestHandlers(t)

	older := filepath.Join(h.ReportsDir, "report-a.json")
	newer := filepath.Join(h.ReportsDir, "report-b.json")
	require.NoError(t, os.WriteFile(older, []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(h.ReportsDir, "notes.txt"), []byte("x"), 0o644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &list)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "report-b.json", list[0]["name"])
	assert.Equal(t, "report-a.json", list[1]["name"])
}

func TestGetReportFile(t *testing.T) {
	h, router := setupTestHandlers(t)

	path := filepath.Join(h.ReportsDir, "report-a.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"reportId":"rep-1"}`), 0o644))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/report-a.json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rep-1")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reports/missing.json", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reports/report-a.txt", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
