// Package api implements the REST surface of the agent's web server.
package api

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/output"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/web/jobs"
	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// Handlers holds dependencies for the REST API handlers.
type Handlers struct {
	Manager    *jobs.Manager
	ReportsDir string

	// DefaultClientID is used when a scan request carries no clientId.
	DefaultClientID string
}

// NewHandlers creates API handlers with the given dependencies.
func NewHandlers(manager *jobs.Manager, reportsDir, defaultClientID string) *Handlers {
	return &Handlers{Manager: manager, ReportsDir: reportsDir, DefaultClientID: defaultClientID}
}

// CreateScan handles POST /api/v1/scans.
func (h *Handlers) CreateScan(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateScanRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	clientID := req.ClientID
	if clientID == "" {
		clientID = h.DefaultClientID
	}

	job := h.Manager.Create(types.ScanType(req.ScanType), clientID)
	if err := h.Manager.Start(job.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start scan: "+err.Error())
		return
	}

	// The executor goroutine owns the job once started; report the
	// known post-start status instead of reading the live struct.
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     job.ID,
		"status": jobs.StatusRunning,
	})
}

// ListScans handles GET /api/v1/scans.
func (h *Handlers) ListScans(w http.ResponseWriter, r *http.Request) {
	jobList := h.Manager.List()

	type scanSummary struct {
		ID         string         `json:"id"`
		ScanType   types.ScanType `json:"scanType"`
		Status     jobs.JobStatus `json:"status"`
		CreatedAt  time.Time      `json:"createdAt"`
		IssueCount int            `json:"issueCount"`
		RiskLevel  string         `json:"riskLevel,omitempty"`
	}

	summaries := make([]scanSummary, len(jobList))
	for i, j := range jobList {
		summaries[i] = scanSummary{
			ID:         j.ID,
			ScanType:   j.ScanType,
			Status:     j.Status,
			CreatedAt:  j.CreatedAt,
			IssueCount: j.IssueCount(),
		}
		if j.Report != nil {
			summaries[i].RiskLevel = j.Report.Summary.RiskLevel
		}
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GetScan handles GET /api/v1/scans/{id}.
func (h *Handlers) GetScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// GetScanReport handles GET /api/v1/scans/{id}/report. The format
// query parameter selects the renderer; html is the default.
func (h *Handlers) GetScanReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if job.Status != jobs.StatusCompleted {
		writeError(w, http.StatusConflict, "scan is not yet completed")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, job.Report); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func contentTypeFor(format string) string {
	switch format {
	case "html":
		return "text/html; charset=utf-8"
	case "json":
		return "application/json"
	case "markdown":
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// DeleteScan handles DELETE /api/v1/scans/{id}.
func (h *Handlers) DeleteScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Manager.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListReports handles GET /api/v1/reports. It lists the report files
// persisted on disk, newest first, so reports survive server restarts
// even though jobs do not.
func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	type reportFile struct {
		Name       string    `json:"name"`
		SizeBytes  int64     `json:"sizeBytes"`
		ModifiedAt time.Time `json:"modifiedAt"`
	}

	entries, err := os.ReadDir(h.ReportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusOK, []reportFile{})
			return
		}
		writeError(w, http.StatusInternalServerError, "reading reports directory: "+err.Error())
		return
	}

	files := make([]reportFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, reportFile{
			Name:       e.Name(),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, k int) bool {
		return files[i].ModifiedAt.After(files[k].ModifiedAt)
	})

	writeJSON(w, http.StatusOK, files)
}

// GetReportFile handles GET /api/v1/reports/{name}. It serves one
// persisted report JSON file.
func (h *Handlers) GetReportFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".json") {
		writeError(w, http.StatusBadRequest, "invalid report name")
		return
	}

	data, err := os.ReadFile(filepath.Join(h.ReportsDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "reading report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
