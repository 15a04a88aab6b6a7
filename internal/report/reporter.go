// Package report assembles the final Report artifact: it merges the
// analyzer and issue-builder output, summarizes the host, sanitizes
// the embedded raw data, and persists the report as pretty-printed
// JSON. The reporter is the only component permitted to redact
// fields, and its disk write is the pipeline's single externally
// observable side effect.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// Version is the agent version stamped into every report; overridden
// at build time.
var Version = "dev"

// Reporter builds and persists reports.
type Reporter struct {
	log        hclog.Logger
	reportsDir string
	now        func() time.Time
	newID      func() string
}

// NewReporter creates a Reporter writing into reportsDir. Nil clock
// and id generator default to the real clock and UUID v4.
func NewReporter(log hclog.Logger, reportsDir string, now func() time.Time, newID func() string) *Reporter {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if reportsDir == "" {
		reportsDir = "reports"
	}
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Reporter{log: log, reportsDir: reportsDir, now: now, newID: newID}
}

// Generate assembles the report and persists it. It never returns an
// error: any internal failure yields a minimal in-memory report with
// overall status "error", so callers can always rely on a report
// being present.
func (r *Reporter) Generate(scanID string, scanType types.ScanType, raw *types.RawScanResult, analysis *types.Analysis, detailed *types.DetailedReport, clientID string) *types.Report {
	ts := r.now().UTC()

	if analysis == nil || raw == nil {
		r.log.Error("report generation called with missing inputs", "scanId", scanID)
		return r.minimalReport(scanID, scanType, clientID, ts)
	}

	scanData, err := CloneAndSanitize(raw)
	if err != nil {
		r.log.Error("sanitizing scan data failed", "scanId", scanID, "error", err)
		return r.minimalReport(scanID, scanType, clientID, ts)
	}

	var plan types.RemediationPlan
	builderScore := 0
	if detailed != nil {
		plan = detailed.Plan
		builderScore = detailed.RiskScore
	}

	rep := &types.Report{
		ReportID:  r.newID(),
		ScanID:    scanID,
		ScanType:  scanType,
		Timestamp: ts,
		Summary: types.ReportSummary{
			RiskLevel:     analysis.Summary.RiskLevel,
			RiskScore:     analysis.RiskScores.Overall,
			IssueCount:    analysis.Issues.Count(),
			OverallStatus: types.StatusCompleted,
		},
		Details: types.ReportDetails{
			Issues:                analysis.Issues,
			Recommendations:       analysis.Recommendations,
			RiskScores:            analysis.RiskScores,
			AnalyzerRiskScore:     analysis.RiskScores.Overall,
			IssueBuilderRiskScore: builderScore,
			RemediationPlan:       plan,
		},
		SystemDetails: systemSummary(raw),
		ScanData:      scanData,
		AgentInfo: types.AgentInfo{
			ClientID: clientID,
			Version:  Version,
			Hostname: hostnameOf(raw),
			Platform: runtime.GOOS,
		},
	}

	if err := r.persist(rep); err != nil {
		r.log.Error("persisting report failed", "scanId", scanID, "error", err)
		rep.Summary.OverallStatus = types.StatusError
	}

	return rep
}

// minimalReport is the §7(d) fallback: a well-shaped report object
// the caller can always use, marked as errored.
func (r *Reporter) minimalReport(scanID string, scanType types.ScanType, clientID string, ts time.Time) *types.Report {
	return &types.Report{
		ReportID:  r.newID(),
		ScanID:    scanID,
		ScanType:  scanType,
		Timestamp: ts,
		Summary: types.ReportSummary{
			RiskLevel:     types.RiskHigh,
			OverallStatus: types.StatusError,
		},
		AgentInfo: types.AgentInfo{
			ClientID: clientID,
			Version:  Version,
			Platform: runtime.GOOS,
		},
	}
}

// persist writes the report as pretty-printed UTF-8 JSON using a
// write-to-temp-then-rename so a crash mid-write never leaves a
// half-written report file.
func (r *Reporter) persist(rep *types.Report) error {
	if err := os.MkdirAll(r.reportsDir, 0o755); err != nil {
		return fmt.Errorf("creating reports directory: %w", err)
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	stamp := strings.ReplaceAll(rep.Timestamp.Format(time.RFC3339), ":", "-")
	final := filepath.Join(r.reportsDir, fmt.Sprintf("report-%s-%s.json", rep.ScanID, stamp))

	tmp, err := os.CreateTemp(r.reportsDir, ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp report file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing report file: %w", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming report file: %w", err)
	}

	r.log.Info("report persisted", "path", final)
	return nil
}

// systemSummary builds the compact host description, tolerating any
// missing sub-field.
func systemSummary(raw *types.RawScanResult) types.SystemSummary {
	var s types.SystemSummary

	if sys := raw.System; sys != nil {
		if sys.OS.Name != "" {
			s.OS = strings.TrimSpace(fmt.Sprintf("%s %s", sys.OS.Name, sys.OS.Version))
		} else if sys.OS.Platform != "" {
			s.OS = sys.OS.Platform
		}
		if sys.CPU.Model != "" {
			s.CPU = fmt.Sprintf("%s (%d cores)", sys.CPU.Model, sys.CPU.Cores)
		}
		if sys.Memory.TotalBytes > 0 {
			s.Memory = FormatBytes(sys.Memory.TotalBytes)
		}
	}

	if n := raw.Network; n != nil {
		s.DeviceCount = len(n.Devices)
		for _, iface := range n.Interfaces {
			if iface.IP != "" {
				s.PrimaryIP = iface.IP
				break
			}
		}
	}
	if s.PrimaryIP == "" && raw.Config != nil && raw.Config.NetworkConfig != nil {
		for _, iface := range raw.Config.NetworkConfig.Interfaces {
			if iface.IP != "" {
				s.PrimaryIP = iface.IP
				break
			}
		}
	}

	return s
}

func hostnameOf(raw *types.RawScanResult) string {
	if raw.System != nil {
		return raw.System.OS.Hostname
	}
	return ""
}
