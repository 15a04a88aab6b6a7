package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

func sampleReport() *types.Report {
	return &types.Report{
		ReportID:  "rep-1",
		ScanID:    "scan-1",
		ScanType:  types.ScanSystem,
		Timestamp: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		Summary: types.ReportSummary{
			RiskLevel:     types.RiskHigh,
			RiskScore:     78,
			IssueCount:    2,
			OverallStatus: types.StatusCompleted,
		},
		Details: types.ReportDetails{
			Issues: types.IssuesBySeverity{
				High: []types.Issue{
					{
						ID:               "i-1",
						Title:            "Firewall is disabled",
						Description:      "No host firewall is active.",
						Severity:         types.SeverityHigh,
						Category:         "firewall",
						Location:         "localhost",
						Recommendation:   "Enable the host firewall",
						RemediationSteps: []string{"Enable ufw", "Verify default deny"},
					},
				},
				Medium: []types.Issue{
					{
						ID:             "i-2",
						Title:          "Pending security updates",
						Severity:       types.SeverityMedium,
						Category:       "updates",
						Recommendation: "Install pending updates",
					},
				},
			},
			Recommendations: []string{"Enable the host firewall", "Install pending updates"},
		},
		SystemDetails: types.SystemSummary{OS: "Ubuntu 24.04", CPU: "8 cores", Memory: "16.00 GB"},
	}
}

func TestGetFormatter(t *testing.T) {
	for _, format := range []string{"table", "json", "markdown", "html"} {
		f, err := GetFormatter(format)
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := GetFormatter("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestFlattenIssuesOrdersBySeverity(t *testing.T) {
	report := sampleReport()
	report.Details.Issues.Critical = []types.Issue{{Title: "breach", Severity: types.SeverityCritical}}
	report.Details.Issues.Low = []types.Issue{{Title: "minor", Severity: types.SeverityLow}}

	flat := flattenIssues(report)
	require.Len(t, flat, 4)
	assert.Equal(t, types.SeverityCritical, flat[0].Severity)
	assert.Equal(t, types.SeverityLow, flat[3].Severity)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "scan-1")
	assert.Contains(t, out, "Firewall is disabled")
	assert.Contains(t, out, "2 issues (0 critical, 1 high, 1 medium, 0 low)")
	assert.Contains(t, out, "Recommendations:")
}

func TestTableFormatterNoIssues(t *testing.T) {
	report := sampleReport()
	report.Details = types.ReportDetails{}

	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, report))
	assert.Contains(t, buf.String(), "No issues found.")
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, sampleReport()))

	var decoded types.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "rep-1", decoded.ReportID)
	assert.Equal(t, 78, decoded.Summary.RiskScore)
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownFormatter{}).Format(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "# Security Scan Report")
	assert.Contains(t, out, "| **HIGH** | firewall | Firewall is disabled |")
	assert.Contains(t, out, "## Recommendations")
}

func TestMarkdownFormatterEscapesPipes(t *testing.T) {
	report := sampleReport()
	report.Details.Issues.High[0].Title = "a | b"

	var buf bytes.Buffer
	require.NoError(t, (&MarkdownFormatter{}).Format(&buf, report))
	assert.Contains(t, buf.String(), `a \| b`)
}

func TestHTMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&HTMLFormatter{}).Format(&buf, sampleReport()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Firewall is disabled")
	assert.Contains(t, out, `class="badge high"`)
	assert.Contains(t, out, "<li>Enable ufw</li>")
}

func TestHTMLFormatterEscapesContent(t *testing.T) {
	report := sampleReport()
	report.Details.Issues.High[0].Title = "<script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, (&HTMLFormatter{}).Format(&buf, report))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}
