package output

import (
	"fmt"
	"html/template"
	"io"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// HTMLFormatter renders the report as a self-contained HTML page with
// styled severity badges and expandable remediation details.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(w io.Writer, report *types.Report) error {
	return htmlTpl.Execute(w, templateData{
		Report: report,
		Issues: flattenIssues(report),
	})
}

type templateData struct {
	Report *types.Report
	Issues []types.Issue
}

// severityClass maps a Severity to a CSS class name.
func severityClass(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return "critical"
	case types.SeverityHigh:
		return "high"
	case types.SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

var funcMap = template.FuncMap{
	"severityClass": severityClass,
	"riskClass": func(level string) string {
		switch level {
		case types.RiskHigh:
			return "critical"
		case types.RiskMedium:
			return "medium"
		default:
			return "low"
		}
	},
}

var htmlTpl = template.Must(template.New("report").Funcs(funcMap).Parse(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Security Scan Report</title>
<style>%s</style>
</head>
<body>
<div class="container">
  <h1>Security Scan Report</h1>

  <div class="summary-bar">
    <span class="badge {{riskClass .Report.Summary.RiskLevel}}">Risk: {{.Report.Summary.RiskLevel}}</span>
    <span class="badge score">Score {{.Report.Summary.RiskScore}}</span>
    <span class="total">{{.Report.Summary.IssueCount}} issues &mdash; scan {{.Report.ScanID}} ({{.Report.ScanType}})</span>
  </div>

  {{if .Report.SystemDetails.OS}}
  <p class="host">{{.Report.SystemDetails.OS}} &middot; {{.Report.SystemDetails.CPU}} &middot; {{.Report.SystemDetails.Memory}}</p>
  {{end}}

  {{if not .Issues}}
    <p class="no-findings">No issues found.</p>
  {{else}}
    <table>
      <thead>
        <tr><th>Severity</th><th>Category</th><th>Title</th><th>Details</th></tr>
      </thead>
      <tbody>
        {{range .Issues}}
        <tr>
          <td><span class="badge {{severityClass .Severity}}">{{.Severity}}</span></td>
          <td>{{.Category}}</td>
          <td>{{.Title}}</td>
          <td>
            {{.Description}}
            {{if or .Recommendation .RemediationSteps}}
            <details>
              <summary>Remediation</summary>
              {{if .Recommendation}}<p><strong>Recommendation:</strong> {{.Recommendation}}</p>{{end}}
              {{if .RemediationSteps}}<ol>{{range .RemediationSteps}}<li>{{.}}</li>{{end}}</ol>{{end}}
            </details>
            {{end}}
          </td>
        </tr>
        {{end}}
      </tbody>
    </table>
  {{end}}

  {{if .Report.Details.Recommendations}}
  <section class="recommendations">
    <h2>Recommendations</h2>
    <ol>
      {{range .Report.Details.Recommendations}}<li>{{.}}</li>{{end}}
    </ol>
  </section>
  {{end}}
</div>
</body>
</html>`, cssStyles)))

const cssStyles = `
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif;
     line-height:1.6;color:#1a1a2e;background:#f5f5fa;padding:2rem}
.container{max-width:960px;margin:0 auto}
h1{margin-bottom:1rem;font-size:1.8rem}
h2{margin:1.5rem 0 .75rem;font-size:1.3rem;border-bottom:2px solid #e0e0e0;padding-bottom:.3rem}
.summary-bar{display:flex;gap:.5rem;flex-wrap:wrap;align-items:center;margin-bottom:1rem}
.host{color:#555;margin-bottom:1.5rem}
.total{margin-left:.5rem;font-weight:600}
.badge{display:inline-block;padding:2px 10px;border-radius:12px;font-size:.8rem;font-weight:700;color:#fff;text-transform:uppercase}
.badge.critical{background:#d32f2f}
.badge.high{background:#e53935}
.badge.medium{background:#f9a825;color:#333}
.badge.low{background:#0288d1}
.badge.score{background:#455a64}
table{width:100%;border-collapse:collapse;margin-bottom:1rem}
th,td{text-align:left;padding:.5rem .75rem;border-bottom:1px solid #e0e0e0}
th{background:#eaeaea;font-weight:600}
tr:hover{background:#f0f0ff}
details{margin-top:.4rem}
summary{cursor:pointer;color:#1565c0;font-size:.85rem}
.no-findings{color:#666;font-style:italic}
.recommendations{margin-bottom:2rem}
.recommendations ol{padding-left:1.5rem}
`
