package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// TableFormatter renders the report as a colored terminal summary
// with an issue table.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, report *types.Report) error {
	fmt.Fprintf(w, "\nScan %s (%s) — %s\n", report.ScanID, report.ScanType, report.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Risk: %s (score %d)  Status: %s\n",
		colorRiskLevel(report.Summary.RiskLevel), report.Summary.RiskScore, report.Summary.OverallStatus)

	if sys := report.SystemDetails; sys.OS != "" {
		fmt.Fprintf(w, "Host: %s  %s  %s\n", sys.OS, sys.CPU, sys.Memory)
	}

	issues := flattenIssues(report)
	if len(issues) == 0 {
		fmt.Fprintln(w, "\nNo issues found.")
		return nil
	}

	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Severity", "Category", "Title", "Location"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, issue := range issues {
		table.Append([]string{colorSeverity(issue.Severity), issue.Category, issue.Title, issue.Location})
	}
	table.Render()

	b := report.Details.Issues
	fmt.Fprintf(w, "  Summary: %d issues (%d critical, %d high, %d medium, %d low)\n",
		b.Count(), len(b.Critical), len(b.High), len(b.Medium), len(b.Low))

	if recs := report.Details.Recommendations; len(recs) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range recs {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
	return nil
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return color.New(color.FgRed, color.Bold).Sprint("CRITICAL")
	case types.SeverityHigh:
		return color.RedString("HIGH")
	case types.SeverityMedium:
		return color.YellowString("MEDIUM")
	case types.SeverityLow:
		return color.CyanString("LOW")
	default:
		return string(s)
	}
}

func colorRiskLevel(level string) string {
	switch level {
	case types.RiskHigh:
		return color.RedString("HIGH")
	case types.RiskMedium:
		return color.YellowString("MEDIUM")
	case types.RiskLow:
		return color.GreenString("LOW")
	default:
		return level
	}
}
