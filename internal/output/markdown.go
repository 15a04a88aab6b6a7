package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// MarkdownFormatter renders the report as Markdown suitable for
// pasting into docs, tickets, or pull-request descriptions.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, report *types.Report) error {
	fmt.Fprintf(w, "# Security Scan Report\n\n")
	fmt.Fprintf(w, "- **Scan:** %s (%s)\n", report.ScanID, report.ScanType)
	fmt.Fprintf(w, "- **Date:** %s\n", report.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "- **Risk level:** %s (score %d)\n", report.Summary.RiskLevel, report.Summary.RiskScore)
	fmt.Fprintf(w, "- **Status:** %s\n", report.Summary.OverallStatus)
	if sys := report.SystemDetails; sys.OS != "" {
		fmt.Fprintf(w, "- **Host:** %s, %s, %s\n", sys.OS, sys.CPU, sys.Memory)
	}

	issues := flattenIssues(report)
	if len(issues) == 0 {
		fmt.Fprintln(w, "\n_No issues found._")
		return nil
	}

	fmt.Fprintf(w, "\n## Issues\n\n")
	fmt.Fprintln(w, "| Severity | Category | Title | Recommendation |")
	fmt.Fprintln(w, "|----------|----------|-------|----------------|")
	for _, issue := range issues {
		fmt.Fprintf(w, "| **%s** | %s | %s | %s |\n",
			strings.ToUpper(string(issue.Severity)),
			escapeMarkdown(issue.Category),
			escapeMarkdown(issue.Title),
			escapeMarkdown(issue.Recommendation))
	}

	b := report.Details.Issues
	fmt.Fprintf(w, "\n**Summary:** %d issues (%d critical, %d high, %d medium, %d low)\n",
		b.Count(), len(b.Critical), len(b.High), len(b.Medium), len(b.Low))

	if recs := report.Details.Recommendations; len(recs) > 0 {
		fmt.Fprintf(w, "\n## Recommendations\n\n")
		for _, rec := range recs {
			fmt.Fprintf(w, "1. %s\n", rec)
		}
	}
	return nil
}

// escapeMarkdown escapes pipe characters that would break Markdown tables.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
