// Package output renders finished reports for terminals and
// documents. The JSON on disk is the canonical artifact; these
// formatters are presentation only.
package output

import (
	"fmt"
	"io"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// Formatter renders a report to a writer.
type Formatter interface {
	Format(w io.Writer, report *types.Report) error
}

// GetFormatter returns the appropriate formatter for the given format string.
func GetFormatter(format string) (Formatter, error) {
	switch format {
	case "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	case "html":
		return &HTMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: table, json, markdown, html)", format)
	}
}

// flattenIssues returns all issues ordered most severe first.
func flattenIssues(report *types.Report) []types.Issue {
	b := report.Details.Issues
	out := make([]types.Issue, 0, b.Count())
	out = append(out, b.Critical...)
	out = append(out, b.High...)
	out = append(out, b.Medium...)
	out = append(out, b.Low...)
	return out
}
