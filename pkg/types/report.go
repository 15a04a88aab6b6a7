package types

import "time"

// RiskScoreSet maps category names to 0-100 integer scores, with an
// overall score derived from them via the analyzer's self-weighted
// average. Overall is never stored independently of its inputs.
type RiskScoreSet struct {
	Categories map[string]int `json:"categories"`
	Overall    int            `json:"overall"`
}

// IssuesBySeverity groups issues into the four taxonomy buckets.
type IssuesBySeverity struct {
	Critical []Issue `json:"critical"`
	High     []Issue `json:"high"`
	Medium   []Issue `json:"medium"`
	Low      []Issue `json:"low"`
}

// Count returns the total issue count across all buckets.
func (i IssuesBySeverity) Count() int {
	return len(i.Critical) + len(i.High) + len(i.Medium) + len(i.Low)
}

// Analysis is the risk analyzer's output for one scan.
type Analysis struct {
	RiskScores      RiskScoreSet     `json:"riskScores"`
	Issues          IssuesBySeverity `json:"issues"`
	Recommendations []string         `json:"recommendations"`
	Summary         AnalysisSummary  `json:"summary"`
}

type AnalysisSummary struct {
	RiskLevel   string   `json:"riskLevel"`
	TotalIssues int      `json:"totalIssues"`
	ScanType    ScanType `json:"scanType"`
}

// Risk levels derived from the overall score.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Report is the top-level artifact handed to the persistence layer.
// A rerun produces a new Report with a new ReportID; reports are
// never updated in place.
type Report struct {
	ReportID      string         `json:"reportId"`
	ScanID        string         `json:"scanId"`
	ScanType      ScanType       `json:"scanType"`
	Timestamp     time.Time      `json:"timestamp"`
	Summary       ReportSummary  `json:"summary"`
	Details       ReportDetails  `json:"details"`
	SystemDetails SystemSummary  `json:"systemDetails"`
	ScanData      map[string]any `json:"scanData,omitempty"`
	AgentInfo     AgentInfo      `json:"agentInfo"`
}

// Overall report statuses.
const (
	StatusCompleted = "completed"
	StatusError     = "error"
)

type ReportSummary struct {
	RiskLevel     string `json:"riskLevel"`
	RiskScore     int    `json:"riskScore"`
	IssueCount    int    `json:"issueCount"`
	OverallStatus string `json:"overallStatus"`
}

// ReportDetails exposes both scoring models side by side: the
// analyzer's self-weighted average and the issue builder's linear
// sum. The two are not guaranteed to agree.
type ReportDetails struct {
	Issues                IssuesBySeverity `json:"issues"`
	Recommendations       []string         `json:"recommendations"`
	RiskScores            RiskScoreSet     `json:"riskScores"`
	AnalyzerRiskScore     int              `json:"analyzerRiskScore"`
	IssueBuilderRiskScore int              `json:"issueBuilderRiskScore"`
	RemediationPlan       RemediationPlan  `json:"remediationPlan"`
}

// SystemSummary is the compact host description embedded in every
// report; every field tolerates missing raw data.
type SystemSummary struct {
	OS          string `json:"os"`
	CPU         string `json:"cpu"`
	Memory      string `json:"memory"`
	PrimaryIP   string `json:"primaryIp,omitempty"`
	DeviceCount int    `json:"deviceCount"`
}

type AgentInfo struct {
	ClientID string `json:"clientId"`
	Version  string `json:"version"`
	Hostname string `json:"hostname,omitempty"`
	Platform string `json:"platform,omitempty"`
}
