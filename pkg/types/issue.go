package types

// Severity is the fixed four-level classification applied to every
// issue. The lowercase values are part of the report JSON contract.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// SeverityRank returns a numeric rank for sorting (lower = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// ValidSeverity reports whether s is one of the four taxonomy levels.
func ValidSeverity(s Severity) bool {
	return SeverityRank(s) < 4
}

// Issue is a single classified security finding. Issues are created
// exactly once, by either the analyzer (coarse) or the issue builder
// (detailed), and never mutated afterwards.
type Issue struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Impact                string   `json:"impact,omitempty"`
	Severity              Severity `json:"severity"`
	Category              string   `json:"category"`
	Location              string   `json:"location,omitempty"`
	Recommendation        string   `json:"recommendation"`
	RemediationSteps      []string `json:"remediationSteps,omitempty"`
	RemediationDifficulty string   `json:"remediationDifficulty,omitempty"`
	References            []string `json:"references,omitempty"`
	CVEIDs                []string `json:"cveIds,omitempty"`
}

// RemediationAction is derived 1:1 from an Issue once all issues are
// known.
type RemediationAction struct {
	IssueID           string   `json:"issueId"`
	Title             string   `json:"title"`
	Priority          Severity `json:"priority"`
	Steps             []string `json:"steps"`
	Resources         []string `json:"resources,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	EstimatedTime     string   `json:"estimatedTime"`
	VerificationSteps []string `json:"verificationSteps,omitempty"`
}

// RemediationPlan partitions all actions into four priority buckets.
// The buckets partition the issue set; they do not rank within a
// bucket.
type RemediationPlan struct {
	Critical []RemediationAction `json:"critical"`
	High     []RemediationAction `json:"high"`
	Medium   []RemediationAction `json:"medium"`
	Low      []RemediationAction `json:"low"`
}

// ActionCount returns the total number of actions across all buckets.
func (p RemediationPlan) ActionCount() int {
	return len(p.Critical) + len(p.High) + len(p.Medium) + len(p.Low)
}

// DetailedReport is the issue builder's output: fully described
// issues plus the prioritized remediation plan.
type DetailedReport struct {
	ClientID  string          `json:"clientId"`
	Issues    []Issue         `json:"issues"`
	Plan      RemediationPlan `json:"remediationPlan"`
	RiskScore int             `json:"riskScore"`
}
