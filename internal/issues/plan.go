package issues

import "github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"

// buildPlan derives one RemediationAction per issue and partitions
// the actions into the four priority buckets. The buckets partition
// the issue set by severity; no cross-issue deduplication or
// dependency ordering is performed.
func buildPlan(issues []types.Issue) types.RemediationPlan {
	var plan types.RemediationPlan

	for _, is := range issues {
		info := catalogFor(is.Category)
		action := types.RemediationAction{
			IssueID:           is.ID,
			Title:             is.Title,
			Priority:          is.Severity,
			Steps:             is.RemediationSteps,
			Resources:         info.resources,
			Notes:             info.additionalNotes,
			EstimatedTime:     estimatedTimeFor(is.RemediationDifficulty),
			VerificationSteps: info.verification,
		}

		switch is.Severity {
		case types.SeverityCritical:
			plan.Critical = append(plan.Critical, action)
		case types.SeverityHigh:
			plan.High = append(plan.High, action)
		case types.SeverityMedium:
			plan.Medium = append(plan.Medium, action)
		default:
			plan.Low = append(plan.Low, action)
		}
	}

	return plan
}

// linearRiskScore is the issue builder's scoring model: a linear
// weighted sum capped at 100. It intentionally differs from the
// analyzer's self-weighted average; both are reported side by side.
func linearRiskScore(issues []types.Issue) int {
	score := 0
	for _, is := range issues {
		switch is.Severity {
		case types.SeverityCritical:
			score += 25
		case types.SeverityHigh:
			score += 10
		case types.SeverityMedium:
			score += 5
		default:
			score++
		}
	}
	if score > 100 {
		return 100
	}
	return score
}
