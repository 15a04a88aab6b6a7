package issues

import "github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"

// Remediation difficulty labels, assigned from severity.
const (
	DifficultyHigh       = "High"
	DifficultyMediumHigh = "Medium-High"
	DifficultyMedium     = "Medium"
	DifficultyLowMedium  = "Low-Medium"
)

// difficultyFor maps issue severity onto remediation difficulty.
func difficultyFor(sev types.Severity) string {
	switch sev {
	case types.SeverityCritical:
		return DifficultyHigh
	case types.SeverityHigh:
		return DifficultyMediumHigh
	case types.SeverityMedium:
		return DifficultyMedium
	default:
		return DifficultyLowMedium
	}
}

// estimatedTimeFor maps remediation difficulty onto an effort
// estimate used on the remediation action.
func estimatedTimeFor(difficulty string) string {
	switch difficulty {
	case DifficultyHigh:
		return "4-8 hours"
	case DifficultyMediumHigh:
		return "2-4 hours"
	case DifficultyMedium:
		return "1-2 hours"
	default:
		return "30-60 minutes"
	}
}

// newIssue is the single constructor every sub-processor goes
// through. It assigns the ID, derives the remediation difficulty from
// severity, and attaches the category's reference material plus one
// NVD link per CVE.
func (b *Builder) newIssue(sev types.Severity, category, title, description, impact, location, recommendation string, steps []string, cveIDs []string) types.Issue {
	info := catalogFor(category)

	refs := make([]string, 0, len(info.resources)+len(cveIDs))
	refs = append(refs, info.resources...)
	for _, cve := range cveIDs {
		refs = append(refs, nvdLink(cve))
	}

	return types.Issue{
		ID:                    b.newID(),
		Title:                 title,
		Description:           description,
		Impact:                impact,
		Severity:              sev,
		Category:              category,
		Location:              location,
		Recommendation:        recommendation,
		RemediationSteps:      steps,
		RemediationDifficulty: difficultyFor(sev),
		References:            refs,
		CVEIDs:                cveIDs,
	}
}
