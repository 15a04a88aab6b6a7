package analyzer

import (
	"math"
	"strings"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// OverallScore computes the self-weighted average round(Σs²/Σs) over
// all positive category scores. The quadratic numerator lets the
// single worst category dominate the result. All-zero or empty input
// yields 0.
func OverallScore(categories map[string]int) int {
	var sum, sumSq int
	for _, s := range categories {
		if s <= 0 {
			continue
		}
		sum += s
		sumSq += s * s
	}
	if sum == 0 {
		return 0
	}
	return int(math.Round(float64(sumSq) / float64(sum)))
}

// RiskLevel maps an overall score onto a risk level: 75 and above is
// high, 40 and above is medium, everything below is low.
func RiskLevel(overall int) string {
	switch {
	case overall >= 75:
		return types.RiskHigh
	case overall >= 40:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}

func clamp100(n int) int {
	if n > 100 {
		return 100
	}
	if n < 0 {
		return 0
	}
	return n
}

// dedupeRecommendations removes duplicate recommendations by
// case-insensitive exact text match, keeping first occurrences in
// order. Running it twice yields the same list as running it once.
func dedupeRecommendations(recs []string) []string {
	seen := make(map[string]bool, len(recs))
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		key := strings.ToLower(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
