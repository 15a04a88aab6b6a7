package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityRank_Ordering(t *testing.T) {
	assert.Less(t, SeverityRank(SeverityCritical), SeverityRank(SeverityHigh))
	assert.Less(t, SeverityRank(SeverityHigh), SeverityRank(SeverityMedium))
	assert.Less(t, SeverityRank(SeverityMedium), SeverityRank(SeverityLow))
	assert.Equal(t, 4, SeverityRank(Severity("bogus")))
}

func TestValidSeverity(t *testing.T) {
	for _, s := range []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow} {
		assert.True(t, ValidSeverity(s), string(s))
	}
	assert.False(t, ValidSeverity(Severity("info")))
	assert.False(t, ValidSeverity(Severity("")))
}

func TestValidScanType(t *testing.T) {
	for _, s := range []ScanType{ScanQuick, ScanSystem, ScanNetwork, ScanFull} {
		assert.True(t, ValidScanType(s), string(s))
	}
	assert.False(t, ValidScanType(ScanType("deep")))
}

func TestRatingFor_Thresholds(t *testing.T) {
	assert.Equal(t, RatingGood, RatingFor(100))
	assert.Equal(t, RatingGood, RatingFor(80))
	assert.Equal(t, RatingFair, RatingFor(79))
	assert.Equal(t, RatingFair, RatingFor(50))
	assert.Equal(t, RatingPoor, RatingFor(49))
	assert.Equal(t, RatingPoor, RatingFor(0))
}

func TestIssuesBySeverity_Count(t *testing.T) {
	i := IssuesBySeverity{
		Critical: []Issue{{ID: "a"}},
		Medium:   []Issue{{ID: "b"}, {ID: "c"}},
	}
	assert.Equal(t, 3, i.Count())
	assert.Equal(t, 0, IssuesBySeverity{}.Count())
}

func TestRemediationPlan_ActionCount(t *testing.T) {
	p := RemediationPlan{
		High: []RemediationAction{{IssueID: "a"}},
		Low:  []RemediationAction{{IssueID: "b"}},
	}
	assert.Equal(t, 2, p.ActionCount())
}
