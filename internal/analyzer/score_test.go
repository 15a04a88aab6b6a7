package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

func TestOverallScore_SelfWeightedAverage(t *testing.T) {
	tests := []struct {
		name       string
		categories map[string]int
		want       int
	}{
		{"empty map", map[string]int{}, 0},
		{"all zero", map[string]int{"a": 0, "b": 0}, 0},
		{"single category", map[string]int{"network": 25}, 25},
		{"equal categories", map[string]int{"a": 40, "b": 40}, 40},
		// (80² + 20²) / (80 + 20) = 6800/100 = 68 — the worst
		// category dominates a plain average of 50.
		{"worst dominates", map[string]int{"a": 80, "b": 20}, 68},
		// (90² + 10² + 10²) / 110 = 8300/110 = 75.45 → 75
		{"rounding", map[string]int{"a": 90, "b": 10, "c": 10}, 75},
		{"negative ignored", map[string]int{"a": -5, "b": 30}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverallScore(tt.categories))
		})
	}
}

func TestRiskLevel_Boundaries(t *testing.T) {
	assert.Equal(t, types.RiskLow, RiskLevel(0))
	assert.Equal(t, types.RiskLow, RiskLevel(39))
	assert.Equal(t, types.RiskMedium, RiskLevel(40))
	assert.Equal(t, types.RiskMedium, RiskLevel(74))
	assert.Equal(t, types.RiskHigh, RiskLevel(75))
	assert.Equal(t, types.RiskHigh, RiskLevel(100))
}

func TestDedupeRecommendations(t *testing.T) {
	in := []string{
		"Enable the firewall",
		"enable the firewall",
		"Install updates",
		"ENABLE THE FIREWALL",
		"Install updates",
	}

	out := dedupeRecommendations(in)
	assert.Equal(t, []string{"Enable the firewall", "Install updates"}, out)

	// Idempotent: deduping twice equals deduping once.
	assert.Equal(t, out, dedupeRecommendations(out))
}

func TestClamp100(t *testing.T) {
	assert.Equal(t, 100, clamp100(250))
	assert.Equal(t, 0, clamp100(-3))
	assert.Equal(t, 42, clamp100(42))
}
