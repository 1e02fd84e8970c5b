package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

func baseAssessment() models.AIAssessment {
	return models.AIAssessment{
		ChangeID:              "CHG-AI-1700000000",
		RiskScore:             72.5,
		RiskLevel:             "HIGH",
		Summary:               "Schema migration on the primary billing path",
		Recommendations:       []string{"Run during low traffic", "Prepare rollback script"},
		TechnicalSummary:      "Alters three indexed columns",
		DependencySummary:     "billing-service and invoice-store are downstream",
		BusinessSummary:       "Invoices may be delayed during the window",
		TargetSystemsAnalyzed: []string{"payment-api"},
		ImpactedDependencies:  []string{"billing-service", "invoice-store"},
		BusinessImpactTimeline: []models.TimelineEvent{
			{Date: "2025-03-14", Event: "Invoice generation paused", Level: "High"},
		},
		ScheduledTime: "2025-03-14T16:30",
	}
}

func TestMergeBusinessImpactReplacesOnlyBusinessFields(t *testing.T) {
	existing := baseAssessment()
	partial := models.BusinessImpact{
		BusinessImpactLevel:      "Low",
		OverallBusinessRiskScore: 20,
		BusinessImpactTimeline: []models.TimelineEvent{
			{Date: "2025-03-14", Event: "Negligible off-hours impact", Level: "Low"},
		},
		BusinessSummary: "Minimal impact at 03:00",
	}

	merged := MergeBusinessImpact(existing, partial)

	require.Equal(t, partial.BusinessImpactTimeline, merged.BusinessImpactTimeline)
	require.Equal(t, "Minimal impact at 03:00", merged.BusinessSummary)

	// everything outside the business fields is carried over unchanged
	require.Equal(t, existing.RiskScore, merged.RiskScore)
	require.Equal(t, existing.RiskLevel, merged.RiskLevel)
	require.Equal(t, existing.Summary, merged.Summary)
	require.Equal(t, existing.Recommendations, merged.Recommendations)
	require.Equal(t, existing.TechnicalSummary, merged.TechnicalSummary)
	require.Equal(t, existing.DependencySummary, merged.DependencySummary)
	require.Equal(t, existing.TargetSystemsAnalyzed, merged.TargetSystemsAnalyzed)
	require.Equal(t, existing.ImpactedDependencies, merged.ImpactedDependencies)
	require.Equal(t, existing.ScheduledTime, merged.ScheduledTime)
}

func TestMergeBusinessImpactMissingFieldsLeaveExisting(t *testing.T) {
	existing := baseAssessment()

	merged := MergeBusinessImpact(existing, models.BusinessImpact{BusinessImpactLevel: "Medium"})

	require.Equal(t, existing.BusinessImpactTimeline, merged.BusinessImpactTimeline)
	require.Equal(t, existing.BusinessSummary, merged.BusinessSummary)
	require.Equal(t, existing, merged)
}

func TestMergeBusinessImpactDoesNotMutateInput(t *testing.T) {
	existing := baseAssessment()
	want := baseAssessment()

	_ = MergeBusinessImpact(existing, models.BusinessImpact{
		BusinessImpactTimeline: []models.TimelineEvent{{Date: "2025-03-14", Event: "x", Level: "Low"}},
		BusinessSummary:        "replaced",
	})

	require.Equal(t, want, existing)
}
