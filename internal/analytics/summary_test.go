package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

func TestBuildSummaryKPIs(t *testing.T) {
	changes := []models.ChangeRequest{
		{RiskLevel: "HIGH", SubmittedBy: "You (AI Assessed)", Status: models.StatusApproved},
		{RiskLevel: "Critical", SubmittedBy: "You (AI Assessed)", Status: models.StatusRejected},
		{RiskLevel: "Low", SubmittedBy: "You (AI Assessed)", Status: models.StatusApproved},
		{RiskLevel: "Medium", SubmittedBy: "Jordan Smith"},
	}
	history := []models.HistoryItem{
		{Type: models.HistoryIncident, Downtime: "3 hours", RevenueImpact: "$12,000"},
		{Type: models.HistoryIncident, Downtime: "1 hour", RevenueImpact: "$4,000"},
		{Type: models.HistoryIncident, Downtime: "unclear", RevenueImpact: ""},
		{Type: models.HistoryCompletedChange, Status: "Approved"},
	}

	summary := BuildSummary(changes, history)

	assert.Equal(t, 4, summary.KPIs.TotalIncidents)
	assert.Equal(t, 2, summary.KPIs.TotalHighRiskChanges)
	// only parsable incident rows enter the averages
	assert.InDelta(t, 2.0, summary.KPIs.AverageIncidentDowntime, 0.001)
	assert.Equal(t, 8000, summary.KPIs.AverageRevenueImpact)
	// 2 of 3 AI-assessed changes approved
	assert.InDelta(t, 66.7, summary.KPIs.AIApprovalRate, 0.001)
}

func TestBuildSummaryAveragesIncludeZeroRows(t *testing.T) {
	history := []models.HistoryItem{
		{Type: models.HistoryIncident, Downtime: "2 hours", RevenueImpact: "$1,000"},
		{Type: models.HistoryIncident, Downtime: "0 hours", RevenueImpact: "$0"},
	}

	summary := BuildSummary(nil, history)

	// zero-valued rows still parse and enter the denominators
	assert.InDelta(t, 1.0, summary.KPIs.AverageIncidentDowntime, 0.001)
	assert.Equal(t, 500, summary.KPIs.AverageRevenueImpact)
}

func TestBuildSummaryApprovalRateWithoutAIChanges(t *testing.T) {
	summary := BuildSummary([]models.ChangeRequest{
		{RiskLevel: "Low", SubmittedBy: "Jordan Smith", Status: models.StatusApproved},
	}, nil)

	assert.Zero(t, summary.KPIs.AIApprovalRate)
	assert.Zero(t, summary.KPIs.AverageIncidentDowntime)
	assert.Zero(t, summary.KPIs.AverageRevenueImpact)
}

func TestBuildSummaryTopServicesCapAndTies(t *testing.T) {
	assess := func(targets, deps []string) *models.AIAssessment {
		return &models.AIAssessment{TargetSystemsAnalyzed: targets, ImpactedDependencies: deps}
	}
	changes := []models.ChangeRequest{
		{RiskLevel: "Low", Assessment: assess([]string{"a", "b"}, []string{"c"})},
		{RiskLevel: "Low", Assessment: assess([]string{"a"}, []string{"d", "e", "f"})},
		{RiskLevel: "Low", Assessment: assess([]string{"b"}, nil)},
	}

	summary := BuildSummary(changes, nil)

	series := summary.Charts.TopImpactedServices
	require.Len(t, series, 5)
	assert.Equal(t, "a", series[0].Label)
	assert.Equal(t, 2, series[0].Value)
	// b ties with a on count but was seen later
	assert.Equal(t, "b", series[1].Label)
	assert.Equal(t, 2, series[1].Value)
	// the remaining singles keep first-seen order, f falls off the top five
	assert.Equal(t, "c", series[2].Label)
	assert.Equal(t, "d", series[3].Label)
	assert.Equal(t, "e", series[4].Label)
}

func TestBuildSummaryRiskDistributionChart(t *testing.T) {
	changes := []models.ChangeRequest{
		{RiskLevel: "High"},
		{RiskLevel: "High"},
		{RiskLevel: "Low"},
		{RiskLevel: ""},
	}

	summary := BuildSummary(changes, nil)

	require.Equal(t, []ChartPoint{
		{Label: "High", Value: 2, Color: "#f97316"},
		{Label: "Low", Value: 1, Color: "#22c55e"},
	}, summary.Charts.ChangeRiskDistribution)
}
