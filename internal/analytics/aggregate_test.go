package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

func TestSummarizeHistory(t *testing.T) {
	items := []models.HistoryItem{
		{Type: models.HistoryIncident, Downtime: "3 hours", RevenueImpact: "$1,000", SLABreached: true},
		{Type: models.HistoryIncident, Downtime: "1.5 hrs", RevenueImpact: "$2,500"},
		{Type: models.HistoryIncident, Downtime: "bad-data", RevenueImpact: "unknown", SLABreached: true},
	}

	kpis := SummarizeHistory(items)

	assert.Equal(t, 3, kpis.TotalItems)
	assert.InDelta(t, 4.5, kpis.TotalDowntimeHours, 0.001)
	assert.Equal(t, 3500, kpis.TotalRevenueImpact)
	assert.Equal(t, 2, kpis.SLABreaches)
}

func TestSummarizeHistoryEmpty(t *testing.T) {
	kpis := SummarizeHistory(nil)
	assert.Equal(t, HistoryKPIs{}, kpis)
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3 hours", 3, true},
		{"1.5 hrs", 1.5, true},
		{"approx 2.25h", 2.25, true},
		{"45 minutes of downtime", 45, true},
		{"0 hours", 0, true},
		{"none", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := parseHours(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.InDelta(t, tc.want, got, 0.001, "input %q", tc.in)
	}
}

func TestParseRevenue(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"$1,000", 1000, true},
		{"$2,500", 2500, true},
		{"12000", 12000, true},
		{"$ 750", 750, true},
		{"$0", 0, true},
		{"N/A", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := parseRevenue(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestRiskDistributionOrderAndColors(t *testing.T) {
	series := RiskDistribution(map[string]int{
		"Low":      4,
		"Critical": 1,
		"High":     2,
		"Weird":    7,
		"Absurd":   3,
	})

	require.Equal(t, []ChartPoint{
		{Label: "Critical", Value: 1, Color: "#dc2626"},
		{Label: "High", Value: 2, Color: "#f97316"},
		{Label: "Low", Value: 4, Color: "#22c55e"},
		{Label: "Absurd", Value: 3, Color: "#94a3b8"},
		{Label: "Weird", Value: 7, Color: "#94a3b8"},
	}, series)
}

func TestRiskDistributionEmpty(t *testing.T) {
	series := RiskDistribution(map[string]int{})
	assert.Empty(t, series)
	require.NotNil(t, series)
}

func TestTopImpactedServicesPreservesOrder(t *testing.T) {
	series := TopImpactedServices([]ServiceCount{
		{Service: "payment-api", Count: 9},
		{Service: "user-database", Count: 9},
		{Service: "session-cache", Count: 2},
	})

	require.Len(t, series, 3)
	assert.Equal(t, "payment-api", series[0].Label)
	assert.Equal(t, "user-database", series[1].Label)
	assert.Equal(t, "session-cache", series[2].Label)
	for _, p := range series {
		assert.Equal(t, "#3b82f6", p.Color)
	}
}
