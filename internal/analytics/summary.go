package analytics

import (
	"math"
	"sort"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

// Summary is the dashboard payload: headline KPIs plus chart-ready series
type Summary struct {
	KPIs   SummaryKPIs   `json:"kpis"`
	Charts SummaryCharts `json:"charts"`
}

type SummaryKPIs struct {
	TotalIncidents          int     `json:"total_incidents"`
	TotalHighRiskChanges    int     `json:"total_high_risk_changes"`
	AverageIncidentDowntime float64 `json:"average_incident_downtime"`
	AverageRevenueImpact    int     `json:"average_revenue_impact"`
	AIApprovalRate          float64 `json:"ai_approval_rate"`
}

type SummaryCharts struct {
	ChangeRiskDistribution []ChartPoint `json:"change_risk_distribution"`
	TopImpactedServices    []ChartPoint `json:"top_5_impacted_services"`
}

// BuildSummary aggregates the full change list and risk history into the
// dashboard payload. Everything is recomputed from the raw lists on each call.
func BuildSummary(changes []models.ChangeRequest, history []models.HistoryItem) Summary {
	highRisk := 0
	aiAssessed := 0
	aiApproved := 0
	distribution := map[string]int{}
	serviceImpact := map[string]int{}
	serviceOrder := []string{}

	for _, change := range changes {
		switch change.RiskLevel {
		case "High", "Critical", "HIGH", "CRITICAL":
			highRisk++
		}
		if change.RiskLevel != "" {
			distribution[change.RiskLevel]++
		}
		if change.SubmittedBy == "You (AI Assessed)" {
			aiAssessed++
			if change.Status == models.StatusApproved {
				aiApproved++
			}
		}
		if change.Assessment != nil {
			for _, svc := range change.Assessment.TargetSystemsAnalyzed {
				if _, seen := serviceImpact[svc]; !seen {
					serviceOrder = append(serviceOrder, svc)
				}
				serviceImpact[svc]++
			}
			for _, svc := range change.Assessment.ImpactedDependencies {
				if _, seen := serviceImpact[svc]; !seen {
					serviceOrder = append(serviceOrder, svc)
				}
				serviceImpact[svc]++
			}
		}
	}

	downtimeSum, downtimeCount := 0.0, 0
	revenueSum, revenueCount := 0, 0
	for _, item := range history {
		if item.Type != models.HistoryIncident {
			continue
		}
		// any parsable row enters the average, a zero value included
		if hours, ok := parseHours(item.Downtime); ok {
			downtimeSum += hours
			downtimeCount++
		}
		if amount, ok := parseRevenue(item.RevenueImpact); ok {
			revenueSum += amount
			revenueCount++
		}
	}

	avgDowntime := 0.0
	if downtimeCount > 0 {
		avgDowntime = math.Round(downtimeSum/float64(downtimeCount)*10) / 10
	}
	avgRevenue := 0
	if revenueCount > 0 {
		avgRevenue = revenueSum / revenueCount
	}
	approvalRate := 0.0
	if aiAssessed > 0 {
		approvalRate = math.Round(float64(aiApproved)/float64(aiAssessed)*1000) / 10
	}

	// top five by count, stable on first-seen order for ties
	sort.SliceStable(serviceOrder, func(i, j int) bool {
		return serviceImpact[serviceOrder[i]] > serviceImpact[serviceOrder[j]]
	})
	topServices := []ServiceCount{}
	for _, svc := range serviceOrder {
		if len(topServices) == 5 {
			break
		}
		topServices = append(topServices, ServiceCount{Service: svc, Count: serviceImpact[svc]})
	}

	return Summary{
		KPIs: SummaryKPIs{
			TotalIncidents:          len(history),
			TotalHighRiskChanges:    highRisk,
			AverageIncidentDowntime: avgDowntime,
			AverageRevenueImpact:    avgRevenue,
			AIApprovalRate:          approvalRate,
		},
		Charts: SummaryCharts{
			ChangeRiskDistribution: RiskDistribution(distribution),
			TopImpactedServices:    TopImpactedServices(topServices),
		},
	}
}
