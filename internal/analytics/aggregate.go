package analytics

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

// Fixed chart colors per known risk level, plus a fallback for anything else
var riskLevelColors = map[string]string{
	"Critical": "#dc2626",
	"High":     "#f97316",
	"Medium":   "#f59e0b",
	"Low":      "#22c55e",
}

const fallbackColor = "#94a3b8"

var knownLevelOrder = []string{"Critical", "High", "Medium", "Low"}

// ChartPoint is one slice/bar of a chart series
type ChartPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// RiskDistribution turns level→count into a chart series. Known levels come
// first in fixed order with their fixed colors; unknown labels follow
// alphabetically with the fallback color.
func RiskDistribution(counts map[string]int) []ChartPoint {
	series := []ChartPoint{}

	for _, level := range knownLevelOrder {
		if count, ok := counts[level]; ok {
			series = append(series, ChartPoint{Label: level, Value: count, Color: riskLevelColors[level]})
		}
	}

	var unknown []string
	for label := range counts {
		if _, known := riskLevelColors[label]; !known {
			unknown = append(unknown, label)
		}
	}
	sort.Strings(unknown)
	for _, label := range unknown {
		series = append(series, ChartPoint{Label: label, Value: counts[label], Color: fallbackColor})
	}

	return series
}

// ServiceCount pairs a service with its incident count. A slice keeps the
// data source's ordering, which this layer never re-sorts.
type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

// TopImpactedServices maps the given service counts onto a chart series in
// the given order
func TopImpactedServices(counts []ServiceCount) []ChartPoint {
	series := make([]ChartPoint, 0, len(counts))
	for _, sc := range counts {
		series = append(series, ChartPoint{Label: sc.Service, Value: sc.Count, Color: "#3b82f6"})
	}
	return series
}

// HistoryKPIs are the aggregates computed from the full history list. They are
// recomputed from scratch each time because the incident / completed-change
// mix can shift between fetches.
type HistoryKPIs struct {
	TotalItems         int     `json:"totalItems"`
	TotalDowntimeHours float64 `json:"totalDowntimeHours"`
	TotalRevenueImpact int     `json:"totalRevenueImpact"`
	SLABreaches        int     `json:"slaBreaches"`
}

// SummarizeHistory derives the KPI row from raw history items. Unparsable
// downtime and revenue strings count as zero.
func SummarizeHistory(items []models.HistoryItem) HistoryKPIs {
	kpis := HistoryKPIs{TotalItems: len(items)}

	for _, item := range items {
		if hours, ok := parseHours(item.Downtime); ok {
			kpis.TotalDowntimeHours += hours
		}
		if amount, ok := parseRevenue(item.RevenueImpact); ok {
			kpis.TotalRevenueImpact += amount
		}
		if item.SLABreached {
			kpis.SLABreaches++
		}
	}

	return kpis
}

var numberRe = regexp.MustCompile(`(\d+\.?\d*)`)

// parseHours extracts the first number from a free-text duration like "3.5 hours".
// The bool reports whether the string held a number at all; "0 hours" parses.
func parseHours(s string) (float64, bool) {
	match := numberRe.FindString(s)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseRevenue strips currency symbols and separators from strings like "$12,000"
func parseRevenue(s string) (int, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return v, true
}
