package engine

import "github.com/ruby4mag/riskradar-go-backend-ui/internal/models"

// MergeBusinessImpact folds a partial reassessment result into an existing
// assessment. Only the business impact timeline and business summary are
// replaced; a missing field in the partial result leaves the existing value
// untouched. Everything else carries over unchanged.
func MergeBusinessImpact(existing models.AIAssessment, partial models.BusinessImpact) models.AIAssessment {
	merged := existing

	if partial.BusinessImpactTimeline != nil {
		merged.BusinessImpactTimeline = partial.BusinessImpactTimeline
	}
	if partial.BusinessSummary != "" {
		merged.BusinessSummary = partial.BusinessSummary
	}

	return merged
}
