package models

// TimelineEvent is a single entry in the business impact timeline
type TimelineEvent struct {
	Date  string `bson:"date" json:"date"`
	Event string `bson:"event" json:"event"`
	Level string `bson:"level" json:"level"`
}

// AIAssessment is the structured result returned by the risk service for one change.
// Apart from the business impact fields (replaced on reassessment) every field is
// write-once: the risk service owns risk_level and this backend never recomputes it.
type AIAssessment struct {
	ChangeID               string             `bson:"change_id" json:"changeId"`
	RiskScore              float64            `bson:"risk_score" json:"risk_score"`
	RiskLevel              string             `bson:"risk_level" json:"risk_level"`
	Summary                string             `bson:"summary" json:"summary"`
	Recommendations        []string           `bson:"recommendations" json:"recommendations"`
	Confidence             *float64           `bson:"confidence,omitempty" json:"confidence,omitempty"`
	Critique               string             `bson:"critique,omitempty" json:"critique,omitempty"`
	TechnicalSummary       string             `bson:"technical_summary" json:"technical_summary"`
	DependencySummary      string             `bson:"dependency_summary" json:"dependency_summary"`
	BusinessSummary        string             `bson:"business_summary" json:"business_summary"`
	TargetSystemsAnalyzed  []string           `bson:"target_systems_analyzed" json:"target_systems_analyzed"`
	ImpactedDependencies   []string           `bson:"impacted_dependencies" json:"impacted_dependencies"`
	BusinessImpactTimeline []TimelineEvent    `bson:"business_impact_timeline" json:"business_impact_timeline"`
	ScheduledTime          string             `bson:"scheduled_time" json:"scheduledTime"`
	RawAgentScores         map[string]float64 `bson:"raw_agent_scores,omitempty" json:"raw_agent_scores,omitempty"`
}

// BusinessImpact is the partial result of a business-impact reassessment.
// Nil slices / empty strings mean the field was absent in the response.
type BusinessImpact struct {
	BusinessImpactLevel      string          `json:"business_impact_level"`
	OverallBusinessRiskScore float64         `json:"overall_business_risk_score"`
	BusinessImpactTimeline   []TimelineEvent `json:"business_impact_timeline"`
	BusinessSummary          string          `json:"business_summary"`
}
