package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

func TestBuildImpactViewEdgesRequireFlaggedDependency(t *testing.T) {
	deps := map[string][]string{
		"A": {"C", "D"},
		"B": {"C"},
	}
	assessment := &models.AIAssessment{
		TargetSystemsAnalyzed: []string{"A", "B"},
		ImpactedDependencies:  []string{"C"},
	}

	view := BuildImpactView(assessment, deps)

	require.Equal(t, []Node{
		{Name: "A", Role: RolePrimary},
		{Name: "B", Role: RolePrimary},
		{Name: "C", Role: RoleDownstream},
	}, view.Nodes)

	// D is a static dependency of A but the assessment never flagged it, so
	// it appears neither as a node nor as an edge endpoint
	assert.Equal(t, []Edge{
		{Source: "A", Target: "C"},
		{Source: "B", Target: "C"},
	}, view.Edges)
}

func TestBuildImpactViewPrimaryRoleWins(t *testing.T) {
	assessment := &models.AIAssessment{
		TargetSystemsAnalyzed: []string{"payment-api", "payment-api"},
		ImpactedDependencies:  []string{"payment-api", "billing-service"},
	}

	view := BuildImpactView(assessment, map[string][]string{
		"payment-api": {"billing-service"},
	})

	require.Equal(t, []Node{
		{Name: "payment-api", Role: RolePrimary},
		{Name: "billing-service", Role: RoleDownstream},
	}, view.Nodes)
	assert.Equal(t, []Edge{{Source: "payment-api", Target: "billing-service"}}, view.Edges)
}

func TestBuildImpactViewNilAssessment(t *testing.T) {
	view := BuildImpactView(nil, map[string][]string{"A": {"B"}})
	assert.Empty(t, view.Nodes)
	assert.Empty(t, view.Edges)
	// empty, not nil: the handler serializes these directly
	require.NotNil(t, view.Nodes)
	require.NotNil(t, view.Edges)
}

func TestBuildImpactViewEmptyCollections(t *testing.T) {
	view := BuildImpactView(&models.AIAssessment{}, nil)
	assert.Empty(t, view.Nodes)
	assert.Empty(t, view.Edges)
}

func TestBuildImpactViewNoSelfEdges(t *testing.T) {
	assessment := &models.AIAssessment{
		TargetSystemsAnalyzed: []string{"auth-service"},
		ImpactedDependencies:  []string{"session-cache"},
	}
	view := BuildImpactView(assessment, map[string][]string{
		"auth-service": {"auth-service", "session-cache"},
	})
	assert.Equal(t, []Edge{{Source: "auth-service", Target: "session-cache"}}, view.Edges)
}
