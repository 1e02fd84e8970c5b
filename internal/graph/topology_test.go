package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	topo := DefaultTopology()

	tests := []struct {
		in   string
		want string
	}{
		{"payment-api", "payment-api"},
		{"Payment Api", "payment-api"},
		{"paymentgateway", "payment-api"},
		{"database server", "Database Server"},
		{"API GATEWAY", "API Gateway"},
		{"AUTH-SERVICE", "auth-service"},
		{"totally-unknown-service", "totally-unknown-service"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, topo.Normalize(tc.in), "input %q", tc.in)
	}
}

func TestLookup(t *testing.T) {
	topo := DefaultTopology()

	meta, ok := topo.Lookup("payment api")
	require.True(t, ok)
	assert.Equal(t, 92, meta.CriticalityScore)
	assert.Equal(t, "3k req/min", meta.AvgRequestRate)

	_, ok = topo.Lookup("no-such-service")
	assert.False(t, ok)
}

func TestDownstreamIsTransitiveAndExcludesTargets(t *testing.T) {
	topo := &Topology{
		Dependencies: map[string][]string{
			"A": {"B", "C"},
			"B": {"D"},
			"C": {},
			"D": {"A"},
		},
		Aliases: map[string]string{},
	}

	got := topo.Downstream([]string{"A"})
	// first-seen order from the walk, the target itself never listed
	assert.Equal(t, []string{"B", "D", "C"}, got)
}

func TestDownstreamMultipleTargetsDeduplicates(t *testing.T) {
	topo := DefaultTopology()

	got := topo.Downstream([]string{"payment-api", "billing-service"})
	assert.Equal(t, []string{"user-database", "fraud-detection", "invoice-store"}, got)
}

func TestAllInvolvedTargetsFirst(t *testing.T) {
	topo := DefaultTopology()

	got := topo.AllInvolved([]string{"billing service"})
	assert.Equal(t, []string{"billing-service", "user-database", "invoice-store"}, got)
}

func TestDownstreamUnknownTarget(t *testing.T) {
	topo := DefaultTopology()
	assert.Empty(t, topo.Downstream([]string{"mystery-box"}))
}
