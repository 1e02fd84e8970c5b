package graph

import "strings"

// ServiceMetadata is the read-only per-service lookup used when a graph node
// is selected in the UI
type ServiceMetadata struct {
	CriticalityScore int    `json:"criticalityScore"`
	AvgRequestRate   string `json:"avgRequestRate"`
}

// Topology is the static service dependency map plus per-service metadata.
// It is read-only to this backend; the default set ships embedded and can be
// replaced wholesale by a Neo4j-backed load at startup.
type Topology struct {
	Dependencies map[string][]string        `json:"dependencies"`
	Aliases      map[string]string          `json:"aliases"`
	Metadata     map[string]ServiceMetadata `json:"metadata"`
}

// DefaultTopology is the embedded service landscape used when no topology
// database is configured
func DefaultTopology() *Topology {
	return &Topology{
		Dependencies: map[string][]string{
			"API Gateway":          {"auth-service", "payment-api", "user-database"},
			"auth-service":         {"user-database", "session-cache"},
			"payment-api":          {"billing-service", "user-database", "fraud-detection"},
			"billing-service":      {"user-database", "invoice-store"},
			"checkout-ui":          {"API Gateway", "payment-api"},
			"user-database":        {},
			"session-cache":        {},
			"fraud-detection":      {"user-database"},
			"invoice-store":        {},
			"Database Server":      {"storage-backend"},
			"storage-backend":      {},
			"notification-service": {"session-cache"},
		},
		Aliases: map[string]string{
			"database server": "Database Server",
			"api gateway":     "API Gateway",
			"authservice":     "auth-service",
			"paymentgateway":  "payment-api",
			"user database":   "user-database",
			"billing service": "billing-service",
			"checkout ui":     "checkout-ui",
			"payment api":     "payment-api",
			"auth service":    "auth-service",
		},
		Metadata: map[string]ServiceMetadata{
			"API Gateway":          {CriticalityScore: 95, AvgRequestRate: "12k req/min"},
			"auth-service":         {CriticalityScore: 90, AvgRequestRate: "8k req/min"},
			"payment-api":          {CriticalityScore: 92, AvgRequestRate: "3k req/min"},
			"billing-service":      {CriticalityScore: 80, AvgRequestRate: "900 req/min"},
			"checkout-ui":          {CriticalityScore: 85, AvgRequestRate: "5k req/min"},
			"user-database":        {CriticalityScore: 98, AvgRequestRate: "20k req/min"},
			"session-cache":        {CriticalityScore: 70, AvgRequestRate: "30k req/min"},
			"fraud-detection":      {CriticalityScore: 75, AvgRequestRate: "2k req/min"},
			"invoice-store":        {CriticalityScore: 60, AvgRequestRate: "300 req/min"},
			"Database Server":      {CriticalityScore: 97, AvgRequestRate: "15k req/min"},
			"storage-backend":      {CriticalityScore: 88, AvgRequestRate: "6k req/min"},
			"notification-service": {CriticalityScore: 55, AvgRequestRate: "1k req/min"},
		},
	}
}

// Normalize maps a user-entered service name onto the known service list via
// the alias table, then exact and case-insensitive matching. Unknown names
// come back unchanged.
func (t *Topology) Normalize(name string) string {
	if name == "" {
		return name
	}

	candidate := name
	if aliased, ok := t.Aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		candidate = aliased
	}

	if _, ok := t.Dependencies[candidate]; ok {
		return candidate
	}
	for known := range t.Dependencies {
		if strings.EqualFold(known, candidate) {
			return known
		}
	}
	return candidate
}

// Lookup returns the metadata for a service, if any. A miss is a no-op for
// callers, not an error.
func (t *Topology) Lookup(name string) (ServiceMetadata, bool) {
	meta, ok := t.Metadata[t.Normalize(name)]
	return meta, ok
}

// Downstream walks the dependency map transitively from the given targets and
// returns every reachable service that is not itself a target, in first-seen
// order.
func (t *Topology) Downstream(targets []string) []string {
	targetSet := make(map[string]struct{}, len(targets))
	normalized := make([]string, 0, len(targets))
	for _, s := range targets {
		n := t.Normalize(s)
		if _, ok := targetSet[n]; !ok {
			targetSet[n] = struct{}{}
			normalized = append(normalized, n)
		}
	}

	seen := make(map[string]struct{})
	var impacted []string

	var walk func(name string)
	walk = func(name string) {
		for _, dep := range t.Dependencies[name] {
			n := t.Normalize(dep)
			if _, isTarget := targetSet[n]; isTarget {
				continue
			}
			if _, done := seen[n]; done {
				continue
			}
			seen[n] = struct{}{}
			impacted = append(impacted, n)
			walk(n)
		}
	}

	for _, target := range normalized {
		walk(target)
	}
	return impacted
}

// AllInvolved is the union of the normalized targets and their transitive
// downstream dependencies, targets first
func (t *Topology) AllInvolved(targets []string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, s := range targets {
		n := t.Normalize(s)
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	for _, s := range t.Downstream(targets) {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
