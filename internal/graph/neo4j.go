package graph

import (
	"context"
	"log"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// LoadFromNeo4j replaces the embedded dependency map and metadata with the
// service topology stored in Neo4j. If the driver is nil or the query fails
// the embedded defaults stay in place; topology is advisory, not critical.
func (t *Topology) LoadFromNeo4j(driver neo4j.DriverWithContext) {
	if driver == nil {
		log.Println("Neo4j driver is nil, keeping embedded service topology")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	session := driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: "neo4j"})
	defer session.Close(ctx)

	cypher := `
	MATCH (s:Service)
	OPTIONAL MATCH (s)-[:DEPENDS_ON]->(d:Service)
	RETURN s.name as name,
	       s.criticality_score as criticality,
	       s.avg_request_rate as rate,
	       collect(d.name) as deps
	`

	res, err := session.Run(ctx, cypher, nil)
	if err != nil {
		log.Printf("Neo4j topology query failed, keeping embedded defaults: %v", err)
		return
	}

	dependencies := map[string][]string{}
	metadata := map[string]ServiceMetadata{}

	for res.Next(ctx) {
		rec := res.Record()
		nameVal, ok := rec.Get("name")
		if !ok {
			continue
		}
		name, ok := nameVal.(string)
		if !ok || name == "" {
			continue
		}

		deps := []string{}
		if depsVal, ok := rec.Get("deps"); ok {
			if raw, ok := depsVal.([]interface{}); ok {
				for _, d := range raw {
					if s, ok := d.(string); ok && s != "" {
						deps = append(deps, s)
					}
				}
			}
		}
		dependencies[name] = deps

		meta := ServiceMetadata{}
		if critVal, ok := rec.Get("criticality"); ok {
			if crit, ok := critVal.(int64); ok {
				meta.CriticalityScore = int(crit)
			}
		}
		if rateVal, ok := rec.Get("rate"); ok {
			if rate, ok := rateVal.(string); ok {
				meta.AvgRequestRate = rate
			}
		}
		metadata[name] = meta
	}

	if len(dependencies) == 0 {
		log.Println("Neo4j returned no services, keeping embedded service topology")
		return
	}

	t.Dependencies = dependencies
	t.Metadata = metadata
	log.Printf("Loaded %d services from Neo4j topology", len(dependencies))
}
