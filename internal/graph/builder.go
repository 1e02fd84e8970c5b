package graph

import "github.com/ruby4mag/riskradar-go-backend-ui/internal/models"

// Node roles, used only for display styling
const (
	RolePrimary    = "primary"
	RoleDownstream = "downstream"
)

type Node struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// View is the renderable impact graph derived from one assessment. It is
// rebuilt from scratch on every assessment change and never stored.
type View struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// BuildImpactView derives the dependency impact graph from an assessment and
// the static dependency map. Nodes are the assessed targets (primary) plus
// the flagged downstream dependencies; a name in both keeps its primary role.
// An edge target→dependency is emitted only when the dependency is itself a
// node: the graph shows what the assessment claims is impacted, not the full
// static topology. Absent collections are treated as empty.
func BuildImpactView(assessment *models.AIAssessment, dependencies map[string][]string) View {
	view := View{Nodes: []Node{}, Edges: []Edge{}}
	if assessment == nil {
		return view
	}

	inView := make(map[string]struct{})

	for _, name := range assessment.TargetSystemsAnalyzed {
		if _, ok := inView[name]; ok {
			continue
		}
		inView[name] = struct{}{}
		view.Nodes = append(view.Nodes, Node{Name: name, Role: RolePrimary})
	}
	for _, name := range assessment.ImpactedDependencies {
		if _, ok := inView[name]; ok {
			continue
		}
		inView[name] = struct{}{}
		view.Nodes = append(view.Nodes, Node{Name: name, Role: RoleDownstream})
	}

	for _, node := range view.Nodes {
		if node.Role != RolePrimary {
			continue
		}
		target := node.Name
		for _, dep := range dependencies[target] {
			if dep == target {
				continue
			}
			if _, ok := inView[dep]; ok {
				view.Edges = append(view.Edges, Edge{Source: target, Target: dep})
			}
		}
	}

	return view
}
