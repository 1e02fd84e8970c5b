package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/engine"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/graph"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

// Package-level wiring set from main at startup
var (
	Engine   *engine.Engine
	Topology *graph.Topology
)

func SetEngine(e *engine.Engine, t *graph.Topology) {
	Engine = e
	Topology = t
}

// ChangeOverview returns all change requests, newest change ids first
func ChangeOverview(c *gin.Context) {
	changes, err := models.ListChanges()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch changes"})
		return
	}
	if changes == nil {
		changes = []models.ChangeRequest{}
	}
	c.JSON(http.StatusOK, changes)
}

// PendingApprovals returns the changes still awaiting human disposition
func PendingApprovals(c *gin.Context) {
	changes, err := models.ListPendingApprovals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending approvals"})
		return
	}
	if changes == nil {
		changes = []models.ChangeRequest{}
	}
	c.JSON(http.StatusOK, changes)
}

// RiskHistory returns the combined incident + completed-change history,
// newest first
func RiskHistory(c *gin.Context) {
	items, err := models.ListHistory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch risk history"})
		return
	}
	if items == nil {
		items = []models.HistoryItem{}
	}
	c.JSON(http.StatusOK, items)
}

// ToolsData serves the static collaborators the rendering surface needs:
// the dependency adjacency map, aliases and per-service metadata
func ToolsData(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service_dependencies": Topology.Dependencies,
		"service_aliases":      Topology.Aliases,
		"service_metadata":     Topology.Metadata,
	})
}

// ImpactGraph derives the renderable dependency graph from the current
// assessment. No assessment yet means an empty graph, not an error.
func ImpactGraph(c *gin.Context) {
	view := graph.BuildImpactView(Engine.CurrentAssessment(), Topology.Dependencies)
	c.JSON(http.StatusOK, view)
}

// ServiceMetadata looks up the auxiliary details shown when a graph node is
// selected. An unknown service is a miss, not an error.
func ServiceMetadata(c *gin.Context) {
	name := c.Param("name")
	meta, ok := Topology.Lookup(name)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "service": Topology.Normalize(name), "metadata": meta})
}
