package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/analytics"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/db"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

const analyticsCacheKey = "analytics:summary"
const analyticsCacheTTL = 30 * time.Second

// Analytics serves the dashboard summary. The aggregate is recomputed from
// the raw change and history lists and cached briefly in Redis to keep
// dashboard polling cheap.
func Analytics(c *gin.Context) {
	if cached, err := db.RedisClient.Get(ctx, analyticsCacheKey).Result(); err == nil && cached != "" {
		var summary analytics.Summary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			c.JSON(http.StatusOK, summary)
			return
		}
	}

	changes, err := models.ListChanges()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch changes"})
		return
	}
	history, err := models.ListHistory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch risk history"})
		return
	}

	summary := analytics.BuildSummary(changes, history)

	if payload, err := json.Marshal(summary); err == nil {
		if err := db.RedisClient.Set(ctx, analyticsCacheKey, payload, analyticsCacheTTL).Err(); err != nil {
			log.Printf("Failed to cache analytics summary: %v", err)
		}
	}

	c.JSON(http.StatusOK, summary)
}

// HistoryKPIs returns the client-side KPI row computed from the full history
// list, never from a cached total
func HistoryKPIs(c *gin.Context) {
	items, err := models.ListHistory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch risk history"})
		return
	}

	c.JSON(http.StatusOK, analytics.SummarizeHistory(items))
}
