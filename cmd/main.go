package main

import (
	"os"
	"time"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/ai"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/auth"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/db"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/engine"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/graph"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/handlers"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/notify"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	riskServiceURL := os.Getenv("RISK_SERVICE_URL")
	if riskServiceURL == "" {
		riskServiceURL = "http://localhost:8000/api"
	}
	ai.InitAI(riskServiceURL)
	notify.InitEmail()

	if neo4jURI := os.Getenv("NEO4J_URI"); neo4jURI != "" {
		db.InitNeo4j(neo4jURI, os.Getenv("NEO4J_USER"), os.Getenv("NEO4J_PASSWORD"))
	}

	topology := graph.DefaultTopology()
	topology.LoadFromNeo4j(db.GetNeo4jDriver())

	eng := engine.New(engine.Deps{
		AssessRisk:     ai.AssessRisk,
		ReassessImpact: ai.ReassessBusinessImpact,
		SaveChange:     models.InsertChange,
		SetDisposition: models.SetChangeDisposition,
		AppendHistory:  models.AppendHistoryItem,
		FindChange:     models.FindChangeByID,
		SendEmail:      notify.SendHighRiskNotification,
		FetchOverview:  models.ListChanges,
		FetchPending:   models.ListPendingApprovals,
	})
	handlers.SetEngine(eng, topology)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "X-Requested-With", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.POST("/refresh", handlers.RefreshToken)

	protected := r.Group("/api")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/permissions", handlers.GetPermissions)

		protected.GET("/tools_data", handlers.ToolsData)
		protected.GET("/change_overview", handlers.ChangeOverview)
		protected.GET("/pending_approvals", handlers.PendingApprovals)
		protected.GET("/risk_history", handlers.RiskHistory)
		protected.GET("/history_kpis", handlers.HistoryKPIs)
		protected.GET("/analytics", handlers.Analytics)

		protected.POST("/assess_risk", handlers.AssessRisk)
		protected.POST("/approve_change/:change_id", handlers.ApproveChange)
		protected.POST("/reject_change/:change_id", handlers.RejectChange)
		protected.POST("/reassess_business_impact", handlers.ReassessBusinessImpact)
		protected.POST("/suggest_postmortem", handlers.SuggestPostmortem)
		protected.POST("/send_email_notification", handlers.SendEmailNotification)

		protected.GET("/impact_graph", handlers.ImpactGraph)
		protected.GET("/service_metadata/:name", handlers.ServiceMetadata)

		protected.GET("/notices", handlers.Notices)
		protected.POST("/notices/:id/dismiss", handlers.DismissNotice)
	}

	r.Run(":8080")
}
