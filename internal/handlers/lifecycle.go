package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/ai"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/engine"
	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

func statusForEngineError(err error) int {
	if engine.IsValidation(err) {
		return http.StatusBadRequest
	}
	if errors.Is(err, engine.ErrBusy) {
		return http.StatusConflict
	}
	return http.StatusBadGateway
}

// AssessRisk submits a new change for AI risk assessment
func AssessRisk(c *gin.Context) {
	var input models.SubmitChangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assessment, err := Engine.Submit(input)
	if err != nil {
		c.JSON(statusForEngineError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "ai_assessment": assessment})
}

// ApproveChange records the human approval disposition
func ApproveChange(c *gin.Context) {
	changeID := c.Param("change_id")

	if err := Engine.Approve(changeID); err != nil {
		c.JSON(statusForEngineError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// RejectChange records the human rejection with reason and feedback type
func RejectChange(c *gin.Context) {
	changeID := c.Param("change_id")

	var request struct {
		Reason       string `json:"reason"`
		FeedbackType string `json:"feedbackType"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Engine.OpenRejection(changeID)
	if err := Engine.Reject(request.Reason, request.FeedbackType); err != nil {
		c.JSON(statusForEngineError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ReassessBusinessImpact re-scores the current assessment at the alternate
// 03:00 window and returns the merged assessment
func ReassessBusinessImpact(c *gin.Context) {
	merged, err := Engine.RequestReassessment()
	if err != nil {
		c.JSON(statusForEngineError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "ai_assessment": merged})
}

// SendEmailNotification emails an assessed change to a stakeholder
func SendEmailNotification(c *gin.Context) {
	var request struct {
		ChangeID       string `json:"change_id"`
		RecipientEmail string `json:"recipient_email"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Engine.SendNotification(request.ChangeID, request.RecipientEmail); err != nil {
		c.JSON(statusForEngineError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Email notification sent to " + request.RecipientEmail})
}

// SuggestPostmortem asks the risk service for preventative measures for a
// past incident. A service failure degrades to a manual-review hint, matching
// the UI expectation that this endpoint never hard-fails.
func SuggestPostmortem(c *gin.Context) {
	var request struct {
		Title     string `json:"title"`
		RootCause string `json:"root_cause"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	measures, err := ai.SuggestPostmortem(request.Title, request.RootCause)
	if err != nil || len(measures) == 0 {
		measures = []string{"AI analysis failed. Please review manually."}
	}

	c.JSON(http.StatusOK, gin.H{"preventative_measures": measures})
}

// Notices returns the active transient alerts with their visible counter
func Notices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"alerts": Engine.Alerts.Active(),
		"count":  Engine.Alerts.Count(),
	})
}

// DismissNotice removes an alert ahead of its expiry
func DismissNotice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert id"})
		return
	}

	Engine.Alerts.Dismiss(id)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
