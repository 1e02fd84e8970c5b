package models

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/db"
)

var ErrChangeNotFound = errors.New("change not found")

// History item variants
const (
	HistoryIncident        = "incident"
	HistoryCompletedChange = "completed_change"
)

// HistoryItem is one entry in the combined risk history: either a past incident
// or a completed (approved/rejected) change request. The incident-only fields
// keep their free-text shape because they are produced upstream as display
// strings; parsing lives in the analytics package.
type HistoryItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Type     string             `bson:"type" json:"type"`
	ChangeID string             `bson:"change_id,omitempty" json:"changeId,omitempty"`
	Title    string             `bson:"title" json:"title"`
	Category string             `bson:"category" json:"category"`

	RiskLevel string  `bson:"risk_level" json:"riskLevel"`
	RiskScore float64 `bson:"risk_score,omitempty" json:"riskScore,omitempty"`

	// incident fields
	Date          string `bson:"date,omitempty" json:"date,omitempty"`
	Downtime      string `bson:"downtime,omitempty" json:"downtime,omitempty"`
	RevenueImpact string `bson:"revenue_impact,omitempty" json:"revenue_impact,omitempty"`
	AffectedUsers int    `bson:"affected_users,omitempty" json:"affectedUsers,omitempty"`
	RollbackTime  string `bson:"rollback_time,omitempty" json:"rollbackTime,omitempty"`
	RootCause     string `bson:"root_cause,omitempty" json:"rootCause,omitempty"`
	SLABreached   bool   `bson:"sla_breached,omitempty" json:"slaBreached,omitempty"`

	// completed change fields
	Status          string `bson:"status,omitempty" json:"status,omitempty"`
	Decision        string `bson:"decision,omitempty" json:"decision,omitempty"`
	RejectionReason string `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
	FeedbackType    string `bson:"feedback_type,omitempty" json:"feedbackType,omitempty"`
	SubmittedBy     string `bson:"submitted_by,omitempty" json:"submittedBy,omitempty"`
	Summary         string `bson:"summary,omitempty" json:"summary,omitempty"`
	CompletedDate   string `bson:"completed_date,omitempty" json:"completedDate,omitempty"`
	CompletedTime   string `bson:"completed_time,omitempty" json:"completedTime,omitempty"`
	ScheduledTime   string `bson:"scheduled_time,omitempty" json:"scheduledTime,omitempty"`
}

// SortKey is the date used for newest-first ordering, whichever variant applies
func (h HistoryItem) SortKey() string {
	if h.Date != "" {
		return h.Date
	}
	if h.CompletedDate != "" {
		return h.CompletedDate
	}
	return "2000-01-01"
}

func AppendHistoryItem(item HistoryItem) error {
	collection := db.GetCollection("risk_history")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.InsertOne(ctx, item)
	return err
}

// ListHistory returns the combined risk history sorted newest first. Sorting
// happens here because incidents and completed changes carry their date in
// different fields.
func ListHistory() ([]HistoryItem, error) {
	collection := db.GetCollection("risk_history")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []HistoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SortKey() > items[j].SortKey()
	})
	return items, nil
}
