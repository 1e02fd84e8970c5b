package models

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/db"
)

// Lifecycle statuses for a change request
const (
	StatusAnalyzing = "Analyzing"
	StatusAssessed  = "AI Assessed"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
)

// SubmitChangeInput is the payload accepted from the UI to start an assessment
type SubmitChangeInput struct {
	ChangeType         string   `json:"change_type"`
	Priority           string   `json:"priority"`
	TargetSystems      []string `json:"target_systems"`
	ProposedDateTime   string   `json:"proposed_datetime"`
	DocumentationNotes string   `json:"documentation_notes"`
}

// ChangeRequest is a change record with its attached AI assessment (if analyzed)
type ChangeRequest struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ChangeID          string             `bson:"change_id" json:"changeId"`
	Title             string             `bson:"title" json:"title"`
	Type              string             `bson:"type" json:"type"`
	Category          string             `bson:"category" json:"category"`
	SubmittedBy       string             `bson:"submitted_by" json:"submittedBy"`
	Priority          string             `bson:"priority" json:"priority"`
	RiskScore         float64            `bson:"risk_score" json:"riskScore"`
	RiskLevel         string             `bson:"risk_level" json:"riskLevel"`
	Status            string             `bson:"status" json:"status"`
	RecommendedAction string             `bson:"recommended_action" json:"recommendedAction"`
	ScheduledTime     string             `bson:"scheduled_time" json:"scheduledTime"`
	RejectionReason   string             `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
	FeedbackType      string             `bson:"feedback_type,omitempty" json:"feedbackType,omitempty"`
	Assessment        *AIAssessment      `bson:"ai_assessment,omitempty" json:"ai_assessment,omitempty"`
}

func InsertChange(change *ChangeRequest) error {
	collection := db.GetCollection("changes")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.InsertOne(ctx, change)
	return err
}

// ListChanges returns all change requests, newest change ids first
func ListChanges() ([]ChangeRequest, error) {
	collection := db.GetCollection("changes")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var changes []ChangeRequest
	if err := cursor.All(ctx, &changes); err != nil {
		return nil, err
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].ChangeID > changes[j].ChangeID
	})
	return changes, nil
}

// ListPendingApprovals returns the changes still awaiting a human disposition
func ListPendingApprovals() ([]ChangeRequest, error) {
	collection := db.GetCollection("changes")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.M{"status": StatusAssessed})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var changes []ChangeRequest
	if err := cursor.All(ctx, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

func FindChangeByID(changeID string) (*ChangeRequest, error) {
	collection := db.GetCollection("changes")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var change ChangeRequest
	err := collection.FindOne(ctx, bson.M{"change_id": changeID}).Decode(&change)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrChangeNotFound
		}
		return nil, err
	}
	return &change, nil
}

// SetChangeDisposition records the human approve/reject decision on a change
func SetChangeDisposition(changeID, status, recommendedAction, rejectionReason, feedbackType string) error {
	collection := db.GetCollection("changes")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	set := bson.M{
		"status":             status,
		"recommended_action": recommendedAction,
	}
	if rejectionReason != "" {
		set["rejection_reason"] = rejectionReason
	}
	if feedbackType != "" {
		set["feedback_type"] = feedbackType
	}

	res, err := collection.UpdateOne(ctx, bson.M{"change_id": changeID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrChangeNotFound
	}
	return nil
}
