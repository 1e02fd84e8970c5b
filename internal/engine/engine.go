package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

// Views the UI can show; switching views triggers a data refresh
const (
	ViewOverview  = "overview"
	ViewAnalysis  = "analysis"
	ViewApprovals = "approvals"
	ViewHistory   = "history"
)

// Deps wires the engine to its external collaborators. Everything that leaves
// the process goes through one of these functions so the lifecycle logic can
// be exercised without a network or database.
type Deps struct {
	AssessRisk     func(models.SubmitChangeInput) (*models.AIAssessment, error)
	ReassessImpact func(proposedDateTime string, allInvolvedServices []string) (*models.BusinessImpact, error)
	SaveChange     func(*models.ChangeRequest) error
	SetDisposition func(changeID, status, recommendedAction, rejectionReason, feedbackType string) error
	AppendHistory  func(models.HistoryItem) error
	FindChange     func(changeID string) (*models.ChangeRequest, error)
	SendEmail      func(recipient string, change *models.ChangeRequest) error
	FetchOverview  func() ([]models.ChangeRequest, error)
	FetchPending   func() ([]models.ChangeRequest, error)
	Now            func() time.Time
}

// RejectionForm holds the open rejection dialog state. A failed rejection
// keeps the form open with its entered values intact.
type RejectionForm struct {
	Open         bool   `json:"open"`
	ChangeID     string `json:"changeId"`
	Reason       string `json:"reason"`
	FeedbackType string `json:"feedbackType"`
}

// Engine is the change lifecycle controller. All state lives in this one
// container and every mutation goes through a named operation. Each action
// owns an in-flight flag that blocks re-entry while a prior call for the same
// target is outstanding; no two external calls for the same change run
// concurrently.
type Engine struct {
	mu   sync.Mutex
	deps Deps

	Alerts *AlertQueue

	activeView string
	current    *models.AIAssessment
	overview   []models.ChangeRequest
	pending    []models.ChangeRequest

	rejection          RejectionForm
	pendingEmailChange string

	submitting          bool
	reassessing         bool
	emailSending        bool
	dispositionInFlight map[string]bool
}

func New(deps Deps) *Engine {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Engine{
		deps:                deps,
		Alerts:              NewAlertQueue(),
		activeView:          ViewOverview,
		dispositionInFlight: make(map[string]bool),
	}
}

// ---------------------------------------------------------------------------
// SUBMIT
// ---------------------------------------------------------------------------

// Submit validates the change locally, runs the external risk assessment and
// on success stores the new change with its assessment attached. A submission
// always creates a new change request; it never mutates an existing one.
func (e *Engine) Submit(input models.SubmitChangeInput) (*models.AIAssessment, error) {
	if err := validateSubmit(input); err != nil {
		// local failure, nothing was sent anywhere and no state changed
		return nil, err
	}

	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return nil, ErrBusy
	}
	e.submitting = true
	e.activeView = ViewAnalysis
	e.mu.Unlock()

	assessment, err := e.deps.AssessRisk(input)
	if err == nil {
		change := newChangeRecord(input, assessment, e.deps.Now())
		err = e.deps.SaveChange(change)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.submitting = false

	if err != nil {
		e.activeView = ViewOverview
		e.Alerts.Raise("Risk assessment failed: "+err.Error(), AlertError)
		return nil, err
	}

	e.current = assessment
	e.refreshLocked()

	if assessment.RiskLevel == "HIGH" || assessment.RiskLevel == "CRITICAL" {
		e.Alerts.Raise(fmt.Sprintf("%s risk change detected: %s", assessment.RiskLevel, assessment.Summary), AlertWarning)
	}
	if len(assessment.ImpactedDependencies) > 1 {
		e.Alerts.Raise(fmt.Sprintf("%d downstream services may be impacted by this change", len(assessment.ImpactedDependencies)), AlertInfo)
	}

	return assessment, nil
}

func validateSubmit(input models.SubmitChangeInput) error {
	if len(input.TargetSystems) == 0 {
		return validationErr("target_systems", "at least one target system is required")
	}
	if input.ChangeType == "" {
		return validationErr("change_type", "required")
	}
	if input.Priority == "" {
		return validationErr("priority", "required")
	}
	return nil
}

func newChangeRecord(input models.SubmitChangeInput, a *models.AIAssessment, now time.Time) *models.ChangeRequest {
	title := input.DocumentationNotes
	if runes := []rune(title); len(runes) > 50 {
		title = string(runes[:50]) + "..."
	}

	if a.ChangeID == "" {
		a.ChangeID = fmt.Sprintf("CHG-AI-%d", now.Unix())
	}
	if a.ScheduledTime == "" {
		a.ScheduledTime = input.ProposedDateTime
	}

	return &models.ChangeRequest{
		ChangeID:          a.ChangeID,
		Title:             title,
		Type:              input.ChangeType,
		Category:          input.ChangeType,
		SubmittedBy:       "You (AI Assessed)",
		Priority:          input.Priority,
		RiskScore:         a.RiskScore,
		RiskLevel:         a.RiskLevel,
		Status:            models.StatusAssessed,
		RecommendedAction: "Review AI Analysis",
		ScheduledTime:     input.ProposedDateTime,
		Assessment:        a,
	}
}

// ---------------------------------------------------------------------------
// APPROVE / REJECT
// ---------------------------------------------------------------------------

// Approve records the human approval. The item leaves the pending collection
// only after the disposition is confirmed; a failure leaves everything as it
// was and surfaces one error alert.
func (e *Engine) Approve(changeID string) error {
	if changeID == "" {
		return validationErr("changeId", "required")
	}

	e.mu.Lock()
	if e.dispositionInFlight[changeID] {
		e.mu.Unlock()
		return ErrBusy
	}
	e.dispositionInFlight[changeID] = true
	e.mu.Unlock()
	defer e.clearInFlight(changeID)

	change, err := e.deps.FindChange(changeID)
	if err != nil {
		e.Alerts.Raise("Approval failed: "+err.Error(), AlertError)
		return err
	}

	if err := e.deps.SetDisposition(changeID, models.StatusApproved, "Approved by Human", "", ""); err != nil {
		e.Alerts.Raise("Approval failed: "+err.Error(), AlertError)
		return err
	}

	if err := e.deps.AppendHistory(completedEntry(change, "Approved", "", "", e.deps.Now())); err != nil {
		// the disposition already succeeded, history stays best-effort
		log.Printf("Failed to append history entry for %s: %v", changeID, err)
	}

	e.mu.Lock()
	e.removePendingLocked(changeID)
	e.refreshLocked()
	e.mu.Unlock()

	e.Alerts.Raise("Change "+changeID+" approved", AlertSuccess)
	return nil
}

// OpenRejection selects the rejection target and opens the form
func (e *Engine) OpenRejection(changeID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rejection = RejectionForm{Open: true, ChangeID: changeID}
}

func (e *Engine) CancelRejection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rejection = RejectionForm{}
}

// Reject records the human rejection for the currently selected change. On
// success the form closes and its fields clear; on failure the form keeps the
// entered values.
func (e *Engine) Reject(reason, feedbackType string) error {
	if feedbackType == "" {
		feedbackType = "none"
	}

	e.mu.Lock()
	if !e.rejection.Open || e.rejection.ChangeID == "" {
		e.mu.Unlock()
		return validationErr("rejection", "no change selected for rejection")
	}
	changeID := e.rejection.ChangeID
	if e.dispositionInFlight[changeID] {
		e.mu.Unlock()
		return ErrBusy
	}
	e.dispositionInFlight[changeID] = true
	e.rejection.Reason = reason
	e.rejection.FeedbackType = feedbackType
	e.mu.Unlock()
	defer e.clearInFlight(changeID)

	change, err := e.deps.FindChange(changeID)
	if err != nil {
		e.Alerts.Raise("Rejection failed: "+err.Error(), AlertError)
		return err
	}

	if err := e.deps.SetDisposition(changeID, models.StatusRejected, "Rejected by Human", reason, feedbackType); err != nil {
		e.Alerts.Raise("Rejection failed: "+err.Error(), AlertError)
		return err
	}

	if err := e.deps.AppendHistory(completedEntry(change, "Rejected", reason, feedbackType, e.deps.Now())); err != nil {
		log.Printf("Failed to append history entry for %s: %v", changeID, err)
	}

	e.mu.Lock()
	e.rejection = RejectionForm{}
	e.removePendingLocked(changeID)
	e.refreshLocked()
	e.mu.Unlock()

	e.Alerts.Raise("Change "+changeID+" rejected", AlertSuccess)
	return nil
}

func (e *Engine) clearInFlight(changeID string) {
	e.mu.Lock()
	delete(e.dispositionInFlight, changeID)
	e.mu.Unlock()
}

func completedEntry(change *models.ChangeRequest, decision, reason, feedbackType string, now time.Time) models.HistoryItem {
	title := change.Title
	if title == "" {
		title = "Change Request"
	}
	category := change.Category
	if category == "" {
		category = change.Type
	}
	if category == "" {
		category = "General"
	}
	riskLevel := change.RiskLevel
	if riskLevel == "" {
		riskLevel = "UNKNOWN"
	}
	submittedBy := change.SubmittedBy
	if submittedBy == "" {
		submittedBy = "Unknown"
	}
	summary := "No AI assessment available"
	if change.Assessment != nil {
		summary = change.Assessment.Summary
	}

	return models.HistoryItem{
		Type:            models.HistoryCompletedChange,
		ChangeID:        change.ChangeID,
		Title:           title,
		Category:        category,
		Status:          decision,
		RiskLevel:       riskLevel,
		RiskScore:       change.RiskScore,
		SubmittedBy:     submittedBy,
		CompletedDate:   now.Format("2006-01-02"),
		CompletedTime:   now.Format("15:04:05"),
		Decision:        decision,
		RejectionReason: reason,
		FeedbackType:    feedbackType,
		Summary:         summary,
		ScheduledTime:   change.ScheduledTime,
	}
}

// ---------------------------------------------------------------------------
// REASSESSMENT
// ---------------------------------------------------------------------------

// RequestReassessment re-scores the business impact of the current assessment
// at 03:00 on its scheduled date and merges the result in. The technical,
// dependency and recommendation fields are never touched; a failure leaves
// the current assessment exactly as it was.
func (e *Engine) RequestReassessment() (*models.AIAssessment, error) {
	e.mu.Lock()
	if e.reassessing {
		e.mu.Unlock()
		return nil, ErrBusy
	}
	if e.current == nil {
		e.mu.Unlock()
		return nil, validationErr("assessment", "no assessment to reassess")
	}
	current := *e.current
	e.reassessing = true
	e.mu.Unlock()

	finish := func() {
		e.mu.Lock()
		e.reassessing = false
		e.mu.Unlock()
	}

	scheduled, err := parseScheduled(current.ScheduledTime)
	if err != nil {
		finish()
		e.Alerts.Raise("Reassessment failed: "+err.Error(), AlertError)
		return nil, err
	}

	// same date, 03:00 — the quietest realistic deployment window
	alt := time.Date(scheduled.Year(), scheduled.Month(), scheduled.Day(), 3, 0, 0, 0, scheduled.Location())
	involved := unionServices(current.TargetSystemsAnalyzed, current.ImpactedDependencies)

	impact, err := e.deps.ReassessImpact(alt.Format("2006-01-02T15:04"), involved)
	if err != nil {
		finish()
		e.Alerts.Raise("Reassessment failed: "+err.Error(), AlertError)
		return nil, err
	}

	merged := MergeBusinessImpact(current, *impact)

	e.mu.Lock()
	// a new submission may have replaced the assessment while the call was
	// out; installing the merge then would clobber it with the old snapshot
	if e.current != nil && e.current.ChangeID == current.ChangeID {
		e.current = &merged
	}
	e.reassessing = false
	e.mu.Unlock()

	level := impact.BusinessImpactLevel
	if level == "" {
		level = "Unknown"
	}
	e.Alerts.Raise(fmt.Sprintf("Reassessed for 03:00: business impact is %s", level), AlertSuccess)

	return &merged, nil
}

func parseScheduled(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized scheduled time %q", s)
}

// unionServices keeps the target ordering first, then appends unseen dependencies
func unionServices(targets, deps []string) []string {
	seen := make(map[string]struct{}, len(targets)+len(deps))
	out := make([]string, 0, len(targets)+len(deps))
	for _, s := range targets {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, s := range deps {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// EMAIL NOTIFICATION
// ---------------------------------------------------------------------------

// SendNotification emails the assessment of a change to a stakeholder. While
// the send is in flight the action is locked; on success the modal target
// clears, on failure it stays so the user can retry.
func (e *Engine) SendNotification(changeID, recipientEmail string) error {
	if changeID == "" {
		return validationErr("changeId", "required")
	}
	if recipientEmail == "" {
		return validationErr("recipientEmail", "required")
	}

	e.mu.Lock()
	if e.emailSending {
		e.mu.Unlock()
		return ErrBusy
	}
	e.emailSending = true
	e.pendingEmailChange = changeID
	e.mu.Unlock()

	finish := func() {
		e.mu.Lock()
		e.emailSending = false
		e.mu.Unlock()
	}

	change, err := e.deps.FindChange(changeID)
	if err == nil && change.Assessment == nil {
		err = fmt.Errorf("change %s has no AI assessment; only assessed changes can be emailed", changeID)
	}
	if err == nil {
		err = e.deps.SendEmail(recipientEmail, change)
	}

	if err != nil {
		finish()
		e.Alerts.Raise("Email notification failed: "+err.Error(), AlertError)
		return err
	}

	e.mu.Lock()
	e.emailSending = false
	e.pendingEmailChange = ""
	e.mu.Unlock()

	e.Alerts.Raise("Email notification sent to "+recipientEmail, AlertSuccess)
	return nil
}

// ---------------------------------------------------------------------------
// VIEW / STATE ACCESS
// ---------------------------------------------------------------------------

// SwitchView changes the active view and refreshes its backing collections.
// There is no request cancellation or staleness check for rapid view changes;
// a late refresh applies to whatever state it targets.
func (e *Engine) SwitchView(view string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.activeView = view
	e.refreshLocked()
}

func (e *Engine) refreshLocked() {
	if e.deps.FetchOverview != nil {
		if changes, err := e.deps.FetchOverview(); err == nil {
			e.overview = changes
		} else {
			log.Printf("Failed to refresh change overview: %v", err)
		}
	}
	if e.deps.FetchPending != nil {
		if changes, err := e.deps.FetchPending(); err == nil {
			e.pending = changes
		} else {
			log.Printf("Failed to refresh pending approvals: %v", err)
		}
	}
}

func (e *Engine) removePendingLocked(changeID string) {
	for i, c := range e.pending {
		if c.ChangeID == changeID {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			return
		}
	}
}

func (e *Engine) ActiveView() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeView
}

// CurrentAssessment returns a copy of the active assessment, or nil
func (e *Engine) CurrentAssessment() *models.AIAssessment {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil
	}
	copied := *e.current
	return &copied
}

func (e *Engine) Overview() []models.ChangeRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.ChangeRequest, len(e.overview))
	copy(out, e.overview)
	return out
}

func (e *Engine) Pending() []models.ChangeRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.ChangeRequest, len(e.pending))
	copy(out, e.pending)
	return out
}

func (e *Engine) Rejection() RejectionForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rejection
}
