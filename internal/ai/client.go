package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

// RiskServiceConfig holds connection details for the external risk service
type RiskServiceConfig struct {
	URL string
}

var RiskStub RiskServiceConfig

func InitAI(riskServiceURL string) {
	RiskStub = RiskServiceConfig{URL: riskServiceURL}
}

// ---------------------------------------------------------------------------
// RISK ASSESSMENT SERVICE CLIENT
// ---------------------------------------------------------------------------

type assessRequest struct {
	ChangeType         string   `json:"change_type"`
	Priority           string   `json:"priority"`
	TargetSystems      []string `json:"target_systems"`
	ProposedDateTime   string   `json:"proposed_datetime"`
	DocumentationNotes string   `json:"documentation_notes"`
}

type assessResponse struct {
	Status     string               `json:"status"`
	Assessment *models.AIAssessment `json:"ai_assessment"`
}

// AssessRisk submits a change description and returns the structured assessment.
// The service's internal scoring is opaque here.
func AssessRisk(input models.SubmitChangeInput) (*models.AIAssessment, error) {
	url := fmt.Sprintf("%s/assess_risk", RiskStub.URL)
	payload := assessRequest{
		ChangeType:         input.ChangeType,
		Priority:           input.Priority,
		TargetSystems:      input.TargetSystems,
		ProposedDateTime:   input.ProposedDateTime,
		DocumentationNotes: input.DocumentationNotes,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, serviceError("risk service", resp)
	}

	var result assessResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.Assessment == nil {
		return nil, fmt.Errorf("risk service returned no assessment")
	}

	return result.Assessment, nil
}

type reassessRequest struct {
	ProposedDateTime    string   `json:"proposed_datetime"`
	AllInvolvedServices []string `json:"all_involved_services"`
}

// ReassessBusinessImpact re-scores the business impact portion at an alternate time
func ReassessBusinessImpact(proposedDateTime string, allInvolvedServices []string) (*models.BusinessImpact, error) {
	url := fmt.Sprintf("%s/reassess_business_impact", RiskStub.URL)
	payload := reassessRequest{
		ProposedDateTime:    proposedDateTime,
		AllInvolvedServices: allInvolvedServices,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, serviceError("business impact service", resp)
	}

	var result models.BusinessImpact
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

type postmortemRequest struct {
	Title     string `json:"title"`
	RootCause string `json:"root_cause"`
}

type postmortemResponse struct {
	PreventativeMeasures []string `json:"preventative_measures"`
}

// SuggestPostmortem asks the risk service for preventative measures for a past incident
func SuggestPostmortem(title, rootCause string) ([]string, error) {
	url := fmt.Sprintf("%s/suggest_postmortem", RiskStub.URL)
	payload := postmortemRequest{Title: title, RootCause: rootCause}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, serviceError("postmortem service", resp)
	}

	var result postmortemResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result.PreventativeMeasures, nil
}

// serviceError surfaces the most specific detail the service provided
func serviceError(service string, resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)

	var detail struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(b, &detail); err == nil {
		if detail.Detail != "" {
			return fmt.Errorf("%s error %d: %s", service, resp.StatusCode, detail.Detail)
		}
		if detail.Error != "" {
			return fmt.Errorf("%s error %d: %s", service, resp.StatusCode, detail.Error)
		}
	}

	return fmt.Errorf("%s error %d: %s", service, resp.StatusCode, string(b))
}
