package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Incident is an incident record as published by the EIDO agent.
// The IDX agent does not own its schema and passes it through unchanged.
type Incident map[string]any

// ClaimReceipt acknowledges a claim.
type ClaimReceipt struct {
	Message string `json:"message"`
}

// NewClaimReceipt builds the receipt for incidentID.
func NewClaimReceipt(incidentID string) ClaimReceipt {
	return ClaimReceipt{Message: fmt.Sprintf("Incident %s claimed.", incidentID)}
}

// CorrelationNew reports an incident that matches no known incident.
const CorrelationNew = "new"

// CorrelationRequest asks whether an incoming incident matches a known one.
type CorrelationRequest struct {
	IncidentID string         `json:"incident_id,omitempty" jsonschema_description:"Identifier of the incoming incident"`
	Incident   map[string]any `json:"incident,omitempty" jsonschema_description:"Incoming incident payload"`
}

// CorrelationResponse is the outcome of a correlation.
// CorrelationID is nil when the incident is new.
type CorrelationResponse struct {
	Status        string  `json:"status" jsonschema_description:"new or existing"`
	CorrelationID *string `json:"correlation_id" jsonschema_description:"ID of the matching incident, if any"`
}

// Correlate matches req against known incidents.
// No matching model is wired yet, so every incident is reported as new.
func Correlate(req CorrelationRequest) CorrelationResponse {
	return CorrelationResponse{Status: CorrelationNew}
}

// ValidateEIDOUpload checks the filename and that content is a JSON document.
// It returns the decoded document ready to be forwarded.
func ValidateEIDOUpload(filename string, content []byte) (json.RawMessage, error) {
	if !strings.HasSuffix(filename, ".json") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, filename)
	}
	if !json.Valid(content) {
		return nil, ErrInvalidEIDO
	}
	return json.RawMessage(content), nil
}
