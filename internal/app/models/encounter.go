package models

import "time"

// EncounterContext frames the submitted batch: who, where and when. It is
// written once when a draft is opened and only read afterwards.
type EncounterContext struct {
	PatientID      string    `json:"patientId"`
	PractitionerID string    `json:"practitionerId"`
	LocationID     string    `json:"locationId,omitempty"`
	Class          string    `json:"class"`
	PeriodStart    time.Time `json:"periodStart"`
}

// Ready reports whether the minimum encounter-level fields for a submission
// are present. Submit is refused upstream when this is false.
func (c EncounterContext) Ready() bool {
	return c.PatientID != "" && c.PractitionerID != "" && !c.PeriodStart.IsZero()
}

// EncounterSnapshot is a read-only copy of everything a draft holds, used
// both for rendering and as the frozen input to bundle assembly.
type EncounterSnapshot struct {
	EncounterID     string                `json:"encounterId"`
	Context         EncounterContext      `json:"context"`
	Diagnoses       []DiagnosisEntry      `json:"diagnoses"`
	Conditions      []ConditionEntry      `json:"conditions"`
	Allergies       []AllergyEntry        `json:"allergies"`
	ServiceRequests []ServiceRequestEntry `json:"serviceRequests"`
	Submitted       bool                  `json:"submitted"`
}

// AuditEvent records a successful submission for the audit trail.
type AuditEvent struct {
	ID             string    `json:"id"`
	EncounterID    string    `json:"encounter_id"`
	BundleID       string    `json:"bundle_id"`
	PractitionerID string    `json:"practitioner_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}
