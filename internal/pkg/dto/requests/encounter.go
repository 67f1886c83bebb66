package requests

import "time"

type OpenEncounter struct {
	PatientID      string    `json:"patientId" validate:"required"`
	PractitionerID string    `json:"practitionerId" validate:"required"`
	LocationID     string    `json:"locationId"`
	Class          string    `json:"class" validate:"required,oneof=AMB IMP EMER"`
	PeriodStart    time.Time `json:"periodStart" validate:"required"`

	// Concept ids of conditions already on the patient's record, used by the
	// diagnosis ledger to flag duplicates of pre-existing conditions.
	ExistingConditionIDs []string `json:"existingConditionIds"`
}

type AddServiceRequest struct {
	ConceptID string `json:"conceptId" validate:"required"`
	Display   string `json:"display" validate:"required"`
}
