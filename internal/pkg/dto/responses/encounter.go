package responses

import "encounter-service/internal/app/models"

type EncounterOpened struct {
	EncounterID string `json:"encounterId"`
}

type DiagnosisAdded struct {
	// True when the concept duplicates a pre-existing condition on the
	// patient's record; the entry is still added, the client decides whether
	// to warn.
	DuplicateOfExistingCondition bool `json:"duplicateOfExistingCondition"`
}

type EncounterSubmitted struct {
	EncounterID string `json:"encounterId"`
	BundleID    string `json:"bundleId,omitempty"`
	// False when submission was blocked by outstanding entry validation
	// errors; Snapshot then carries the per-entry errors for inline display.
	Validated bool                      `json:"validated"`
	Snapshot  *models.EncounterSnapshot `json:"snapshot,omitempty"`
}
