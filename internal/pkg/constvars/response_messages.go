package constvars

const (
	OpenEncounterSuccessMessage         = "Encounter draft opened successfully"
	GetEncounterSuccessMessage          = "Encounter draft fetched successfully"
	DiscardEncounterSuccessMessage      = "Encounter draft discarded successfully"
	AddDiagnosisSuccessMessage          = "Diagnosis added successfully"
	RemoveDiagnosisSuccessMessage       = "Diagnosis removed successfully"
	UpdateCertaintySuccessMessage       = "Diagnosis certainty updated successfully"
	PromoteDiagnosisSuccessMessage      = "Diagnosis marked as condition successfully"
	RemoveConditionSuccessMessage       = "Condition removed successfully"
	UpdateDurationSuccessMessage        = "Condition duration updated successfully"
	AddAllergySuccessMessage            = "Allergy added successfully"
	RemoveAllergySuccessMessage         = "Allergy removed successfully"
	UpdateAllergySuccessMessage         = "Allergy updated successfully"
	AddServiceRequestSuccessMessage     = "Service request added successfully"
	RemoveServiceRequestSuccessMessage  = "Service request removed successfully"
	SubmitEncounterSuccessMessage       = "Encounter submitted successfully"
	SubmitEncounterValidationFailedMsg  = "Encounter has entries with outstanding validation errors"
)
