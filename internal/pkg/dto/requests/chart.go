package requests

type AddDiagnosis struct {
	ConceptID string `json:"conceptId" validate:"required"`
	Display   string `json:"display" validate:"required"`
}

type UpdateCertainty struct {
	// Empty clears the certainty; a set value must be a known code.
	Certainty string `json:"certainty" validate:"omitempty,certainty"`
}

type UpdateConditionDuration struct {
	// nil explicitly clears the field; the ledger re-checks both rules so an
	// invalid call never partially mutates the entry.
	DurationValue *int    `json:"durationValue" validate:"omitempty,gt=0"`
	DurationUnit  *string `json:"durationUnit" validate:"omitempty,duration_unit"`
}
