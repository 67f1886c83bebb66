package requests

type AddAllergy struct {
	ConceptID string `json:"conceptId" validate:"required"`
	Display   string `json:"display" validate:"required"`
	Type      string `json:"type" validate:"required,allergy_type"`
}

type UpdateAllergySeverity struct {
	Severity string `json:"severity" validate:"omitempty,severity"`
}

type UpdateAllergyReactions struct {
	Reactions []ReactionConcept `json:"reactions" validate:"dive"`
}

type ReactionConcept struct {
	Code    string `json:"code" validate:"required"`
	Display string `json:"display" validate:"required"`
}

type UpdateAllergyNote struct {
	Note string `json:"note"`
}
