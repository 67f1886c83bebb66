package fhir_dto

type ServiceRequest struct {
	ResourceType string           `json:"resourceType"`
	ID           string           `json:"id,omitempty"`
	Meta         *Meta            `json:"meta,omitempty"`
	Identifier   []Identifier     `json:"identifier,omitempty"`
	Status       string           `json:"status"`
	Intent       string           `json:"intent"`
	Code         *CodeableConcept `json:"code,omitempty"`
	Subject      Reference        `json:"subject"`
	Encounter    *Reference       `json:"encounter,omitempty"`
	Requester    *Reference       `json:"requester,omitempty"`
	AuthoredOn   string           `json:"authoredOn,omitempty"`
}
