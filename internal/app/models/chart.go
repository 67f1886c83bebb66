package models

// CodedValue is a concept picked from terminology search. Concept existence is
// assumed correct once chosen; no terminology validation happens here.
type CodedValue struct {
	Code    string `json:"code"`
	Display string `json:"display"`
}

// DiagnosisEntry is one clinician-entered diagnosis. Errors is always non-nil
// but may be empty; HasBeenValidated only ever flips back to false through a
// whole-ledger reset.
type DiagnosisEntry struct {
	ConceptID        string            `json:"conceptId"`
	Display          string            `json:"display"`
	Certainty        string            `json:"certainty,omitempty"`
	Errors           map[string]string `json:"errors"`
	HasBeenValidated bool              `json:"hasBeenValidated"`
}

// ConditionEntry only ever originates from a promoted DiagnosisEntry;
// conditions cannot be created directly.
type ConditionEntry struct {
	ConceptID        string            `json:"conceptId"`
	Display          string            `json:"display"`
	DurationValue    *int              `json:"durationValue"`
	DurationUnit     string            `json:"durationUnit,omitempty"`
	Errors           map[string]string `json:"errors"`
	HasBeenValidated bool              `json:"hasBeenValidated"`
}

type AllergyEntry struct {
	ConceptID        string            `json:"conceptId"`
	Display          string            `json:"display"`
	Type             string            `json:"type"`
	Severity         string            `json:"severity,omitempty"`
	Reactions        []CodedValue      `json:"reactions"`
	Note             string            `json:"note,omitempty"`
	Errors           map[string]string `json:"errors"`
	HasBeenValidated bool              `json:"hasBeenValidated"`
}

// ServiceRequestEntry is a selected order. Orders carry no field validation;
// they are reset together with the ledgers on a successful submission.
type ServiceRequestEntry struct {
	ConceptID string `json:"conceptId"`
	Display   string `json:"display"`
}

func CopyErrors(errors map[string]string) map[string]string {
	copied := make(map[string]string, len(errors))
	for field, code := range errors {
		copied[field] = code
	}
	return copied
}
