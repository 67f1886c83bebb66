package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_SESSION_ID_KEY           ContextKey = "session_id"
)

const (
	ResourceEncounters      = "encounters"
	ResourceDiagnoses       = "diagnoses"
	ResourceConditions      = "conditions"
	ResourceAllergies       = "allergies"
	ResourceServiceRequests = "service-requests"
)

const (
	URLParamEncounterID = "encounter_id"
	URLParamConceptID   = "concept_id"
)
