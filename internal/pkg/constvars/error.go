package constvars

// Client-facing messages. Kept generic on purpose: submission and construction
// failures carry no field detail, the inline entry errors already do.
const (
	ErrClientCannotProcessRequest          = "Cannot process the request"
	ErrClientSomethingWrongWithApplication = "Something is wrong with the application, please try again later"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "You are not logged in, please log in first"
	ErrClientEncounterNotFound             = "Encounter draft not found"
	ErrClientEncounterNotReady             = "Encounter draft is missing required encounter details"
	ErrClientEncounterAlreadySubmitted     = "This encounter has already been submitted"
	ErrClientSubmissionInProgress          = "A submission for this encounter is already in progress"
	ErrClientSubmissionFailed              = "Could not save the encounter, please try again"
	ErrClientDuplicateDiagnosis            = "This diagnosis has already been added"
	ErrClientDuplicateAllergy              = "This allergy has already been added"
	ErrClientDuplicateServiceRequest       = "This service request has already been added"
	ErrClientEntryNotFound                 = "No entry with the given concept id exists"
	ErrClientInvalidDuration               = "Duration must be a positive whole number with a valid unit"
	ErrClientServerLongRespond             = "Server takes too long to respond"
)

const (
	ResponseUnknown = "unknown"
)
