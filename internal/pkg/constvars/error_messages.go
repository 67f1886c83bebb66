package constvars

// Developer-facing messages, logged but only exposed outside production.
const (
	ErrDevValidationFailed             = "request validation failed"
	ErrDevMissingRequestID             = "request id not found in request context"
	ErrDevMissingSessionData           = "session data not found in request context"
	ErrDevCannotParseJSON              = "cannot parse request body as JSON"
	ErrDevCannotMarshalJSON            = "cannot marshal payload to JSON"
	ErrDevURLParamMissing              = "required URL parameter %s is missing or blank"
	ErrDevEncounterNotFound            = "no encounter draft with the given id"
	ErrDevEncounterNotReady            = "encounter context is not ready for submission"
	ErrDevEncounterAlreadySubmitted    = "encounter draft has already been submitted"
	ErrDevSubmissionInFlight           = "another submission is in flight for this draft"
	ErrDevDuplicateDiagnosis           = "concept already present in the diagnosis list"
	ErrDevDuplicateAllergy             = "concept already present in the allergy list"
	ErrDevDuplicateServiceRequest      = "concept already present in the service request list"
	ErrDevEntryNotFound                = "no entry with the given concept id"
	ErrDevInvalidDurationValue         = "duration value must be a strictly positive integer"
	ErrDevInvalidDurationUnit          = "duration unit must be one of days, months or years"
	ErrDevBundleConstruction           = "failed to assemble transaction bundle from ledger snapshots"
	ErrDevCreateHTTPRequest            = "failed to create HTTP request"
	ErrDevSendHTTPRequest              = "failed to send HTTP request"
	ErrDevCreateFHIRResource           = "failed to create FHIR resource: %s"
	ErrDevDecodeFHIRResponse           = "failed to decode FHIR response: %s"
	ErrDevServerDeadlineExceeded       = "server deadline exceeded"
	ErrDevRedisGet                     = "failed to get value from redis for key %s"
	ErrDevRedisSet                     = "failed to set value in redis"
	ErrDevAuthTokenMissing             = "authorization token is missing"
	ErrDevAuthTokenInvalid             = "authorization token is invalid"
	ErrDevAuthTokenInvalidOrExpired    = "authorization token is invalid or expired"
	ErrDevAuthSigningMethod            = "unexpected JWT signing method"
	ErrDevAuthInvalidSession           = "session not found or expired"
	ErrDevAuditPublish                 = "failed to publish audit event"
	ErrDevAuditPublishNotConfirmed     = "audit event publish was not confirmed by the broker"
)
