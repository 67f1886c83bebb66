package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingEncounterIDKey = "encounter_id"
	LoggingConceptIDKey   = "concept_id"
	LoggingBundleIDKey    = "bundle_id"
	LoggingMethodKey      = "method"
	LoggingEndpointKey    = "endpoint"
	LoggingRemoteAddrKey  = "remote_addr"
	LoggingUserAgentKey   = "user_agent"
	LoggingQueryKey       = "query"
	LoggingStatusCodeKey  = "status_code"
	LoggingDurationKey    = "duration"
	LoggingSuccessKey     = "success"
)
