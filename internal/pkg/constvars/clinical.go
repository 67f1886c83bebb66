package constvars

// Field-level validation error codes. These are keyed by field name on the
// owning entry and rendered inline by the client, never as notifications.
const (
	ErrCodeCertaintyRequired     = "certainty-required"
	ErrCodeDurationValueRequired = "duration-value-required"
	ErrCodeDurationUnitRequired  = "duration-unit-required"
	ErrCodeSeverityRequired      = "severity-required"
	ErrCodeReactionsRequired     = "reactions-required"
)

// Entry field names used as keys in an entry's errors map.
const (
	FieldCertainty     = "certainty"
	FieldDurationValue = "durationValue"
	FieldDurationUnit  = "durationUnit"
	FieldSeverity      = "severity"
	FieldReactions     = "reactions"
)

const (
	CertaintyConfirmed = "confirmed"
	CertaintyPresumed  = "presumed"
)

const (
	DurationUnitDays   = "days"
	DurationUnitMonths = "months"
	DurationUnitYears  = "years"
)

const (
	AllergyTypeMedication  = "medication"
	AllergyTypeFood        = "food"
	AllergyTypeEnvironment = "environment"
)

const (
	AllergySeverityMild     = "mild"
	AllergySeverityModerate = "moderate"
	AllergySeveritySevere   = "severe"
)
