package utils

import (
	"encounter-service/internal/app/models"
	"encounter-service/internal/pkg/constvars"
)

// Field-level entry rules. Each returns a fresh field→code map so a validation
// pass always replaces the entry's previous errors wholesale.

func ValidateDiagnosisEntry(entry models.DiagnosisEntry) map[string]string {
	errors := make(map[string]string)
	if entry.Certainty == "" {
		errors[constvars.FieldCertainty] = constvars.ErrCodeCertaintyRequired
	}
	return errors
}

func ValidateConditionEntry(entry models.ConditionEntry) map[string]string {
	errors := make(map[string]string)
	if entry.DurationValue == nil {
		errors[constvars.FieldDurationValue] = constvars.ErrCodeDurationValueRequired
	}
	if entry.DurationUnit == "" {
		errors[constvars.FieldDurationUnit] = constvars.ErrCodeDurationUnitRequired
	}
	return errors
}

func ValidateAllergyEntry(entry models.AllergyEntry) map[string]string {
	errors := make(map[string]string)
	if entry.Severity == "" {
		errors[constvars.FieldSeverity] = constvars.ErrCodeSeverityRequired
	}
	if len(entry.Reactions) == 0 {
		errors[constvars.FieldReactions] = constvars.ErrCodeReactionsRequired
	}
	return errors
}

func IsValidDurationUnit(unit string) bool {
	switch unit {
	case constvars.DurationUnitDays, constvars.DurationUnitMonths, constvars.DurationUnitYears:
		return true
	}
	return false
}
