package utils

import (
	"encounter-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("duration_unit", validateDurationUnit)
	validate.RegisterValidation("allergy_type", validateAllergyType)
	validate.RegisterValidation("certainty", validateCertainty)
	validate.RegisterValidation("severity", validateSeverity)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateDurationUnit(fl validator.FieldLevel) bool {
	return IsValidDurationUnit(fl.Field().String())
}

func validateAllergyType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.AllergyTypeMedication ||
		value == constvars.AllergyTypeFood ||
		value == constvars.AllergyTypeEnvironment
}

func validateCertainty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.CertaintyConfirmed || value == constvars.CertaintyPresumed
}

func validateSeverity(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.AllergySeverityMild ||
		value == constvars.AllergySeverityModerate ||
		value == constvars.AllergySeveritySevere
}
