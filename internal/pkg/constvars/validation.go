package constvars

var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least %s",
	"max":           "must be at most %s",
	"oneof":         "must be one of: %s",
	"gt":            "must be greater than %s",
	"uuid":          "must be a valid UUID",
	"duration_unit": "must be one of: days, months, years",
	"allergy_type":  "must be one of: medication, food, environment",
	"certainty":     "must be one of: confirmed, presumed",
	"severity":      "must be one of: mild, moderate, severe",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
}
