package utils

import (
	"encounter-service/internal/app/models"
	"encounter-service/internal/pkg/constvars"
	"encounter-service/internal/pkg/fhir_dto"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Bundle transformers: pure functions from ledger snapshots to transaction
// bundle entries. They run only after field validation has passed, so any
// error here signals a logic inconsistency rather than a user mistake; the
// coordinator treats it as a construction failure and aborts pre-network.

func MapEncounterContextToBundleEntry(encounterContext models.EncounterContext) (fhir_dto.BundleEntry, string, error) {
	if !encounterContext.Ready() {
		return fhir_dto.BundleEntry{}, "", fmt.Errorf("encounter context is missing required fields")
	}

	encounter := fhir_dto.Encounter{
		ResourceType: constvars.ResourceEncounter,
		Status:       constvars.FhirEncounterStatusFinished,
		Class: fhir_dto.Coding{
			System: constvars.FhirSystemEncounterClass,
			Code:   encounterContext.Class,
		},
		Subject: patientReference(encounterContext),
		Participant: []fhir_dto.EncounterParticipant{
			{Individual: practitionerReference(encounterContext)},
		},
		Period: &fhir_dto.Period{Start: encounterContext.PeriodStart.Format(time.RFC3339)},
	}
	if encounterContext.LocationID != "" {
		encounter.Location = []fhir_dto.EncounterLocation{
			{Location: fhir_dto.Reference{Reference: constvars.ResourceLocation + "/" + encounterContext.LocationID}},
		}
	}

	fullUrl := constvars.FhirUrnUUIDPrefix + uuid.NewString()
	entry, err := buildEntry(fullUrl, encounter, constvars.ResourceEncounter)
	if err != nil {
		return fhir_dto.BundleEntry{}, "", err
	}
	return entry, fullUrl, nil
}

// MapDiagnosesToBundleEntries converts diagnosis entries into Condition
// resources categorized as encounter diagnoses, with the verification status
// derived from the recorded certainty.
func MapDiagnosesToBundleEntries(entries []models.DiagnosisEntry, encounterContext models.EncounterContext, encounterFullUrl string) ([]fhir_dto.BundleEntry, error) {
	bundleEntries := make([]fhir_dto.BundleEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.ConceptID == "" || entry.Display == "" {
			return nil, fmt.Errorf("diagnosis entry has no concept id or display")
		}
		verificationStatus, err := mapCertaintyToVerificationStatus(entry.Certainty)
		if err != nil {
			return nil, err
		}

		condition := fhir_dto.Condition{
			ResourceType:       constvars.ResourceCondition,
			ClinicalStatus:     codeableConcept(constvars.FhirSystemConditionClinical, constvars.FhirConditionClinicalStatusActive, ""),
			VerificationStatus: codeableConcept(constvars.FhirSystemConditionVerification, verificationStatus, ""),
			Category: []fhir_dto.CodeableConcept{
				*codeableConcept(constvars.FhirSystemConditionCategory, constvars.FhirConditionCategoryEncounterDiagnosis, ""),
			},
			Code:         codeableConcept("", entry.ConceptID, entry.Display),
			Subject:      patientReference(encounterContext),
			Encounter:    &fhir_dto.Reference{Reference: encounterFullUrl},
			RecordedDate: encounterContext.PeriodStart.Format(time.RFC3339),
			Recorder:     practitionerReference(encounterContext),
		}

		bundleEntry, err := buildEntry(constvars.FhirUrnUUIDPrefix+uuid.NewString(), condition, constvars.ResourceCondition)
		if err != nil {
			return nil, err
		}
		bundleEntries = append(bundleEntries, bundleEntry)
	}
	return bundleEntries, nil
}

// MapConditionsToBundleEntries converts promoted condition entries into
// problem-list Condition resources. The onset is computed backwards from the
// encounter start using the recorded duration.
func MapConditionsToBundleEntries(entries []models.ConditionEntry, encounterContext models.EncounterContext, encounterFullUrl string) ([]fhir_dto.BundleEntry, error) {
	bundleEntries := make([]fhir_dto.BundleEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.ConceptID == "" || entry.Display == "" {
			return nil, fmt.Errorf("condition entry has no concept id or display")
		}
		if entry.DurationValue == nil || entry.DurationUnit == "" {
			return nil, fmt.Errorf("condition entry %s has incomplete duration despite passing validation", entry.ConceptID)
		}
		onset, err := onsetFromDuration(encounterContext.PeriodStart, *entry.DurationValue, entry.DurationUnit)
		if err != nil {
			return nil, err
		}

		condition := fhir_dto.Condition{
			ResourceType:   constvars.ResourceCondition,
			ClinicalStatus: codeableConcept(constvars.FhirSystemConditionClinical, constvars.FhirConditionClinicalStatusActive, ""),
			Category: []fhir_dto.CodeableConcept{
				*codeableConcept(constvars.FhirSystemConditionCategory, constvars.FhirConditionCategoryProblemListItem, ""),
			},
			Code:          codeableConcept("", entry.ConceptID, entry.Display),
			Subject:       patientReference(encounterContext),
			Encounter:     &fhir_dto.Reference{Reference: encounterFullUrl},
			OnsetDateTime: onset.Format(time.RFC3339),
			RecordedDate:  encounterContext.PeriodStart.Format(time.RFC3339),
			Recorder:      practitionerReference(encounterContext),
		}

		bundleEntry, err := buildEntry(constvars.FhirUrnUUIDPrefix+uuid.NewString(), condition, constvars.ResourceCondition)
		if err != nil {
			return nil, err
		}
		bundleEntries = append(bundleEntries, bundleEntry)
	}
	return bundleEntries, nil
}

func MapAllergiesToBundleEntries(entries []models.AllergyEntry, encounterContext models.EncounterContext, encounterFullUrl string) ([]fhir_dto.BundleEntry, error) {
	bundleEntries := make([]fhir_dto.BundleEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.ConceptID == "" || entry.Display == "" {
			return nil, fmt.Errorf("allergy entry has no concept id or display")
		}

		manifestations := make([]fhir_dto.CodeableConcept, 0, len(entry.Reactions))
		for _, reaction := range entry.Reactions {
			manifestations = append(manifestations, *codeableConcept("", reaction.Code, reaction.Display))
		}

		allergy := fhir_dto.AllergyIntolerance{
			ResourceType:   constvars.ResourceAllergyIntolerance,
			ClinicalStatus: codeableConcept(constvars.FhirSystemAllergyClinical, "active", ""),
			Category:       []string{entry.Type},
			Criticality:    mapSeverityToCriticality(entry.Severity),
			Code:           codeableConcept("", entry.ConceptID, entry.Display),
			Patient:        patientReference(encounterContext),
			Encounter:      &fhir_dto.Reference{Reference: encounterFullUrl},
			RecordedDate:   encounterContext.PeriodStart.Format(time.RFC3339),
			Recorder:       practitionerReference(encounterContext),
			Reaction: []fhir_dto.AllergyIntoleranceReaction{
				{Manifestation: manifestations, Severity: entry.Severity},
			},
		}
		if entry.Note != "" {
			allergy.Note = []fhir_dto.Annotation{{Text: entry.Note}}
		}

		bundleEntry, err := buildEntry(constvars.FhirUrnUUIDPrefix+uuid.NewString(), allergy, constvars.ResourceAllergyIntolerance)
		if err != nil {
			return nil, err
		}
		bundleEntries = append(bundleEntries, bundleEntry)
	}
	return bundleEntries, nil
}

func MapServiceRequestsToBundleEntries(entries []models.ServiceRequestEntry, encounterContext models.EncounterContext, encounterFullUrl string) ([]fhir_dto.BundleEntry, error) {
	bundleEntries := make([]fhir_dto.BundleEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.ConceptID == "" || entry.Display == "" {
			return nil, fmt.Errorf("service request entry has no concept id or display")
		}

		serviceRequest := fhir_dto.ServiceRequest{
			ResourceType: constvars.ResourceServiceRequest,
			Status:       constvars.FhirServiceRequestStatusActive,
			Intent:       constvars.FhirServiceRequestIntentOrder,
			Code:         codeableConcept("", entry.ConceptID, entry.Display),
			Subject:      patientReference(encounterContext),
			Encounter:    &fhir_dto.Reference{Reference: encounterFullUrl},
			Requester:    practitionerReference(encounterContext),
			AuthoredOn:   encounterContext.PeriodStart.Format(time.RFC3339),
		}

		bundleEntry, err := buildEntry(constvars.FhirUrnUUIDPrefix+uuid.NewString(), serviceRequest, constvars.ResourceServiceRequest)
		if err != nil {
			return nil, err
		}
		bundleEntries = append(bundleEntries, bundleEntry)
	}
	return bundleEntries, nil
}

func buildEntry(fullUrl string, resource interface{}, resourceType string) (fhir_dto.BundleEntry, error) {
	raw, err := json.Marshal(resource)
	if err != nil {
		return fhir_dto.BundleEntry{}, fmt.Errorf("cannot marshal %s resource: %w", resourceType, err)
	}
	return fhir_dto.BundleEntry{
		FullUrl:  fullUrl,
		Resource: raw,
		Request: &fhir_dto.BundleEntryRequest{
			Method: constvars.MethodPost,
			URL:    resourceType,
		},
	}, nil
}

func mapCertaintyToVerificationStatus(certainty string) (string, error) {
	switch certainty {
	case constvars.CertaintyConfirmed:
		return constvars.FhirVerificationStatusConfirmed, nil
	case constvars.CertaintyPresumed:
		return constvars.FhirVerificationStatusProvisional, nil
	}
	return "", fmt.Errorf("unknown diagnosis certainty %q", certainty)
}

func onsetFromDuration(periodStart time.Time, value int, unit string) (time.Time, error) {
	switch unit {
	case constvars.DurationUnitDays:
		return periodStart.AddDate(0, 0, -value), nil
	case constvars.DurationUnitMonths:
		return periodStart.AddDate(0, -value, 0), nil
	case constvars.DurationUnitYears:
		return periodStart.AddDate(-value, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("unknown duration unit %q", unit)
}

func mapSeverityToCriticality(severity string) string {
	if severity == constvars.AllergySeveritySevere {
		return "high"
	}
	return "low"
}

func codeableConcept(system, code, display string) *fhir_dto.CodeableConcept {
	return &fhir_dto.CodeableConcept{
		Coding: []fhir_dto.Coding{{System: system, Code: code, Display: display}},
		Text:   display,
	}
}

func patientReference(encounterContext models.EncounterContext) fhir_dto.Reference {
	return fhir_dto.Reference{Reference: constvars.ResourcePatient + "/" + encounterContext.PatientID}
}

func practitionerReference(encounterContext models.EncounterContext) *fhir_dto.Reference {
	return &fhir_dto.Reference{Reference: constvars.ResourcePractitioner + "/" + encounterContext.PractitionerID}
}
