package encounters

import (
	"context"
	"encounter-service/internal/app/models"
	"encounter-service/internal/app/services/shared/drafts"
	"encounter-service/internal/pkg/constvars"
	"encounter-service/internal/pkg/dto/requests"
	"encounter-service/internal/pkg/exceptions"
	"encounter-service/internal/pkg/fhir_dto"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeBundleClient struct {
	bundles  []*fhir_dto.FHIRBundle
	response *fhir_dto.FHIRBundle
	err      error
}

func (f *fakeBundleClient) PostTransactionBundle(ctx context.Context, bundle *fhir_dto.FHIRBundle) (*fhir_dto.FHIRBundle, error) {
	f.bundles = append(f.bundles, bundle)
	if f.err != nil {
		return nil, f.err
	}
	if f.response != nil {
		return f.response, nil
	}
	return &fhir_dto.FHIRBundle{
		ResourceType: constvars.ResourceBundle,
		ID:           "bundle-1",
		Type:         constvars.FhirBundleTypeTransactionResponse,
	}, nil
}

type fakeAuditPublisher struct {
	events []models.AuditEvent
	err    error
}

func (f *fakeAuditPublisher) PublishEncounterSubmitted(ctx context.Context, event models.AuditEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func newTestUsecase(client *fakeBundleClient, publisher *fakeAuditPublisher) *encounterUsecase {
	return &encounterUsecase{
		Store:               drafts.NewStore(),
		BundleFhirClient:    client,
		AuditEventPublisher: publisher,
		Log:                 zap.NewNop(),
	}
}

func openTestEncounter(t *testing.T, uc *encounterUsecase) string {
	t.Helper()
	opened, err := uc.OpenEncounter(context.Background(), &requests.OpenEncounter{
		PatientID:      "patient-1",
		PractitionerID: "practitioner-1",
		Class:          "AMB",
		PeriodStart:    time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	return opened.EncounterID
}

func fillEncounter(t *testing.T, uc *encounterUsecase, encounterID string) {
	t.Helper()
	ctx := context.Background()
	_, err := uc.AddDiagnosis(ctx, encounterID, &requests.AddDiagnosis{ConceptID: "J45", Display: "Asthma"})
	assert.NoError(t, err)
	assert.NoError(t, uc.UpdateCertainty(ctx, encounterID, "J45", &requests.UpdateCertainty{Certainty: constvars.CertaintyConfirmed}))

	_, err = uc.AddDiagnosis(ctx, encounterID, &requests.AddDiagnosis{ConceptID: "E11", Display: "Type 2 diabetes"})
	assert.NoError(t, err)
	assert.NoError(t, uc.PromoteDiagnosis(ctx, encounterID, "E11"))
	value := 2
	unit := constvars.DurationUnitYears
	assert.NoError(t, uc.UpdateConditionDuration(ctx, encounterID, "E11", &requests.UpdateConditionDuration{DurationValue: &value, DurationUnit: &unit}))

	assert.NoError(t, uc.AddAllergy(ctx, encounterID, &requests.AddAllergy{ConceptID: "7980", Display: "Penicillin", Type: constvars.AllergyTypeMedication}))
	assert.NoError(t, uc.UpdateAllergySeverity(ctx, encounterID, "7980", &requests.UpdateAllergySeverity{Severity: constvars.AllergySeveritySevere}))
	assert.NoError(t, uc.UpdateAllergyReactions(ctx, encounterID, "7980", &requests.UpdateAllergyReactions{
		Reactions: []requests.ReactionConcept{{Code: "271807003", Display: "Rash"}},
	}))

	assert.NoError(t, uc.AddServiceRequest(ctx, encounterID, &requests.AddServiceRequest{ConceptID: "cbc", Display: "Complete blood count"}))
}

func assertStatusCode(t *testing.T, err error, expected int) {
	t.Helper()
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, expected, customErr.StatusCode)
}

func TestEncounterLifecycle(t *testing.T) {
	uc := newTestUsecase(&fakeBundleClient{}, &fakeAuditPublisher{})
	encounterID := openTestEncounter(t, uc)

	snapshot, err := uc.GetEncounter(context.Background(), encounterID)
	assert.NoError(t, err)
	assert.Equal(t, "patient-1", snapshot.Context.PatientID)

	assert.NoError(t, uc.DiscardEncounter(context.Background(), encounterID))

	_, err = uc.GetEncounter(context.Background(), encounterID)
	assertStatusCode(t, err, constvars.StatusNotFound)
}

func TestDelegationErrorMapping(t *testing.T) {
	uc := newTestUsecase(&fakeBundleClient{}, &fakeAuditPublisher{})
	encounterID := openTestEncounter(t, uc)
	ctx := context.Background()

	t.Run("duplicate diagnosis maps to conflict", func(t *testing.T) {
		_, err := uc.AddDiagnosis(ctx, encounterID, &requests.AddDiagnosis{ConceptID: "J45", Display: "Asthma"})
		assert.NoError(t, err)
		_, err = uc.AddDiagnosis(ctx, encounterID, &requests.AddDiagnosis{ConceptID: "J45", Display: "Asthma"})
		assertStatusCode(t, err, constvars.StatusConflict)
	})

	t.Run("unknown entry maps to not found", func(t *testing.T) {
		err := uc.UpdateCertainty(ctx, encounterID, "nope", &requests.UpdateCertainty{Certainty: constvars.CertaintyConfirmed})
		assertStatusCode(t, err, constvars.StatusNotFound)
	})

	t.Run("promoting an unknown diagnosis maps to not found", func(t *testing.T) {
		err := uc.PromoteDiagnosis(ctx, encounterID, "nope")
		assertStatusCode(t, err, constvars.StatusNotFound)
	})

	t.Run("invalid duration maps to bad request", func(t *testing.T) {
		assert.NoError(t, uc.PromoteDiagnosis(ctx, encounterID, "J45"))
		value := -1
		err := uc.UpdateConditionDuration(ctx, encounterID, "J45", &requests.UpdateConditionDuration{DurationValue: &value})
		assertStatusCode(t, err, constvars.StatusBadRequest)
	})

	t.Run("duplicate allergy maps to conflict", func(t *testing.T) {
		assert.NoError(t, uc.AddAllergy(ctx, encounterID, &requests.AddAllergy{ConceptID: "7980", Display: "Penicillin", Type: constvars.AllergyTypeMedication}))
		err := uc.AddAllergy(ctx, encounterID, &requests.AddAllergy{ConceptID: "7980", Display: "Penicillin", Type: constvars.AllergyTypeMedication})
		assertStatusCode(t, err, constvars.StatusConflict)
	})

	t.Run("duplicate service request maps to conflict", func(t *testing.T) {
		assert.NoError(t, uc.AddServiceRequest(ctx, encounterID, &requests.AddServiceRequest{ConceptID: "cbc", Display: "Complete blood count"}))
		err := uc.AddServiceRequest(ctx, encounterID, &requests.AddServiceRequest{ConceptID: "cbc", Display: "Complete blood count"})
		assertStatusCode(t, err, constvars.StatusConflict)
	})

	t.Run("unknown encounter maps to not found", func(t *testing.T) {
		_, err := uc.AddDiagnosis(ctx, "nope", &requests.AddDiagnosis{ConceptID: "J45", Display: "Asthma"})
		assertStatusCode(t, err, constvars.StatusNotFound)
	})
}

func TestSubmitEncounterBlockedByValidation(t *testing.T) {
	client := &fakeBundleClient{}
	publisher := &fakeAuditPublisher{}
	uc := newTestUsecase(client, publisher)
	encounterID := openTestEncounter(t, uc)
	ctx := context.Background()

	_, err := uc.AddDiagnosis(ctx, encounterID, &requests.AddDiagnosis{ConceptID: "J45", Display: "Asthma"})
	assert.NoError(t, err)

	response, err := uc.SubmitEncounter(ctx, encounterID)
	assert.NoError(t, err)
	assert.False(t, response.Validated)
	assert.NotNil(t, response.Snapshot)
	assert.Contains(t, response.Snapshot.Diagnoses[0].Errors, constvars.FieldCertainty)

	// Nothing left the process: no bundle posted, no audit event, entries kept.
	assert.Empty(t, client.bundles)
	assert.Empty(t, publisher.events)

	snapshot, err := uc.GetEncounter(ctx, encounterID)
	assert.NoError(t, err)
	assert.Len(t, snapshot.Diagnoses, 1)
}

func TestSubmitEncounterSuccess(t *testing.T) {
	client := &fakeBundleClient{}
	publisher := &fakeAuditPublisher{}
	uc := newTestUsecase(client, publisher)
	encounterID := openTestEncounter(t, uc)
	ctx := context.Background()
	fillEncounter(t, uc, encounterID)

	response, err := uc.SubmitEncounter(ctx, encounterID)
	assert.NoError(t, err)
	assert.True(t, response.Validated)
	assert.Equal(t, "bundle-1", response.BundleID)

	// One transaction bundle: Encounter + diagnosis Condition + promoted
	// Condition + AllergyIntolerance + ServiceRequest.
	assert.Len(t, client.bundles, 1)
	bundle := client.bundles[0]
	assert.Equal(t, constvars.FhirBundleTypeTransaction, bundle.Type)
	assert.Len(t, bundle.Entry, 5)
	for _, entry := range bundle.Entry {
		assert.NotEmpty(t, entry.FullUrl)
		assert.Equal(t, constvars.MethodPost, entry.Request.Method)
	}

	var encounterResource fhir_dto.Encounter
	assert.NoError(t, json.Unmarshal(bundle.Entry[0].Resource, &encounterResource))
	assert.Equal(t, constvars.ResourceEncounter, encounterResource.ResourceType)

	// Audit trail records the accepted bundle.
	assert.Len(t, publisher.events, 1)
	assert.Equal(t, encounterID, publisher.events[0].EncounterID)
	assert.Equal(t, "bundle-1", publisher.events[0].BundleID)
	assert.Equal(t, "practitioner-1", publisher.events[0].PractitionerID)

	// The draft reset and refuses resubmission.
	snapshot, err := uc.GetEncounter(ctx, encounterID)
	assert.NoError(t, err)
	assert.Empty(t, snapshot.Diagnoses)
	assert.True(t, snapshot.Submitted)

	_, err = uc.SubmitEncounter(ctx, encounterID)
	assertStatusCode(t, err, constvars.StatusConflict)
}

func TestSubmitEncounterNetworkFailure(t *testing.T) {
	client := &fakeBundleClient{err: exceptions.ErrSendHTTPRequest(errors.New("connection refused"))}
	publisher := &fakeAuditPublisher{}
	uc := newTestUsecase(client, publisher)
	encounterID := openTestEncounter(t, uc)
	ctx := context.Background()
	fillEncounter(t, uc, encounterID)

	_, err := uc.SubmitEncounter(ctx, encounterID)
	assertStatusCode(t, err, constvars.StatusBadGateway)
	assert.Empty(t, publisher.events)

	// Entries survive for a retry, and the retry succeeds.
	snapshot, getErr := uc.GetEncounter(ctx, encounterID)
	assert.NoError(t, getErr)
	assert.Len(t, snapshot.Diagnoses, 1)
	assert.Len(t, snapshot.Conditions, 1)
	assert.Len(t, snapshot.Allergies, 1)

	client.err = nil
	response, err := uc.SubmitEncounter(ctx, encounterID)
	assert.NoError(t, err)
	assert.True(t, response.Validated)
}

func TestSubmitEncounterAuditFailureDoesNotFailSubmission(t *testing.T) {
	client := &fakeBundleClient{}
	publisher := &fakeAuditPublisher{err: errors.New("broker down")}
	uc := newTestUsecase(client, publisher)
	encounterID := openTestEncounter(t, uc)
	fillEncounter(t, uc, encounterID)

	response, err := uc.SubmitEncounter(context.Background(), encounterID)
	assert.NoError(t, err)
	assert.True(t, response.Validated)
}

func TestSubmitEncounterNotReady(t *testing.T) {
	uc := newTestUsecase(&fakeBundleClient{}, &fakeAuditPublisher{})
	draft := uc.Store.Open(models.EncounterContext{PatientID: "patient-1"}, nil)

	_, err := uc.SubmitEncounter(context.Background(), draft.ID)
	assertStatusCode(t, err, constvars.StatusConflict)
}

func TestSubmitEncounterNotFound(t *testing.T) {
	uc := newTestUsecase(&fakeBundleClient{}, &fakeAuditPublisher{})

	_, err := uc.SubmitEncounter(context.Background(), "nope")
	assertStatusCode(t, err, constvars.StatusNotFound)
}
