package encounters

import (
	"context"
	"encounter-service/internal/app/contracts"
	"encounter-service/internal/app/models"
	"encounter-service/internal/app/services/core/allergies"
	"encounter-service/internal/app/services/core/diagnoses"
	"encounter-service/internal/app/services/shared/drafts"
	"encounter-service/internal/pkg/constvars"
	"encounter-service/internal/pkg/dto/requests"
	"encounter-service/internal/pkg/dto/responses"
	"encounter-service/internal/pkg/exceptions"
	"encounter-service/internal/pkg/fhir_dto"
	"encounter-service/internal/pkg/utils"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

type encounterUsecase struct {
	Store               *drafts.Store
	BundleFhirClient    contracts.BundleFhirClient
	AuditEventPublisher contracts.AuditEventPublisher
	Log                 *zap.Logger
}

var (
	encounterUsecaseInstance contracts.EncounterUsecase
	onceEncounterUsecase     sync.Once
)

func NewEncounterUsecase(
	store *drafts.Store,
	bundleFhirClient contracts.BundleFhirClient,
	auditEventPublisher contracts.AuditEventPublisher,
	logger *zap.Logger,
) contracts.EncounterUsecase {
	onceEncounterUsecase.Do(func() {
		instance := &encounterUsecase{
			Store:               store,
			BundleFhirClient:    bundleFhirClient,
			AuditEventPublisher: auditEventPublisher,
			Log:                 logger,
		}
		encounterUsecaseInstance = instance
	})
	return encounterUsecaseInstance
}

func (uc *encounterUsecase) OpenEncounter(ctx context.Context, request *requests.OpenEncounter) (*responses.EncounterOpened, error) {
	encounterContext := models.EncounterContext{
		PatientID:      request.PatientID,
		PractitionerID: request.PractitionerID,
		LocationID:     request.LocationID,
		Class:          request.Class,
		PeriodStart:    request.PeriodStart,
	}
	draft := uc.Store.Open(encounterContext, request.ExistingConditionIDs)

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("encounterUsecase.OpenEncounter draft opened",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, draft.ID),
	)
	return &responses.EncounterOpened{EncounterID: draft.ID}, nil
}

func (uc *encounterUsecase) GetEncounter(ctx context.Context, encounterID string) (*models.EncounterSnapshot, error) {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return nil, err
	}
	return draft.Snapshot(), nil
}

func (uc *encounterUsecase) DiscardEncounter(ctx context.Context, encounterID string) error {
	if _, err := uc.findDraft(encounterID); err != nil {
		return err
	}
	uc.Store.Delete(encounterID)
	return nil
}

func (uc *encounterUsecase) AddDiagnosis(ctx context.Context, encounterID string, request *requests.AddDiagnosis) (*responses.DiagnosisAdded, error) {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return nil, err
	}
	added, duplicatesExisting := draft.AddDiagnosis(models.CodedValue{Code: request.ConceptID, Display: request.Display})
	if !added {
		return nil, exceptions.ErrDuplicateDiagnosis(nil)
	}
	return &responses.DiagnosisAdded{DuplicateOfExistingCondition: duplicatesExisting}, nil
}

func (uc *encounterUsecase) RemoveDiagnosis(ctx context.Context, encounterID, conceptID string) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	draft.RemoveDiagnosis(conceptID)
	return nil
}

func (uc *encounterUsecase) UpdateCertainty(ctx context.Context, encounterID, conceptID string, request *requests.UpdateCertainty) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	return uc.mapLedgerError(draft.UpdateCertainty(conceptID, request.Certainty))
}

func (uc *encounterUsecase) PromoteDiagnosis(ctx context.Context, encounterID, conceptID string) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	// Promotion refuses both unknown ids and concepts already on the
	// condition list; the ledger reports either as a failed move.
	if !draft.MarkAsCondition(conceptID) {
		return exceptions.ErrEntryNotFound(diagnoses.ErrEntryNotFound)
	}
	return nil
}

func (uc *encounterUsecase) RemoveCondition(ctx context.Context, encounterID, conceptID string) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	draft.RemoveCondition(conceptID)
	return nil
}

func (uc *encounterUsecase) UpdateConditionDuration(ctx context.Context, encounterID, conceptID string, request *requests.UpdateConditionDuration) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	return uc.mapLedgerError(draft.UpdateConditionDuration(conceptID, request.DurationValue, request.DurationUnit))
}

func (uc *encounterUsecase) AddAllergy(ctx context.Context, encounterID string, request *requests.AddAllergy) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	if !draft.AddAllergy(models.CodedValue{Code: request.ConceptID, Display: request.Display}, request.Type) {
		return exceptions.ErrDuplicateAllergy(nil)
	}
	return nil
}

func (uc *encounterUsecase) RemoveAllergy(ctx context.Context, encounterID, conceptID string) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	draft.RemoveAllergy(conceptID)
	return nil
}

func (uc *encounterUsecase) UpdateAllergySeverity(ctx context.Context, encounterID, conceptID string, request *requests.UpdateAllergySeverity) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	return uc.mapLedgerError(draft.UpdateAllergySeverity(conceptID, request.Severity))
}

func (uc *encounterUsecase) UpdateAllergyReactions(ctx context.Context, encounterID, conceptID string, request *requests.UpdateAllergyReactions) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	reactions := make([]models.CodedValue, 0, len(request.Reactions))
	for _, reaction := range request.Reactions {
		reactions = append(reactions, models.CodedValue{Code: reaction.Code, Display: reaction.Display})
	}
	return uc.mapLedgerError(draft.UpdateAllergyReactions(conceptID, reactions))
}

func (uc *encounterUsecase) UpdateAllergyNote(ctx context.Context, encounterID, conceptID string, request *requests.UpdateAllergyNote) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	return uc.mapLedgerError(draft.UpdateAllergyNote(conceptID, request.Note))
}

func (uc *encounterUsecase) AddServiceRequest(ctx context.Context, encounterID string, request *requests.AddServiceRequest) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	if !draft.AddServiceRequest(models.ServiceRequestEntry{ConceptID: request.ConceptID, Display: request.Display}) {
		return exceptions.ErrDuplicateServiceRequest(nil)
	}
	return nil
}

func (uc *encounterUsecase) RemoveServiceRequest(ctx context.Context, encounterID, conceptID string) error {
	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return err
	}
	draft.RemoveServiceRequest(conceptID)
	return nil
}

// SubmitEncounter drives the whole submit lifecycle: gate on readiness and
// validation, assemble one transaction bundle from the frozen snapshot, post
// it, then reset the draft only when the server accepted the batch.
func (uc *encounterUsecase) SubmitEncounter(ctx context.Context, encounterID string) (*responses.EncounterSubmitted, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	draft, err := uc.findDraft(encounterID)
	if err != nil {
		return nil, err
	}
	if !draft.Context.Ready() {
		return nil, exceptions.ErrEncounterNotReady(nil)
	}

	snapshot, err := draft.BeginSubmission()
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrValidationFailed):
			uc.Log.Info("encounterUsecase.SubmitEncounter blocked by validation errors",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEncounterIDKey, encounterID),
			)
			return &responses.EncounterSubmitted{
				EncounterID: encounterID,
				Validated:   false,
				Snapshot:    snapshot,
			}, nil
		case errors.Is(err, drafts.ErrAlreadySubmitted):
			return nil, exceptions.ErrEncounterAlreadySubmitted(err)
		case errors.Is(err, drafts.ErrSubmissionInFlight):
			return nil, exceptions.ErrSubmissionInFlight(err)
		}
		return nil, exceptions.BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevValidationFailed)
	}

	bundle, err := uc.assembleBundle(snapshot)
	if err != nil {
		draft.FinishSubmission(false)
		uc.Log.Error("encounterUsecase.SubmitEncounter bundle assembly failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEncounterIDKey, encounterID),
			zap.Error(err),
		)
		return nil, exceptions.ErrBundleConstruction(err)
	}

	responseBundle, err := uc.BundleFhirClient.PostTransactionBundle(ctx, bundle)
	if err != nil {
		draft.FinishSubmission(false)
		uc.Log.Error("encounterUsecase.SubmitEncounter bundle rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEncounterIDKey, encounterID),
			zap.Error(err),
		)
		return nil, err
	}
	draft.FinishSubmission(true)

	uc.Log.Info("encounterUsecase.SubmitEncounter bundle accepted",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.String(constvars.LoggingBundleIDKey, responseBundle.ID),
	)

	// The batch is already committed on the server; an audit publish failure
	// must not fail the submission.
	event := models.AuditEvent{
		ID:             utils.GenerateAuditEventID(),
		EncounterID:    encounterID,
		BundleID:       responseBundle.ID,
		PractitionerID: snapshot.Context.PractitionerID,
		OccurredAt:     time.Now().UTC(),
	}
	if publishErr := uc.AuditEventPublisher.PublishEncounterSubmitted(ctx, event); publishErr != nil {
		uc.Log.Error("encounterUsecase.SubmitEncounter audit publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEncounterIDKey, encounterID),
			zap.Error(publishErr),
		)
	}

	return &responses.EncounterSubmitted{
		EncounterID: encounterID,
		BundleID:    responseBundle.ID,
		Validated:   true,
	}, nil
}

func (uc *encounterUsecase) assembleBundle(snapshot *models.EncounterSnapshot) (*fhir_dto.FHIRBundle, error) {
	encounterEntry, encounterFullUrl, err := utils.MapEncounterContextToBundleEntry(snapshot.Context)
	if err != nil {
		return nil, err
	}

	entries := []fhir_dto.BundleEntry{encounterEntry}

	diagnosisEntries, err := utils.MapDiagnosesToBundleEntries(snapshot.Diagnoses, snapshot.Context, encounterFullUrl)
	if err != nil {
		return nil, err
	}
	entries = append(entries, diagnosisEntries...)

	conditionEntries, err := utils.MapConditionsToBundleEntries(snapshot.Conditions, snapshot.Context, encounterFullUrl)
	if err != nil {
		return nil, err
	}
	entries = append(entries, conditionEntries...)

	allergyEntries, err := utils.MapAllergiesToBundleEntries(snapshot.Allergies, snapshot.Context, encounterFullUrl)
	if err != nil {
		return nil, err
	}
	entries = append(entries, allergyEntries...)

	serviceRequestEntries, err := utils.MapServiceRequestsToBundleEntries(snapshot.ServiceRequests, snapshot.Context, encounterFullUrl)
	if err != nil {
		return nil, err
	}
	entries = append(entries, serviceRequestEntries...)

	return &fhir_dto.FHIRBundle{
		ResourceType: constvars.ResourceBundle,
		Type:         constvars.FhirBundleTypeTransaction,
		Entry:        entries,
	}, nil
}

func (uc *encounterUsecase) findDraft(encounterID string) (*drafts.Draft, error) {
	if encounterID == "" {
		return nil, exceptions.ErrURLParamMissing(constvars.URLParamEncounterID)
	}
	draft, ok := uc.Store.Get(encounterID)
	if !ok {
		return nil, exceptions.ErrEncounterNotFound(nil)
	}
	return draft, nil
}

func (uc *encounterUsecase) mapLedgerError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, diagnoses.ErrEntryNotFound), errors.Is(err, allergies.ErrEntryNotFound):
		return exceptions.ErrEntryNotFound(err)
	case errors.Is(err, diagnoses.ErrBlankConceptID), errors.Is(err, allergies.ErrBlankConceptID):
		return exceptions.ErrURLParamMissing(constvars.URLParamConceptID)
	case errors.Is(err, diagnoses.ErrInvalidDurationValue):
		return exceptions.ErrInvalidDurationValue(err)
	case errors.Is(err, diagnoses.ErrInvalidDurationUnit):
		return exceptions.ErrInvalidDurationUnit(err)
	}
	return exceptions.BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, err.Error())
}
