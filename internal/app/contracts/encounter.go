package contracts

import (
	"context"
	"encounter-service/internal/app/models"
	"encounter-service/internal/pkg/dto/requests"
	"encounter-service/internal/pkg/dto/responses"
)

// EncounterUsecase is the whole entry surface of one encounter draft: the
// ledger operations consumed by the presentation layer plus the submission
// coordinator.
type EncounterUsecase interface {
	OpenEncounter(ctx context.Context, request *requests.OpenEncounter) (*responses.EncounterOpened, error)
	GetEncounter(ctx context.Context, encounterID string) (*models.EncounterSnapshot, error)
	DiscardEncounter(ctx context.Context, encounterID string) error

	AddDiagnosis(ctx context.Context, encounterID string, request *requests.AddDiagnosis) (*responses.DiagnosisAdded, error)
	RemoveDiagnosis(ctx context.Context, encounterID, conceptID string) error
	UpdateCertainty(ctx context.Context, encounterID, conceptID string, request *requests.UpdateCertainty) error
	PromoteDiagnosis(ctx context.Context, encounterID, conceptID string) error
	RemoveCondition(ctx context.Context, encounterID, conceptID string) error
	UpdateConditionDuration(ctx context.Context, encounterID, conceptID string, request *requests.UpdateConditionDuration) error

	AddAllergy(ctx context.Context, encounterID string, request *requests.AddAllergy) error
	RemoveAllergy(ctx context.Context, encounterID, conceptID string) error
	UpdateAllergySeverity(ctx context.Context, encounterID, conceptID string, request *requests.UpdateAllergySeverity) error
	UpdateAllergyReactions(ctx context.Context, encounterID, conceptID string, request *requests.UpdateAllergyReactions) error
	UpdateAllergyNote(ctx context.Context, encounterID, conceptID string, request *requests.UpdateAllergyNote) error

	AddServiceRequest(ctx context.Context, encounterID string, request *requests.AddServiceRequest) error
	RemoveServiceRequest(ctx context.Context, encounterID, conceptID string) error

	SubmitEncounter(ctx context.Context, encounterID string) (*responses.EncounterSubmitted, error)
}
