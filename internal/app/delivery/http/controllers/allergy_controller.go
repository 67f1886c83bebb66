package controllers

import (
	"context"
	"encounter-service/internal/app/contracts"
	"encounter-service/internal/pkg/constvars"
	"encounter-service/internal/pkg/dto/requests"
	"encounter-service/internal/pkg/exceptions"
	"encounter-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AllergyController struct {
	Log              *zap.Logger
	EncounterUsecase contracts.EncounterUsecase
}

var (
	allergyControllerInstance *AllergyController
	onceAllergyController     sync.Once
)

func NewAllergyController(logger *zap.Logger, encounterUsecase contracts.EncounterUsecase) *AllergyController {
	onceAllergyController.Do(func() {
		instance := &AllergyController{
			Log:              logger,
			EncounterUsecase: encounterUsecase,
		}
		allergyControllerInstance = instance
	})
	return allergyControllerInstance
}

func (ctrl *AllergyController) AddAllergy(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AllergyController.AddAllergy requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	ctrl.Log.Info("AllergyController.AddAllergy called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
	)

	request := new(requests.AddAllergy)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("AllergyController.AddAllergy error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.EncounterUsecase.AddAllergy(ctx, encounterID, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AddAllergySuccessMessage, nil)
}

func (ctrl *AllergyController) RemoveAllergy(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AllergyController.RemoveAllergy requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	conceptID := chi.URLParam(r, constvars.URLParamConceptID)
	ctrl.Log.Info("AllergyController.RemoveAllergy called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.String(constvars.LoggingConceptIDKey, conceptID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.EncounterUsecase.RemoveAllergy(ctx, encounterID, conceptID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RemoveAllergySuccessMessage, nil)
}

func (ctrl *AllergyController) UpdateSeverity(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AllergyController.UpdateSeverity requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	conceptID := chi.URLParam(r, constvars.URLParamConceptID)
	ctrl.Log.Info("AllergyController.UpdateSeverity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.String(constvars.LoggingConceptIDKey, conceptID),
	)

	request := new(requests.UpdateAllergySeverity)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.EncounterUsecase.UpdateAllergySeverity(ctx, encounterID, conceptID, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAllergySuccessMessage, nil)
}

func (ctrl *AllergyController) UpdateReactions(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AllergyController.UpdateReactions requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	conceptID := chi.URLParam(r, constvars.URLParamConceptID)
	ctrl.Log.Info("AllergyController.UpdateReactions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.String(constvars.LoggingConceptIDKey, conceptID),
	)

	request := new(requests.UpdateAllergyReactions)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.EncounterUsecase.UpdateAllergyReactions(ctx, encounterID, conceptID, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAllergySuccessMessage, nil)
}

func (ctrl *AllergyController) UpdateNote(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AllergyController.UpdateNote requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	conceptID := chi.URLParam(r, constvars.URLParamConceptID)
	ctrl.Log.Info("AllergyController.UpdateNote called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.String(constvars.LoggingConceptIDKey, conceptID),
	)

	request := new(requests.UpdateAllergyNote)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.EncounterUsecase.UpdateAllergyNote(ctx, encounterID, conceptID, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAllergySuccessMessage, nil)
}
