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

type EncounterController struct {
	Log              *zap.Logger
	EncounterUsecase contracts.EncounterUsecase
}

var (
	encounterControllerInstance *EncounterController
	onceEncounterController     sync.Once
)

func NewEncounterController(logger *zap.Logger, encounterUsecase contracts.EncounterUsecase) *EncounterController {
	onceEncounterController.Do(func() {
		instance := &EncounterController{
			Log:              logger,
			EncounterUsecase: encounterUsecase,
		}
		encounterControllerInstance = instance
	})
	return encounterControllerInstance
}

func (ctrl *EncounterController) OpenEncounter(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EncounterController.OpenEncounter requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("EncounterController.OpenEncounter called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.OpenEncounter)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("EncounterController.OpenEncounter error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("EncounterController.OpenEncounter validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.EncounterUsecase.OpenEncounter(ctx, request)
	if err != nil {
		ctrl.Log.Error("EncounterController.OpenEncounter error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.OpenEncounterSuccessMessage, response)
}

func (ctrl *EncounterController) GetEncounter(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EncounterController.GetEncounter requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	ctrl.Log.Info("EncounterController.GetEncounter called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.EncounterUsecase.GetEncounter(ctx, encounterID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetEncounterSuccessMessage, response)
}

func (ctrl *EncounterController) DiscardEncounter(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EncounterController.DiscardEncounter requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	ctrl.Log.Info("EncounterController.DiscardEncounter called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.EncounterUsecase.DiscardEncounter(ctx, encounterID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DiscardEncounterSuccessMessage, nil)
}

func (ctrl *EncounterController) SubmitEncounter(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EncounterController.SubmitEncounter requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	ctrl.Log.Info("EncounterController.SubmitEncounter called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := ctrl.EncounterUsecase.SubmitEncounter(ctx, encounterID)
	if err != nil {
		ctrl.Log.Error("EncounterController.SubmitEncounter error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// A blocked submission is not an error: the snapshot in the payload
	// carries the per-entry validation errors for inline display.
	if !response.Validated {
		utils.BuildFailureResponse(w, constvars.StatusUnprocessableEntity, constvars.SubmitEncounterValidationFailedMsg, response)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitEncounterSuccessMessage, response)
}
