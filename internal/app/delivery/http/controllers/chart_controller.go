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

// ChartController serves the diagnosis ledger and its promoted conditions.
type ChartController struct {
	Log              *zap.Logger
	EncounterUsecase contracts.EncounterUsecase
}

var (
	chartControllerInstance *ChartController
	onceChartController     sync.Once
)

func NewChartController(logger *zap.Logger, encounterUsecase contracts.EncounterUsecase) *ChartController {
	onceChartController.Do(func() {
		instance := &ChartController{
			Log:              logger,
			EncounterUsecase: encounterUsecase,
		}
		chartControllerInstance = instance
	})
	return chartControllerInstance
}

func (ctrl *ChartController) AddDiagnosis(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ChartController.AddDiagnosis requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	ctrl.Log.Info("ChartController.AddDiagnosis called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
	)

	request := new(requests.AddDiagnosis)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("ChartController.AddDiagnosis error decoding JSON",
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

	response, err := ctrl.EncounterUsecase.AddDiagnosis(ctx, encounterID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AddDiagnosisSuccessMessage, response)
}

func (ctrl *ChartController) RemoveDiagnosis(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ChartController.RemoveDiagnosis requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	conceptID := chi.URLParam(r, constvars.URLParamConceptID)
	ctrl.Log.Info("ChartController.RemoveDiagnosis called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.String(constvars.LoggingConceptIDKey, conceptID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.EncounterUsecase.RemoveDiagnosis(ctx, encounterID, conceptID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RemoveDiagnosisSuccessMessage, nil)
}

func (ctrl *ChartController) UpdateCertainty(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ChartController.UpdateCertainty requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	conceptID := chi.URLParam(r, constvars.URLParamConceptID)
	ctrl.Log.Info("ChartController.UpdateCertainty called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.String(constvars.LoggingConceptIDKey, conceptID),
	)

	request := new(requests.UpdateCertainty)
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

	if err := ctrl.EncounterUsecase.UpdateCertainty(ctx, encounterID, conceptID, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateCertaintySuccessMessage, nil)
}

func (ctrl *ChartController) PromoteDiagnosis(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ChartController.PromoteDiagnosis requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	conceptID := chi.URLParam(r, constvars.URLParamConceptID)
	ctrl.Log.Info("ChartController.PromoteDiagnosis called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.String(constvars.LoggingConceptIDKey, conceptID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.EncounterUsecase.PromoteDiagnosis(ctx, encounterID, conceptID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PromoteDiagnosisSuccessMessage, nil)
}

func (ctrl *ChartController) RemoveCondition(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ChartController.RemoveCondition requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	conceptID := chi.URLParam(r, constvars.URLParamConceptID)
	ctrl.Log.Info("ChartController.RemoveCondition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.String(constvars.LoggingConceptIDKey, conceptID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.EncounterUsecase.RemoveCondition(ctx, encounterID, conceptID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RemoveConditionSuccessMessage, nil)
}

func (ctrl *ChartController) UpdateConditionDuration(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ChartController.UpdateConditionDuration requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	conceptID := chi.URLParam(r, constvars.URLParamConceptID)
	ctrl.Log.Info("ChartController.UpdateConditionDuration called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.String(constvars.LoggingConceptIDKey, conceptID),
	)

	request := new(requests.UpdateConditionDuration)
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

	if err := ctrl.EncounterUsecase.UpdateConditionDuration(ctx, encounterID, conceptID, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateDurationSuccessMessage, nil)
}
