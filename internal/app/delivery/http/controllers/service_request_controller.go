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

type ServiceRequestController struct {
	Log              *zap.Logger
	EncounterUsecase contracts.EncounterUsecase
}

var (
	serviceRequestControllerInstance *ServiceRequestController
	onceServiceRequestController     sync.Once
)

func NewServiceRequestController(logger *zap.Logger, encounterUsecase contracts.EncounterUsecase) *ServiceRequestController {
	onceServiceRequestController.Do(func() {
		instance := &ServiceRequestController{
			Log:              logger,
			EncounterUsecase: encounterUsecase,
		}
		serviceRequestControllerInstance = instance
	})
	return serviceRequestControllerInstance
}

func (ctrl *ServiceRequestController) AddServiceRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ServiceRequestController.AddServiceRequest requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	ctrl.Log.Info("ServiceRequestController.AddServiceRequest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
	)

	request := new(requests.AddServiceRequest)
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

	if err := ctrl.EncounterUsecase.AddServiceRequest(ctx, encounterID, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AddServiceRequestSuccessMessage, nil)
}

func (ctrl *ServiceRequestController) RemoveServiceRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ServiceRequestController.RemoveServiceRequest requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	conceptID := chi.URLParam(r, constvars.URLParamConceptID)
	ctrl.Log.Info("ServiceRequestController.RemoveServiceRequest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, encounterID),
		zap.String(constvars.LoggingConceptIDKey, conceptID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.EncounterUsecase.RemoveServiceRequest(ctx, encounterID, conceptID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RemoveServiceRequestSuccessMessage, nil)
}
