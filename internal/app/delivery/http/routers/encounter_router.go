package routers

import (
	"encounter-service/internal/app/delivery/http/controllers"
	"encounter-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachEncounterRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	encounterController *controllers.EncounterController,
	chartController *controllers.ChartController,
	allergyController *controllers.AllergyController,
	serviceRequestController *controllers.ServiceRequestController,
) {
	router.With(middlewares.Authenticate).Post("/", encounterController.OpenEncounter)
	router.With(middlewares.Authenticate).Get("/{encounter_id}", encounterController.GetEncounter)
	router.With(middlewares.Authenticate).Delete("/{encounter_id}", encounterController.DiscardEncounter)
	router.With(middlewares.Authenticate).Post("/{encounter_id}/submit", encounterController.SubmitEncounter)

	router.With(middlewares.Authenticate).Post("/{encounter_id}/diagnoses", chartController.AddDiagnosis)
	router.With(middlewares.Authenticate).Delete("/{encounter_id}/diagnoses/{concept_id}", chartController.RemoveDiagnosis)
	router.With(middlewares.Authenticate).Put("/{encounter_id}/diagnoses/{concept_id}/certainty", chartController.UpdateCertainty)
	router.With(middlewares.Authenticate).Post("/{encounter_id}/diagnoses/{concept_id}/promote", chartController.PromoteDiagnosis)
	router.With(middlewares.Authenticate).Delete("/{encounter_id}/conditions/{concept_id}", chartController.RemoveCondition)
	router.With(middlewares.Authenticate).Put("/{encounter_id}/conditions/{concept_id}/duration", chartController.UpdateConditionDuration)

	router.With(middlewares.Authenticate).Post("/{encounter_id}/allergies", allergyController.AddAllergy)
	router.With(middlewares.Authenticate).Delete("/{encounter_id}/allergies/{concept_id}", allergyController.RemoveAllergy)
	router.With(middlewares.Authenticate).Put("/{encounter_id}/allergies/{concept_id}/severity", allergyController.UpdateSeverity)
	router.With(middlewares.Authenticate).Put("/{encounter_id}/allergies/{concept_id}/reactions", allergyController.UpdateReactions)
	router.With(middlewares.Authenticate).Put("/{encounter_id}/allergies/{concept_id}/note", allergyController.UpdateNote)

	router.With(middlewares.Authenticate).Post("/{encounter_id}/service-requests", serviceRequestController.AddServiceRequest)
	router.With(middlewares.Authenticate).Delete("/{encounter_id}/service-requests/{concept_id}", serviceRequestController.RemoveServiceRequest)
}
