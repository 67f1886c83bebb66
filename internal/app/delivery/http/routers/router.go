package routers

import (
	"encounter-service/internal/app/config"
	"encounter-service/internal/app/delivery/http/controllers"
	"encounter-service/internal/app/delivery/http/middlewares"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	encounterController *controllers.EncounterController,
	chartController *controllers.ChartController,
	allergyController *controllers.AllergyController,
	serviceRequestController *controllers.ServiceRequestController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	endpointPrefix := internalConfig.App.EndpointPrefix
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/encounters", func(r chi.Router) {
				attachEncounterRoutes(r, middlewares, encounterController, chartController, allergyController, serviceRequestController)
			})
		})
	})
}
