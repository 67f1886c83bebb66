package main

import (
	"context"
	"encounter-service/internal/app/config"
	"encounter-service/internal/app/delivery/http/controllers"
	"encounter-service/internal/app/delivery/http/middlewares"
	"encounter-service/internal/app/delivery/http/routers"
	"encounter-service/internal/app/drivers/database"
	"encounter-service/internal/app/drivers/logger"
	"encounter-service/internal/app/drivers/messaging"
	"encounter-service/internal/app/services/core/encounters"
	"encounter-service/internal/app/services/fhir_spark/bundle"
	"encounter-service/internal/app/services/shared/auditqueue"
	"encounter-service/internal/app/services/shared/drafts"
	"encounter-service/internal/app/services/shared/redis"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConn := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConn,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	zapLogger := logger.NewZapLogger(bootstrap.DriverConfig, bootstrap.InternalConfig)

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(zapLogger, redisRepository, bootstrap.InternalConfig)
	bootstrap.Router.Use(appMiddlewares.RequestIDMiddleware)
	bootstrap.Router.Use(appMiddlewares.Logging(zapLogger))

	// Draft store
	draftStore := drafts.NewStore()

	// FHIR transaction bundle client
	bundleFhirClient := bundle.NewBundleFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl, zapLogger)

	// Audit queue
	auditEventPublisher, err := auditqueue.NewService(bootstrap.RabbitMQ, zapLogger, bootstrap.InternalConfig.App.RabbitMQAuditQueuePrefetch)
	if err != nil {
		bootstrap.Logger.Fatalf("Failed to initialize audit queue: %v", err)
	}

	// Encounter
	encounterUsecase := encounters.NewEncounterUsecase(draftStore, bundleFhirClient, auditEventPublisher, zapLogger)
	encounterController := controllers.NewEncounterController(zapLogger, encounterUsecase)
	chartController := controllers.NewChartController(zapLogger, encounterUsecase)
	allergyController := controllers.NewAllergyController(zapLogger, encounterUsecase)
	serviceRequestController := controllers.NewServiceRequestController(zapLogger, encounterUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		encounterController,
		chartController,
		allergyController,
		serviceRequestController,
	)
}
