package main

import (
	"roost/internal/properties/handler"
	"roost/internal/properties/repository"
	"roost/internal/properties/service"
	"roost/internal/properties/validator"
	"roost/pkg/app"
	"roost/pkg/config"
)

const ServiceName = "properties"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Properties service")
	propertyService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewPropertyHandler(propertyService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.PropertyService {
	propertyValidator := validator.NewPropertyValidator()
	propertyRepo := repository.NewMongoPropertyRepository(cfg)
	propertyService := service.NewPropertyService(
		propertyRepo,
		propertyValidator,
		cfg,
	)

	cfg.Log.Info("Property service initialized", "database", cfg.MongoDatabaseName)
	return propertyService
}
