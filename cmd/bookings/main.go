package main

import (
	"roost/internal/bookings/handler"
	"roost/internal/bookings/repository"
	"roost/internal/bookings/service"
	"roost/internal/bookings/validator"
	"roost/internal/bookings/worker"
	"roost/internal/notifications"
	propertiesrepo "roost/internal/properties/repository"
	"roost/pkg/app"
	"roost/pkg/config"
	kafka_config "roost/pkg/kafka/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	notifier := initNotifier(cfg)
	defer func() {
		if err := notifier.Close(); err != nil {
			cfg.Log.Error("Failed to close notifier", "error", err)
		}
	}()

	bookingService, bookingRepo := initServices(cfg, notifier)

	completionWorker := worker.NewCompletionWorker(bookingRepo, cfg)
	completionWorker.Start()
	defer completionWorker.Stop()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initNotifier(cfg *config.Config) notifications.Notifier {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	notifier, err := notifications.NewKafkaNotifier(cfg, kafkaCfg, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka notifier", "error", err)
	}
	return notifier
}

func initServices(cfg *config.Config, notifier notifications.Notifier) (service.BookingService, repository.BookingRepository) {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)
	propertyRepo := propertiesrepo.NewMongoPropertyRepository(cfg)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		propertyRepo,
		bookingValidator,
		notifier,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService, bookingRepo
}
