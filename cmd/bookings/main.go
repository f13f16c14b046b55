package main

import (
	availabilityrepository "stagetime/internal/availability/repository"
	"stagetime/internal/bookings/handler"
	"stagetime/internal/bookings/repository"
	"stagetime/internal/bookings/service"
	"stagetime/internal/bookings/validator"
	"stagetime/pkg/app"
	"stagetime/pkg/config"
	"stagetime/pkg/events"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewMongoSlotLockRepository(cfg)
	unavailabilityRepo := availabilityrepository.NewMongoUnavailabilityRepository(cfg)
	resolver := service.NewConflictResolver(unavailabilityRepo, bookingRepo)

	publisher := initPublisher(cfg)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		resolver,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, transition events disabled")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaEventTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}

	cfg.Log.Info("Kafka publisher initialized", "topic", cfg.KafkaEventTopic)
	return publisher
}
