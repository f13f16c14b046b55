package main

import (
	"stagetime/internal/availability/handler"
	"stagetime/internal/availability/repository"
	"stagetime/internal/availability/service"
	"stagetime/internal/availability/validator"
	bookingsrepository "stagetime/internal/bookings/repository"
	"stagetime/pkg/app"
	"stagetime/pkg/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Availability service")
	availabilityService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAvailabilityHandler(availabilityService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AvailabilityService {
	availabilityValidator := validator.NewAvailabilityValidator(cfg.Log)
	unavailabilityRepo := repository.NewMongoUnavailabilityRepository(cfg)
	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)
	availabilityService := service.NewAvailabilityService(
		unavailabilityRepo,
		bookingRepo,
		availabilityValidator,
		cfg,
	)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService
}
