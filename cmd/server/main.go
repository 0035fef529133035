package main

import (
	"rentwheels/internal/auth"
	authhandler "rentwheels/internal/auth/handler"
	"rentwheels/internal/bookings/events"
	bookinghandler "rentwheels/internal/bookings/handler"
	bookingrepository "rentwheels/internal/bookings/repository"
	bookingservice "rentwheels/internal/bookings/service"
	bookingvalidator "rentwheels/internal/bookings/validator"
	carhandler "rentwheels/internal/cars/handler"
	carrepository "rentwheels/internal/cars/repository"
	carservice "rentwheels/internal/cars/service"
	carvalidator "rentwheels/internal/cars/validator"
	"rentwheels/pkg/app"
	"rentwheels/pkg/config"
	dbmongo "rentwheels/pkg/db/mongo"
	"rentwheels/pkg/kafka"
	kafkaconfig "rentwheels/pkg/kafka/config"
)

const ServiceName = "rentwheels-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)

	verifier := auth.NewTokenVerifier(cfg.JWTSecret, cfg.SessionTTL)

	carRepo := carrepository.NewCarRepository(db)
	carSvc := carservice.NewCarService(carRepo, carvalidator.NewCarValidator(), cfg.Log)

	publisher := setBookingEvents(cfg)

	txManager := dbmongo.NewTransactionManager(cfg.Client.Mongo)
	bookingRepo := bookingrepository.NewBookingRepository(db, txManager)
	bookingSvc := bookingservice.NewBookingService(
		bookingRepo,
		carRepo,
		bookingvalidator.NewBookingValidator(),
		publisher,
		cfg.Log,
	)

	application := app.NewApplication(cfg)
	application.SetApp(verifier,
		authhandler.NewSessionHandler(verifier, cfg.IsProduction(), cfg.Log),
		carhandler.NewCarHandler(carSvc, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
	)
	application.Run()
}

// setBookingEvents builds the Kafka publisher when eventing is enabled. A
// nil publisher silently drops events.
func setBookingEvents(cfg *config.Config) *events.Publisher {
	if !cfg.BookingEventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return nil
	}

	kafkaCfg := kafkaconfig.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka.LoggingMiddleware(cfg.Log))

	cfg.Log.Info("Booking events enabled", "topic", cfg.BookingEventsTopic)
	return events.NewPublisher(producer, cfg.Log)
}
