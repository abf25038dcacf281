package main

import (
	bookingshandler "futsal/internal/bookings/handler"
	bookingsrepo "futsal/internal/bookings/repository"
	"futsal/internal/bookings/scheduler"
	bookingsservice "futsal/internal/bookings/service"
	bookingsvalidator "futsal/internal/bookings/validator"
	noteshandler "futsal/internal/notes/handler"
	notesrepo "futsal/internal/notes/repository"
	notesservice "futsal/internal/notes/service"
	notesvalidator "futsal/internal/notes/validator"
	usershandler "futsal/internal/users/handler"
	usersrepo "futsal/internal/users/repository"
	usersservice "futsal/internal/users/service"
	usersvalidator "futsal/internal/users/validator"
	"futsal/pkg/auth"
	"futsal/pkg/config"
	"futsal/pkg/contracts"
	"futsal/pkg/events"
	"futsal/pkg/kafka"
	kafka_middleware "futsal/pkg/kafka/middleware"
)

type components struct {
	bookings  bookingsservice.BookingService
	handlers  []contracts.Handler
	scheduler contracts.Worker
}

func wire(cfg *config.Config, publisher events.Publisher) components {
	jwt := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer)

	userService := usersservice.NewUserService(
		usersrepo.NewMongoUserRepository(cfg),
		usersvalidator.NewUserValidator(cfg.Log),
		jwt,
		cfg,
	)
	bookingService := bookingsservice.NewBookingService(
		bookingsrepo.NewMongoBookingRepository(cfg),
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	noteService := notesservice.NewNoteService(
		notesrepo.NewMongoNoteRepository(cfg),
		notesvalidator.NewNoteValidator(cfg.Log),
		cfg,
	)
	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return components{
		bookings: bookingService,
		handlers: []contracts.Handler{
			usershandler.NewUserHandler(userService, jwt, cfg.Log),
			bookingshandler.NewBookingHandler(bookingService, jwt, cfg.Log),
			noteshandler.NewNoteHandler(noteService, jwt, cfg.Log),
		},
		scheduler: scheduler.NewExpiryScheduler(
			bookingService,
			cfg.PurgeClock,
			cfg.Location,
			cfg.PurgeOnStartup,
			cfg.Log,
		),
	}
}

// newPublisher returns the Kafka booking event publisher, or a no-op one when
// no brokers are configured.
func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.Kafka == nil {
		cfg.Log.Info("Kafka not configured, booking events disabled")
		return events.NopPublisher{}
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.BookingEventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if cfg.Kafka.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	return events.NewKafkaPublisher(
		producer,
		events.BreakerSettings{
			MaxFailures: uint32(cfg.Kafka.BreakerMaxFailures),
			OpenTimeout: cfg.Kafka.BreakerOpenTimeout,
		},
		ServiceName,
		cfg.Log,
	)
}
