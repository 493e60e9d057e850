package main

import (
	"barberbook/internal/bookings/events"
	bookinghandler "barberbook/internal/bookings/handler"
	"barberbook/internal/bookings/locker"
	bookingrepo "barberbook/internal/bookings/repository"
	bookingservice "barberbook/internal/bookings/service"
	bookingvalidator "barberbook/internal/bookings/validator"
	cataloghandler "barberbook/internal/catalog/handler"
	catalogrepo "barberbook/internal/catalog/repository"
	catalogservice "barberbook/internal/catalog/service"
	catalogvalidator "barberbook/internal/catalog/validator"
	clienthandler "barberbook/internal/clients/handler"
	clientrepo "barberbook/internal/clients/repository"
	clientservice "barberbook/internal/clients/service"
	clientvalidator "barberbook/internal/clients/validator"
	staffhandler "barberbook/internal/staff/handler"
	staffrepo "barberbook/internal/staff/repository"
	staffservice "barberbook/internal/staff/service"
	staffvalidator "barberbook/internal/staff/validator"
	"barberbook/pkg/app"
	"barberbook/pkg/config"
	"barberbook/pkg/contracts"
	"barberbook/pkg/kafka"
	kafka_config "barberbook/pkg/kafka/config"
	kafka_middleware "barberbook/pkg/kafka/middleware"
	"barberbook/pkg/validation"
	"context"
)

const ServiceName = "barberbook-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	if cfg.LockBackend == config.LockBackendRedis {
		cfg.SetRedis()
	}

	serverApp := app.NewApplication(cfg)
	publisher := initPublisher(cfg, serverApp)
	serverApp.SetApp(initHandlers(cfg, publisher))
	serverApp.Run()
}

func initHandlers(cfg *config.Config, publisher events.Publisher) contracts.Handler {
	v := validation.New(cfg.Log)

	staffRepo := staffrepo.NewMongoStaffRepository(cfg)
	catalogRepo := catalogrepo.NewMongoServiceRepository(cfg)
	clientRepo := clientrepo.NewMongoClientRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)

	staffSvc := staffservice.NewStaffService(staffRepo, staffvalidator.NewStaffValidator(v), cfg)
	catalogSvc := catalogservice.NewCatalogService(catalogRepo, catalogvalidator.NewServiceValidator(v), cfg)
	clientSvc := clientservice.NewClientService(clientRepo, clientvalidator.NewClientValidator(v), cfg)
	bookingSvc := bookingservice.NewBookingService(bookingservice.Dependencies{
		Bookings:  bookingRepo,
		Staff:     staffRepo,
		Services:  catalogRepo,
		Clients:   clientRepo,
		Locker:    initLocker(cfg),
		Events:    publisher,
		Validator: bookingvalidator.NewBookingValidator(v),
	}, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName, "lock_backend", cfg.LockBackend)

	return contracts.Handlers{
		staffhandler.NewStaffHandler(staffSvc, cfg.Log),
		cataloghandler.NewServiceHandler(catalogSvc, cfg.Log),
		clienthandler.NewClientHandler(clientSvc, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Location(), cfg.Log),
	}
}

func initLocker(cfg *config.Config) *locker.Locker {
	opts := locker.Options{TTL: cfg.LockTTL, Wait: cfg.LockWait}
	log := cfg.Log.Component("locker")

	switch cfg.LockBackend {
	case config.LockBackendRedis:
		return locker.NewRedis(cfg.Client.Redis, opts, log)
	case config.LockBackendMemory:
		log.Warn("In-process slot locks only serialize bookings within this instance")
		return locker.NewMemory(opts, log)
	default:
		return locker.NewMongo(bookingrepo.NewBookingLockRepository(cfg), opts, log)
	}
}

func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events are not published")
		return events.NewNoop()
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log.Component("booking_events")))
		producer.Use(metrics.Producer())
	}

	serverApp.OnShutdown(func(context.Context) {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
		cfg.Log.Info("Kafka producer closed", metrics.Snapshot().LogArgs()...)
	})

	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log.Component("booking_events"))
}
