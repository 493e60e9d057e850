package main

import (
	"barberbook/internal/audit/handler"
	"barberbook/internal/audit/repository"
	"barberbook/pkg/config"
	"barberbook/pkg/kafka"
	kafka_config "barberbook/pkg/kafka/config"
	kafka_middleware "barberbook/pkg/kafka/middleware"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

const ServiceName = "barberbook-audit"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	projector := handler.NewProjector(repository.NewMongoEventRepository(cfg), cfg.Log.Component("audit"))
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.BookingEventsTopic, cfg.AuditConsumerGroup, cfg.BookingEventsDLQTopic, projector.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log.Component("audit")))
		consumer.Use(metrics.Consumer())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Audit projector started", "topic", cfg.BookingEventsTopic, "group_id", cfg.AuditConsumerGroup)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, kafka.ErrConsumerClosed) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}
	cfg.Log.Info("Audit projector stopped", metrics.Snapshot().LogArgs()...)
}
