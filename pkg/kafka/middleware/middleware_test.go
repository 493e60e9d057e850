package kafka_middleware

import (
	"barberbook/pkg/kafka"
	"barberbook/pkg/logger"
	"context"
	"errors"
	"testing"
)

func TestMetrics_CountsOutcomes(t *testing.T) {
	m := NewMetrics()
	publish := m.Producer()
	consume := m.Consumer()
	ctx := context.Background()
	boom := errors.New("boom")

	ok := func(context.Context, kafka.Message) error { return nil }
	fail := func(context.Context, kafka.Message) error { return boom }

	_ = publish(ctx, kafka.Message{}, ok)
	_ = publish(ctx, kafka.Message{}, ok)
	if err := publish(ctx, kafka.Message{}, fail); !errors.Is(err, boom) {
		t.Fatalf("producer middleware error = %v, want boom", err)
	}
	_ = consume(ctx, kafka.Message{}, ok)
	_ = consume(ctx, kafka.Message{}, fail)

	s := m.Snapshot()
	if s.Published != 2 || s.PublishFailed != 1 {
		t.Errorf("publish counters = %d/%d, want 2/1", s.Published, s.PublishFailed)
	}
	if s.Consumed != 1 || s.ConsumeFailed != 1 {
		t.Errorf("consume counters = %d/%d, want 1/1", s.Consumed, s.ConsumeFailed)
	}
	if len(s.LogArgs())%2 != 0 {
		t.Errorf("LogArgs() must be key/value pairs")
	}
}

func TestLogging_PassesErrorThrough(t *testing.T) {
	log := logger.Discard()
	boom := errors.New("boom")
	msg := kafka.Message{Headers: map[string]string{kafka.HeaderEventID: "e1"}}

	err := LoggingConsumerMiddleware(log)(context.Background(), msg, func(context.Context, kafka.Message) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("consumer logging error = %v, want boom", err)
	}

	err = LoggingProducerMiddleware(log)(context.Background(), msg, func(context.Context, kafka.Message) error { return nil })
	if err != nil {
		t.Errorf("producer logging error = %v, want nil", err)
	}
}
