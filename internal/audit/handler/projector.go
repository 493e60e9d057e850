// Package handler projects booking events from Kafka into the audit trail.
package handler

import (
	"barberbook/internal/audit/repository"
	"barberbook/internal/bookings/events"
	"barberbook/pkg/kafka"
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"context"
	"errors"
	"fmt"
)

var ErrMalformedEvent = errors.New("malformed booking event")

type Projector struct {
	repo repository.EventRepository
	log  *logger.Logger
}

func NewProjector(repo repository.EventRepository, log *logger.Logger) *Projector {
	return &Projector{repo: repo, log: log}
}

// Handle is a kafka.MessageHandler. Bad payloads fail permanently and are
// parked; store failures are transient so the consumer retries them.
// Redelivered events are acknowledged without a second write.
func (p *Projector) Handle(ctx context.Context, msg kafka.Message) error {
	if v := msg.Headers[kafka.HeaderSchemaVersion]; v != "" && v != events.SchemaVersion {
		return kafka.NewPermanentError("unsupported schema version "+v, ErrMalformedEvent)
	}

	var event model.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return err
	}
	if event.EventID == "" {
		event.EventID = msg.GetEventID()
	}
	if err := validate(&event); err != nil {
		return kafka.NewPermanentError(err.Error(), ErrMalformedEvent)
	}

	inserted, err := p.repo.Insert(ctx, &event)
	if err != nil {
		return kafka.NewTransientError("failed to record booking event", err)
	}
	if !inserted {
		p.log.Debug("Duplicate booking event ignored", "event_id", event.EventID)
		return nil
	}

	p.log.Info("Booking event recorded",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"tenant_id", event.TenantID,
		"booking_id", event.BookingID,
	)
	return nil
}

func validate(event *model.BookingEvent) error {
	switch {
	case event.EventID == "":
		return errors.New("event_id is required")
	case event.TenantID == "":
		return fmt.Errorf("event %s: tenant_id is required", event.EventID)
	case event.BookingID == "":
		return fmt.Errorf("event %s: booking_id is required", event.EventID)
	}
	switch event.EventType {
	case model.EventBookingCreated, model.EventBookingRescheduled, model.EventBookingStatusChanged,
		model.EventBookingCancelled, model.EventBookingDeleted:
		return nil
	default:
		return fmt.Errorf("event %s: unknown event_type %q", event.EventID, event.EventType)
	}
}
