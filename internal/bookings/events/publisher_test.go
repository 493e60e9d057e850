package events

import (
	"barberbook/pkg/kafka"
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) Publish(ctx context.Context, msg kafka.Message) error {
	w.msgs = append(w.msgs, msg)
	return w.err
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w, "barberbook-api", logger.Discard())

	b := &model.Booking{
		ID:              "b1",
		TenantID:        "shop-1",
		StaffID:         "s1",
		StartTime:       time.Date(2030, 1, 7, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          model.StatusScheduled,
	}
	require.NoError(t, p.Publish(context.Background(), model.NewBookingEvent(model.EventBookingCreated, b, "")))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "shop-1:s1", msg.Key)
	assert.Equal(t, string(model.EventBookingCreated), msg.GetEventType())
	assert.NotEmpty(t, msg.GetEventID())
	assert.Equal(t, "barberbook-api", msg.Headers[kafka.HeaderSource])

	var decoded model.BookingEvent
	require.NoError(t, msg.DecodeValue(&decoded))
	assert.Equal(t, msg.GetEventID(), decoded.EventID)
	assert.Equal(t, "b1", decoded.BookingID)
	assert.True(t, decoded.EndTime.Equal(b.End()))
}

func TestKafkaPublisher_WrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := NewKafkaPublisher(&recordingWriter{err: boom}, "api", logger.Discard())

	err := p.Publish(context.Background(), model.BookingEvent{EventType: model.EventBookingDeleted})
	assert.ErrorIs(t, err, boom)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, NewNoop().Publish(context.Background(), model.BookingEvent{}))
}
