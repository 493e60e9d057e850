package kafka

import (
	"barberbook/pkg/logger"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func (w *fakeWriter) written() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.messages...)
}

// fakeReader serves queued messages, then reports io.EOF.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	if len(r.queue) == 0 {
		return kafka.Message{}, io.EOF
	}
	next := r.queue[0]
	r.queue = r.queue[1:]
	return next, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func headerValue(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestMessageBuilder(t *testing.T) {
	msg, err := NewMessage().
		WithKey("shop-1:staff-1").
		WithValue(map[string]string{"booking_id": "b1"}).
		WithEventType("booking.created").
		WithTenant("shop-1").
		Build()
	require.NoError(t, err)

	assert.NotEmpty(t, msg.GetEventID())
	assert.Equal(t, "shop-1", msg.GetTenantID())
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])

	var decoded map[string]string
	require.NoError(t, msg.DecodeValue(&decoded))
	assert.Equal(t, "b1", decoded["booking_id"])

	_, err = NewMessage().WithValue("x").Build()
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	assert.Error(t, err)
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{}
	for range 12 {
		msg.IncrementRetryCount()
	}
	assert.Equal(t, 12, msg.GetRetryCount())
	assert.Equal(t, "12", msg.Headers[HeaderRetryCount])
}

func TestDecodeValue_IsPermanent(t *testing.T) {
	msg := Message{Value: []byte("{not json")}
	var v map[string]any
	err := msg.DecodeValue(&v)
	assert.Equal(t, ErrorTypePermanent, ClassifyError(err))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"deadline", context.DeadlineExceeded, ErrorTypeTransient},
		{"refused", errors.New("dial tcp: Connection Refused"), ErrorTypeTransient},
		{"typed transient", NewTransientError("store down", errors.New("x")), ErrorTypeTransient},
		{"typed permanent", NewPermanentError("bad", nil), ErrorTypePermanent},
		{"unknown text", errors.New("schema mismatch"), ErrorTypePermanent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}

	assert.False(t, ShouldRetry(context.DeadlineExceeded, 3, 3))
	assert.True(t, ShouldRetry(context.DeadlineExceeded, 2, 3))
}

func TestProducer_PublishAndMiddlewareOrder(t *testing.T) {
	writer := &fakeWriter{}
	p := newProducer(writer, nil, "booking-events", "", logger.Discard())

	var order []string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		order = append(order, "outer")
		return next(ctx, msg)
	})
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		order = append(order, "inner")
		assert.Equal(t, "booking-events", msg.Topic)
		return next(ctx, msg)
	})

	msg, err := NewMessage().WithKey("k").WithRawValue([]byte(`{}`)).WithEventID("e1").Build()
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), msg))

	assert.Equal(t, []string{"outer", "inner"}, order)
	written := writer.written()
	require.Len(t, written, 1)
	assert.Equal(t, "e1", headerValue(written[0], HeaderEventID))

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
	assert.ErrorIs(t, p.Publish(context.Background(), msg), ErrProducerClosed)
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writer := &fakeWriter{err: errors.New("leader not available")}
	dlq := &fakeWriter{}
	p := newProducer(writer, dlq, "booking-events", "booking-events-dlq", logger.Discard())

	msg, err := NewMessage().WithKey("k").WithRawValue([]byte(`{}`)).Build()
	require.NoError(t, err)

	err = p.Publish(context.Background(), msg)
	require.Error(t, err)

	parked := dlq.written()
	require.Len(t, parked, 1)
	assert.Equal(t, "booking-events", headerValue(parked[0], HeaderOriginalTopic))
	assert.Equal(t, "leader not available", headerValue(parked[0], HeaderDLQError))
	_, leaked := msg.Headers[HeaderDLQError]
	assert.False(t, leaked)
}

func TestConsumer_RetriesTransientThenCommits(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{{Offset: 7, Value: []byte(`{}`)}}}
	attempts := 0
	handler := func(ctx context.Context, msg Message) error {
		attempts++
		if attempts < 3 {
			return NewTransientError("store down", nil)
		}
		return nil
	}
	c := newConsumer(reader, nil, "booking-events", "audit", handler, logger.Discard())
	c.maxRetries = 3

	err := c.Start(context.Background())
	assert.ErrorIs(t, err, ErrConsumerClosed)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []int64{7}, reader.committed)
}

func TestConsumer_PermanentFailureParksAndCommits(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{
		{Offset: 1, Value: []byte(`bad`)},
		{Offset: 2, Value: []byte(`{}`)},
	}}
	dlq := &fakeWriter{}
	var handled []int64
	handler := func(ctx context.Context, msg Message) error {
		handled = append(handled, msg.Offset)
		var v map[string]any
		return msg.DecodeValue(&v)
	}
	c := newConsumer(reader, dlq, "booking-events", "audit", handler, logger.Discard())
	c.maxRetries = 5

	_ = c.Start(context.Background())

	assert.Equal(t, []int64{1, 2}, handled)
	assert.Equal(t, []int64{1, 2}, reader.committed)
	parked := dlq.written()
	require.Len(t, parked, 1)
	assert.Equal(t, "audit", headerValue(parked[0], HeaderDLQConsumerGroup))
}

func TestConsumer_CancelStopsCleanly(t *testing.T) {
	reader := &fakeReader{}
	c := newConsumer(reader, nil, "t", "g", func(context.Context, Message) error { return nil }, logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Start(context.Background()), ErrConsumerClosed)
}
