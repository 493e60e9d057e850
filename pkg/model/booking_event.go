package model

import "time"

type BookingEventType string

const (
	EventBookingCreated       BookingEventType = "booking.created"
	EventBookingRescheduled   BookingEventType = "booking.rescheduled"
	EventBookingStatusChanged BookingEventType = "booking.status_changed"
	EventBookingCancelled     BookingEventType = "booking.cancelled"
	EventBookingDeleted       BookingEventType = "booking.deleted"
)

type BookingEvent struct {
	EventID        string           `json:"event_id" bson:"_id"`
	EventType      BookingEventType `json:"event_type" bson:"event_type"`
	TenantID       string           `json:"tenant_id" bson:"tenant_id"`
	BookingID      string           `json:"booking_id" bson:"booking_id"`
	StaffID        string           `json:"staff_id" bson:"staff_id"`
	ClientID       string           `json:"client_id" bson:"client_id"`
	Status         BookingStatus    `json:"status" bson:"status"`
	PreviousStatus BookingStatus    `json:"previous_status,omitempty" bson:"previous_status,omitempty"`
	StartTime      time.Time        `json:"start_time" bson:"start_time"`
	EndTime        time.Time        `json:"end_time" bson:"end_time"`
	OccurredAt     time.Time        `json:"occurred_at" bson:"occurred_at"`
}

func NewBookingEvent(eventType BookingEventType, b *Booking, previous BookingStatus) BookingEvent {
	return BookingEvent{
		EventType:      eventType,
		TenantID:       b.TenantID,
		BookingID:      b.ID,
		StaffID:        b.StaffID,
		ClientID:       b.ClientID,
		Status:         b.Status,
		PreviousStatus: previous,
		StartTime:      b.StartTime,
		EndTime:        b.End(),
		OccurredAt:     time.Now().UTC(),
	}
}
