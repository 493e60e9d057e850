package model

import (
	"time"
)

type Booking struct {
	ID              string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	TenantID        string        `json:"tenant_id" bson:"tenant_id" validate:"required,min=1,max=64"`
	ClientID        string        `json:"client_id" bson:"client_id" validate:"required,mongodb"`
	ServiceID       string        `json:"service_id" bson:"service_id" validate:"required,mongodb"`
	StaffID         string        `json:"staff_id" bson:"staff_id" validate:"required,mongodb"`
	StartTime       time.Time     `json:"start_time" bson:"start_time" validate:"required"`
	EndTime         time.Time     `json:"end_time" bson:"end_time" validate:"omitempty"`
	DurationMinutes int           `json:"duration_minutes" bson:"duration_minutes" validate:"required,min=1,max=1440"`
	Status          BookingStatus `json:"status" bson:"status" validate:"required,booking_status"`
	Price           float64       `json:"price" bson:"price" validate:"min=0"`
	Discount        float64       `json:"discount" bson:"discount" validate:"min=0,ltefield=Price"`
	FinalPrice      float64       `json:"final_price" bson:"final_price"`
	PaymentStatus   PaymentStatus `json:"payment_status" bson:"payment_status" validate:"required,oneof=pending paid cancelled"`
	PaymentMethod   PaymentMethod `json:"payment_method,omitempty" bson:"payment_method,omitempty" validate:"omitempty,oneof=cash card pix"`
	Notes           string        `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
	ClientNotes     string        `json:"client_notes,omitempty" bson:"client_notes,omitempty" validate:"omitempty,max=1000"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
}

// End returns the exclusive end of the booking interval.
func (b *Booking) End() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// Reprice recomputes the derived fields after price, discount or timing changes.
func (b *Booking) Reprice() {
	b.FinalPrice = b.Price - b.Discount
	b.EndTime = b.End()
}

// BookingUpdate is a partial update. Nil fields are left untouched.
type BookingUpdate struct {
	StartTime       *time.Time     `json:"start_time,omitempty" validate:"omitempty"`
	DurationMinutes *int           `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=1440"`
	Status          *BookingStatus `json:"status,omitempty" validate:"omitempty,booking_status"`
	Price           *float64       `json:"price,omitempty" validate:"omitempty,min=0"`
	Discount        *float64       `json:"discount,omitempty" validate:"omitempty,min=0"`
	PaymentStatus   *PaymentStatus `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid cancelled"`
	PaymentMethod   *PaymentMethod `json:"payment_method,omitempty" validate:"omitempty,oneof=cash card pix"`
	Notes           *string        `json:"notes,omitempty" validate:"omitempty,max=1000"`
	ClientNotes     *string        `json:"client_notes,omitempty" validate:"omitempty,max=1000"`
}

// Reschedules reports whether the update moves the booking in time.
func (u *BookingUpdate) Reschedules() bool {
	return u.StartTime != nil || u.DurationMinutes != nil
}

type StatusUpdate struct {
	Status BookingStatus `json:"status" validate:"required,booking_status"`
}

// BookingFilter narrows a booking search. From and To bound start_time as [From, To).
type BookingFilter struct {
	Status   BookingStatus
	StaffID  string
	ClientID string
	From     *time.Time
	To       *time.Time
}

type CalendarEvent struct {
	ID            string        `json:"id"`
	Start         time.Time     `json:"start"`
	End           time.Time     `json:"end"`
	Status        BookingStatus `json:"status"`
	StaffID       string        `json:"staff_id"`
	ClientID      string        `json:"client_id"`
	ServiceID     string        `json:"service_id"`
	FinalPrice    float64       `json:"final_price"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

func NewCalendarEvent(b *Booking) CalendarEvent {
	return CalendarEvent{
		ID:            b.ID,
		Start:         b.StartTime,
		End:           b.End(),
		Status:        b.Status,
		StaffID:       b.StaffID,
		ClientID:      b.ClientID,
		ServiceID:     b.ServiceID,
		FinalPrice:    b.FinalPrice,
		PaymentStatus: b.PaymentStatus,
	}
}

type AvailableSlot struct {
	Time     string    `json:"time"`
	DateTime time.Time `json:"datetime"`
	Duration int       `json:"duration"`
}

type Availability struct {
	Date        string          `json:"date"`
	StaffID     string          `json:"staff_id"`
	StaffName   string          `json:"staff_name"`
	ServiceID   string          `json:"service_id"`
	ServiceName string          `json:"service_name"`
	Slots       []AvailableSlot `json:"available_slots"`
	TotalSlots  int             `json:"total_slots"`
	Message     string          `json:"message,omitempty"`
}
