package validation

import (
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"errors"
	"testing"
	"time"
)

func validBooking() *model.Booking {
	return &model.Booking{
		TenantID:        "shop-1",
		ClientID:        "507f1f77bcf86cd799439011",
		ServiceID:       "507f1f77bcf86cd799439012",
		StaffID:         "507f1f77bcf86cd799439013",
		StartTime:       time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          model.StatusScheduled,
		Price:           40,
		PaymentStatus:   model.PaymentPending,
	}
}

func TestStruct_Booking(t *testing.T) {
	v := New(logger.Discard())

	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantField string
	}{
		{"valid", func(b *model.Booking) {}, ""},
		{"unknown status", func(b *model.Booking) { b.Status = "approved" }, "status"},
		{"bad staff id", func(b *model.Booking) { b.StaffID = "abc" }, "staff_id"},
		{"zero duration", func(b *model.Booking) { b.DurationMinutes = 0 }, "duration_minutes"},
		{"discount above price", func(b *model.Booking) { b.Discount = 50 }, "discount"},
		{"bad payment method", func(b *model.Booking) { b.PaymentMethod = "bitcoin" }, "payment_method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			err := v.Struct(b)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if _, ok := verrs.Fields()[tt.wantField]; !ok {
				t.Errorf("expected error on %s, got %v", tt.wantField, verrs)
			}
		})
	}
}

func TestStruct_DayHours(t *testing.T) {
	v := New(logger.Discard())

	tests := []struct {
		start, end string
		valid      bool
	}{
		{"09:00", "18:00", true},
		{"9:00", "18:30", true},
		{"24:00", "18:00", false},
		{"09:00", "18:60", false},
		{"0900", "18:00", false},
		{"", "18:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			err := v.Struct(&model.DayHours{Start: tt.start, End: tt.end})
			if (err == nil) != tt.valid {
				t.Errorf("valid = %v, err = %v", tt.valid, err)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{{Field: "name", Message: "name is required"}}
	want := "validation failed: 1 error(s): [name: name is required]"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
	if (ValidationErrors{}).Error() != "" {
		t.Errorf("empty errors should render empty")
	}
}
