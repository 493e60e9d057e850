package model

import (
	"testing"
	"time"
)

func TestBooking_Reprice(t *testing.T) {
	start := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: start, DurationMinutes: 45, Price: 50, Discount: 12.5}

	b.Reprice()

	if b.FinalPrice != 37.5 {
		t.Errorf("FinalPrice = %v, want 37.5", b.FinalPrice)
	}
	if !b.EndTime.Equal(start.Add(45 * time.Minute)) {
		t.Errorf("EndTime = %v", b.EndTime)
	}
}

func TestBookingStatus_IsActive(t *testing.T) {
	tests := []struct {
		status BookingStatus
		active bool
	}{
		{StatusScheduled, true},
		{StatusConfirmed, true},
		{StatusInProgress, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
		{StatusNoShow, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if tt.status.IsActive() != tt.active {
				t.Errorf("IsActive() = %v, want %v", tt.status.IsActive(), tt.active)
			}
			if !tt.status.IsValid() {
				t.Errorf("%s should be valid", tt.status)
			}
		})
	}

	if BookingStatus("approved").IsValid() {
		t.Errorf("unknown status must not be valid")
	}
}

func TestWorkSchedule_Days(t *testing.T) {
	mon := &DayHours{Start: "09:00", End: "18:00"}
	sun := &DayHours{Start: "10:00", End: "14:00"}
	days := WorkSchedule{Monday: mon, Sunday: sun}.Days()

	if days[0] != mon || days[6] != sun {
		t.Errorf("Days() must index Monday=0 and Sunday=6")
	}
	for i := 1; i < 6; i++ {
		if days[i] != nil {
			t.Errorf("day %d should be closed", i)
		}
	}
}

func TestBookingUpdate_Reschedules(t *testing.T) {
	d := 30
	if (&BookingUpdate{}).Reschedules() {
		t.Errorf("empty update should not reschedule")
	}
	if !(&BookingUpdate{DurationMinutes: &d}).Reschedules() {
		t.Errorf("duration change should reschedule")
	}
}
