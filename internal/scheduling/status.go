package scheduling

import (
	"barberbook/pkg/model"
	"fmt"
	"time"
)

var transitions = map[model.BookingStatus][]model.BookingStatus{
	model.StatusScheduled:  {model.StatusConfirmed, model.StatusCancelled, model.StatusNoShow},
	model.StatusConfirmed:  {model.StatusInProgress, model.StatusCancelled, model.StatusNoShow},
	model.StatusInProgress: {model.StatusCompleted, model.StatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
// Keeping the same status is allowed.
func CanTransition(from, to model.BookingStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidateTransition(from, to model.BookingStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// InitialStatus reports whether a new booking may be created with status s.
func InitialStatus(s model.BookingStatus) bool {
	return s == model.StatusScheduled || s == model.StatusConfirmed
}

type DeletionAction int

const (
	// DeleteRecord removes the booking document.
	DeleteRecord DeletionAction = iota
	// CancelRecord keeps the document and marks it cancelled.
	CancelRecord
)

// DeletionFor decides what deleting a booking does. Only a booking that never
// took place may be removed outright: completed and in-progress bookings, and
// scheduled or confirmed ones whose start has already passed, are kept for
// history and become cancelled.
func DeletionFor(s model.BookingStatus, start, now time.Time) DeletionAction {
	switch s {
	case model.StatusCompleted, model.StatusInProgress:
		return CancelRecord
	case model.StatusScheduled, model.StatusConfirmed:
		if start.Before(now) {
			return CancelRecord
		}
		return DeleteRecord
	default:
		return DeleteRecord
	}
}
