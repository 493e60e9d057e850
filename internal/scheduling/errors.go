package scheduling

import "errors"

var (
	ErrInvalidSchedule = errors.New("invalid schedule")

	ErrInvalidSlotRequest = errors.New("invalid slot request")

	ErrStaffClosed = errors.New("staff member does not work on this day")

	ErrSlotUnavailable = errors.New("slot unavailable")

	ErrInvalidTransition = errors.New("invalid status transition")
)
