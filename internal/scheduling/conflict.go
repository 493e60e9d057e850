package scheduling

import (
	"barberbook/pkg/model"
	"fmt"
	"time"
)

// Proposal is a requested booking. ID is set when rescheduling an existing
// booking so that it is not compared against itself.
type Proposal struct {
	ID              string
	Start           time.Time
	DurationMinutes int
}

func (p Proposal) Interval() Interval {
	return Interval{Start: p.Start, End: p.Start.Add(time.Duration(p.DurationMinutes) * time.Minute)}
}

// OverlapError names the booking a proposal collides with.
type OverlapError struct {
	BookingID string
	Start     time.Time
	End       time.Time
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%v: overlaps booking %s (%s - %s)", ErrSlotUnavailable, e.BookingID,
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *OverlapError) Unwrap() error {
	return ErrSlotUnavailable
}

// CheckProposal validates p against the calendar and the existing bookings of
// the same staff member. Checks run in order: past start, day off, working
// window, overlap. The first failure is returned.
func CheckProposal(now time.Time, cal Calendar, p Proposal, existing []*model.Booking) error {
	if p.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidSlotRequest, p.DurationMinutes)
	}
	if p.Start.Before(now) {
		return fmt.Errorf("%w: start %s is in the past", ErrInvalidSlotRequest, p.Start.Format(time.RFC3339))
	}

	w, ok := cal.On(p.Start)
	if !ok {
		return fmt.Errorf("%w: %s", ErrStaffClosed, WeekdayOf(p.Start))
	}

	iv := p.Interval()
	open, closeAt := w.Bounds(p.Start)
	if !iv.Within(Interval{Start: open, End: closeAt}) {
		return fmt.Errorf("%w: outside working hours %s-%s", ErrSlotUnavailable, FormatClock(w.Open), FormatClock(w.Close))
	}

	for _, b := range existing {
		if b == nil || !b.Status.IsActive() || (p.ID != "" && b.ID == p.ID) {
			continue
		}
		other := BookingInterval(b)
		if iv.Overlaps(other) {
			return &OverlapError{BookingID: b.ID, Start: other.Start, End: other.End}
		}
	}
	return nil
}
