package scheduling

import (
	"barberbook/pkg/model"
	"iter"
	"time"
)

type Slot struct {
	Start           time.Time
	DurationMinutes int
}

func (s Slot) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End()}
}

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two half-open intervals intersect. Touching
// intervals do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

func (i Interval) Within(o Interval) bool {
	return !i.Start.Before(o.Start) && !i.End.After(o.End)
}

func BookingInterval(b *model.Booking) Interval {
	return Interval{Start: b.StartTime, End: b.End()}
}

// ActiveIntervals keeps the bookings that still occupy time, skipping
// excludeID so a booking never conflicts with itself.
func ActiveIntervals(bookings []*model.Booking, excludeID string) []Interval {
	out := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.Status.IsActive() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		out = append(out, BookingInterval(b))
	}
	return out
}

// GenerateSlots yields candidate slots on date every granularity minutes from
// the opening time while the slot still ends by closing time. A day off, or a
// non-positive granularity or duration, yields nothing. The sequence can be
// ranged over any number of times.
func GenerateSlots(date time.Time, cal Calendar, granularity, duration int) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if granularity <= 0 || duration <= 0 {
			return
		}
		w, ok := cal.On(date)
		if !ok {
			return
		}
		for m := w.Open; m+duration <= w.Close; m += granularity {
			if !yield(Slot{Start: atMinute(date, m), DurationMinutes: duration}) {
				return
			}
		}
	}
}
