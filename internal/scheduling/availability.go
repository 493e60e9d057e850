package scheduling

import (
	"barberbook/pkg/model"
	"cmp"
	"iter"
	"slices"
	"time"
)

// ResolveAvailable keeps the candidates that overlap no active interval and end
// by closeAt. The result is sorted by start with at most one slot per start.
func ResolveAvailable(candidates iter.Seq[Slot], active []Interval, closeAt time.Time) []Slot {
	busy := slices.Clone(active)
	slices.SortFunc(busy, func(a, b Interval) int { return a.Start.Compare(b.Start) })

	var free []Slot
	for s := range candidates {
		if s.End().After(closeAt) {
			continue
		}
		if overlapsAny(s.Interval(), busy) {
			continue
		}
		free = append(free, s)
	}

	slices.SortStableFunc(free, func(a, b Slot) int {
		return cmp.Compare(a.Start.UnixNano(), b.Start.UnixNano())
	})
	return slices.CompactFunc(free, func(a, b Slot) bool { return a.Start.Equal(b.Start) })
}

// overlapsAny expects busy sorted by start.
func overlapsAny(iv Interval, busy []Interval) bool {
	for _, b := range busy {
		if !b.Start.Before(iv.End) {
			return false
		}
		if iv.Overlaps(b) {
			return true
		}
	}
	return false
}

// Available lists the free slots of one date for a service of the given
// duration. It returns ErrStaffClosed on a day off.
func Available(date time.Time, cal Calendar, granularity, duration int, bookings []*model.Booking) ([]Slot, error) {
	w, ok := cal.On(date)
	if !ok {
		return nil, ErrStaffClosed
	}
	_, closeAt := w.Bounds(date)
	candidates := GenerateSlots(date, cal, granularity, duration)
	return ResolveAvailable(candidates, ActiveIntervals(bookings, ""), closeAt), nil
}
