package scheduling

import (
	"barberbook/pkg/model"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(id string, start time.Time, minutes int, status model.BookingStatus) *model.Booking {
	return &model.Booking{ID: id, StartTime: start, DurationMinutes: minutes, Status: status}
}

func TestAvailable_ExcludesBookedSlot(t *testing.T) {
	cal := mustCalendar(t, weekdays("09:00", "18:00"))
	bookings := []*model.Booking{booking("b1", at(9, 30), 30, model.StatusConfirmed)}

	slots, err := Available(monday, cal, 30, 30, bookings)
	require.NoError(t, err)

	require.Len(t, slots, 17)
	for _, s := range slots {
		assert.NotEqual(t, at(9, 30), s.Start)
	}
}

func TestAvailable_IgnoresInactiveBookings(t *testing.T) {
	cal := mustCalendar(t, weekdays("09:00", "18:00"))
	bookings := []*model.Booking{
		booking("c", at(9, 0), 60, model.StatusCancelled),
		booking("n", at(10, 0), 60, model.StatusNoShow),
		booking("d", at(11, 0), 60, model.StatusCompleted),
	}

	slots, err := Available(monday, cal, 30, 30, bookings)
	require.NoError(t, err)
	assert.Len(t, slots, 18)
}

func TestAvailable_ClosedDay(t *testing.T) {
	cal := mustCalendar(t, weekdays("09:00", "18:00"))

	slots, err := Available(monday.AddDate(0, 0, 6), cal, 30, 30, nil)
	assert.ErrorIs(t, err, ErrStaffClosed)
	assert.Empty(t, slots)
}

func TestAvailable_NoSlotOverlapsAndAllFit(t *testing.T) {
	cal := mustCalendar(t, weekdays("08:00", "19:00"))
	bookings := []*model.Booking{
		booking("a", at(8, 10), 25, model.StatusScheduled),
		booking("b", at(11, 0), 90, model.StatusConfirmed),
		booking("c", at(15, 45), 20, model.StatusInProgress),
		booking("d", at(18, 30), 45, model.StatusScheduled),
	}

	for _, duration := range []int{15, 30, 45, 60} {
		slots, err := Available(monday, cal, 15, duration, bookings)
		require.NoError(t, err)

		for _, s := range slots {
			assert.False(t, s.End().After(at(19, 0)), "slot %s ends after close", s.Start)
			for _, b := range bookings {
				assert.False(t, s.Interval().Overlaps(BookingInterval(b)),
					"slot %s/%d overlaps booking %s", s.Start.Format("15:04"), duration, b.ID)
			}
		}
	}
}

func TestResolveAvailable_SortedDedupedDeterministic(t *testing.T) {
	closeAt := at(12, 0)
	candidates := []Slot{
		{Start: at(11, 0), DurationMinutes: 30},
		{Start: at(9, 0), DurationMinutes: 30},
		{Start: at(10, 0), DurationMinutes: 30},
		{Start: at(9, 0), DurationMinutes: 30},
		{Start: at(11, 45), DurationMinutes: 30},
	}
	active := []Interval{{Start: at(10, 15), End: at(10, 45)}}

	got := ResolveAvailable(slices.Values(candidates), active, closeAt)

	require.Len(t, got, 2)
	assert.Equal(t, at(9, 0), got[0].Start)
	assert.Equal(t, at(11, 0), got[1].Start)

	slices.Reverse(candidates)
	again := ResolveAvailable(slices.Values(candidates), active, closeAt)
	assert.Equal(t, got, again)
}

func TestResolveAvailable_Idempotent(t *testing.T) {
	cal := mustCalendar(t, weekdays("09:00", "13:00"))
	active := []Interval{
		{Start: at(10, 0), End: at(10, 30)},
		{Start: at(9, 0), End: at(9, 15)},
	}
	closeAt := at(13, 0)

	first := ResolveAvailable(GenerateSlots(monday, cal, 15, 30), active, closeAt)
	second := ResolveAvailable(slices.Values(first), active, closeAt)

	assert.Equal(t, first, second)
}

func TestResolveAvailable_NoCandidates(t *testing.T) {
	got := ResolveAvailable(slices.Values([]Slot(nil)), nil, at(18, 0))
	assert.Empty(t, got)
}
