package scheduling

import (
	"barberbook/pkg/model"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

func at(hh, mm int) time.Time {
	return time.Date(monday.Year(), monday.Month(), monday.Day(), hh, mm, 0, 0, time.UTC)
}

func mustCalendar(t *testing.T, ws model.WorkSchedule) Calendar {
	t.Helper()
	cal, err := NewCalendar(ws)
	require.NoError(t, err)
	return cal
}

func TestGenerateSlots_FullDay(t *testing.T) {
	cal := mustCalendar(t, weekdays("09:00", "18:00"))

	slots := slices.Collect(GenerateSlots(monday, cal, 30, 30))

	require.Len(t, slots, 18)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(17, 30), slots[17].Start)
	for _, s := range slots {
		assert.False(t, s.End().After(at(18, 0)))
	}
}

func TestGenerateSlots_GranularityIndependentOfDuration(t *testing.T) {
	cal := mustCalendar(t, weekdays("09:00", "11:00"))

	slots := slices.Collect(GenerateSlots(monday, cal, 15, 60))

	var starts []string
	for _, s := range slots {
		starts = append(starts, s.Start.Format("15:04"))
	}
	assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45", "10:00"}, starts)
}

func TestGenerateSlots_Empty(t *testing.T) {
	cal := mustCalendar(t, weekdays("09:00", "09:20"))

	tests := []struct {
		name        string
		date        time.Time
		granularity int
		duration    int
	}{
		{"window shorter than duration", monday, 30, 30},
		{"closed weekday", monday.AddDate(0, 0, 6), 30, 10},
		{"zero granularity", monday, 0, 10},
		{"zero duration", monday, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, slices.Collect(GenerateSlots(tt.date, cal, tt.granularity, tt.duration)))
		})
	}
}

func TestGenerateSlots_Restartable(t *testing.T) {
	cal := mustCalendar(t, weekdays("09:00", "12:00"))
	seq := GenerateSlots(monday, cal, 30, 45)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)

	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: at(10, 0), End: at(10, 30)}

	assert.True(t, base.Overlaps(Interval{Start: at(10, 15), End: at(10, 45)}))
	assert.True(t, base.Overlaps(base))
	assert.True(t, base.Overlaps(Interval{Start: at(9, 0), End: at(11, 0)}))
	assert.False(t, base.Overlaps(Interval{Start: at(10, 30), End: at(11, 0)}), "touching at end")
	assert.False(t, base.Overlaps(Interval{Start: at(9, 30), End: at(10, 0)}), "touching at start")
}

func TestActiveIntervals(t *testing.T) {
	bookings := []*model.Booking{
		{ID: "a", StartTime: at(9, 0), DurationMinutes: 30, Status: model.StatusScheduled},
		{ID: "b", StartTime: at(10, 0), DurationMinutes: 30, Status: model.StatusCancelled},
		{ID: "c", StartTime: at(11, 0), DurationMinutes: 30, Status: model.StatusInProgress},
		nil,
	}

	got := ActiveIntervals(bookings, "c")

	require.Len(t, got, 1)
	assert.Equal(t, at(9, 0), got[0].Start)
	assert.Equal(t, at(9, 30), got[0].End)
}
