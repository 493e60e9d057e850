package scheduling

import (
	"barberbook/pkg/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdays(start, end string) model.WorkSchedule {
	d := func() *model.DayHours { return &model.DayHours{Start: start, End: end} }
	return model.WorkSchedule{Monday: d(), Tuesday: d(), Wednesday: d(), Thursday: d(), Friday: d()}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"9:30", 570, false},
		{"23:59", 1439, false},
		{" 18:00 ", 1080, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"1200", 0, true},
		{"ab:cd", 0, true},
		{"-1:00", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestWeekdayOf(t *testing.T) {
	monday := time.Date(2030, 1, 7, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, Monday, WeekdayOf(monday))
	assert.Equal(t, Sunday, WeekdayOf(monday.AddDate(0, 0, 6)))
	assert.Equal(t, "saturday", WeekdayOf(monday.AddDate(0, 0, 5)).String())
}

func TestNewCalendar(t *testing.T) {
	cal, err := NewCalendar(weekdays("09:00", "18:00"))
	require.NoError(t, err)

	w, ok := cal.Hours(Monday)
	require.True(t, ok)
	assert.Equal(t, Window{Open: 540, Close: 1080}, w)
	assert.Equal(t, 540, w.Minutes())

	_, ok = cal.Hours(Sunday)
	assert.False(t, ok, "unset day must be closed")

	_, ok = cal.Hours(Weekday(9))
	assert.False(t, ok)
}

func TestNewCalendar_RejectsWholeSchedule(t *testing.T) {
	tests := []struct {
		name string
		ws   model.WorkSchedule
	}{
		{"start after end", model.WorkSchedule{Monday: &model.DayHours{Start: "18:00", End: "09:00"}}},
		{"start equals end", model.WorkSchedule{Monday: &model.DayHours{Start: "09:00", End: "09:00"}}},
		{"bad hour", model.WorkSchedule{Tuesday: &model.DayHours{Start: "25:00", End: "26:00"}}},
		{"bad minute", model.WorkSchedule{Friday: &model.DayHours{Start: "09:00", End: "17:61"}}},
		{
			"one bad day among good ones",
			model.WorkSchedule{
				Monday:   &model.DayHours{Start: "09:00", End: "18:00"},
				Saturday: &model.DayHours{Start: "10:00", End: "xx"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal, err := NewCalendar(tt.ws)
			require.ErrorIs(t, err, ErrInvalidSchedule)
			for d := Monday; d <= Sunday; d++ {
				_, ok := cal.Hours(d)
				assert.False(t, ok, "rejected schedule must not keep any day")
			}
		})
	}
}

func TestCalendar_ScheduleRoundTrip(t *testing.T) {
	ws := weekdays("8:00", "12:30")
	cal, err := NewCalendar(ws)
	require.NoError(t, err)

	out := cal.Schedule()
	assert.Equal(t, "08:00", out.Monday.Start)
	assert.Equal(t, "12:30", out.Friday.End)
	assert.Nil(t, out.Sunday)
}

func TestCalendarOf_NilSchedule(t *testing.T) {
	cal, err := CalendarOf(nil)
	require.NoError(t, err)
	_, ok := cal.Hours(Monday)
	assert.False(t, ok)
}

func TestWindowBounds_UsesDateLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	date := time.Date(2030, 1, 7, 0, 0, 0, 0, loc)
	open, closeAt := Window{Open: 540, Close: 1080}.Bounds(date)

	assert.Equal(t, time.Date(2030, 1, 7, 9, 0, 0, 0, loc), open)
	assert.Equal(t, time.Date(2030, 1, 7, 18, 0, 0, 0, loc), closeAt)
}
