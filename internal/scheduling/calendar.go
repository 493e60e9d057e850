// Package scheduling computes staff availability and validates booking
// proposals. It performs no I/O: callers provide the schedule and a snapshot
// of existing bookings.
package scheduling

import (
	"barberbook/pkg/model"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday counts from Monday=0 to Sunday=6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return "weekday(" + strconv.Itoa(int(d)) + ")"
	}
	return model.WeekdayNames[d]
}

// Window is a working interval in minutes after local midnight, Open < Close.
type Window struct {
	Open  int
	Close int
}

func (w Window) Minutes() int {
	return w.Close - w.Open
}

// Bounds returns the window as instants on the given date, in the date's location.
func (w Window) Bounds(date time.Time) (time.Time, time.Time) {
	return atMinute(date, w.Open), atMinute(date, w.Close)
}

// Calendar is a validated weekly schedule.
type Calendar struct {
	days [7]Window
	open [7]bool
}

// NewCalendar validates every day of ws. A single bad day rejects the whole
// schedule; nothing is defaulted.
func NewCalendar(ws model.WorkSchedule) (Calendar, error) {
	var cal Calendar
	var problems []string

	for i, day := range ws.Days() {
		if day == nil {
			continue
		}
		w, err := parseDay(day)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", model.WeekdayNames[i], err))
			continue
		}
		cal.days[i] = w
		cal.open[i] = true
	}

	if len(problems) > 0 {
		return Calendar{}, fmt.Errorf("%w: %s", ErrInvalidSchedule, strings.Join(problems, "; "))
	}
	return cal, nil
}

// CalendarOf builds the calendar of a stored staff schedule. A missing
// schedule means the staff member never works.
func CalendarOf(ws *model.WorkSchedule) (Calendar, error) {
	if ws == nil {
		return Calendar{}, nil
	}
	return NewCalendar(*ws)
}

func parseDay(day *model.DayHours) (Window, error) {
	open, err := ParseClock(day.Start)
	if err != nil {
		return Window{}, fmt.Errorf("start: %w", err)
	}
	closeAt, err := ParseClock(day.End)
	if err != nil {
		return Window{}, fmt.Errorf("end: %w", err)
	}
	if open >= closeAt {
		return Window{}, fmt.Errorf("start %s must be before end %s", day.Start, day.End)
	}
	return Window{Open: open, Close: closeAt}, nil
}

// Hours reports the working window of a weekday, ok is false on a day off.
func (c Calendar) Hours(d Weekday) (Window, bool) {
	if d < Monday || d > Sunday {
		return Window{}, false
	}
	return c.days[d], c.open[d]
}

func (c Calendar) On(date time.Time) (Window, bool) {
	return c.Hours(WeekdayOf(date))
}

// Schedule converts the calendar back to its stored form.
func (c Calendar) Schedule() model.WorkSchedule {
	var hours [7]*model.DayHours
	for i := range c.days {
		if c.open[i] {
			hours[i] = &model.DayHours{Start: FormatClock(c.days[i].Open), End: FormatClock(c.days[i].Close)}
		}
	}
	return model.WorkSchedule{
		Monday:    hours[Monday],
		Tuesday:   hours[Tuesday],
		Wednesday: hours[Wednesday],
		Thursday:  hours[Thursday],
		Friday:    hours[Friday],
		Saturday:  hours[Saturday],
		Sunday:    hours[Sunday],
	}
}

// ParseClock parses "HH:MM" (hours 0-23, minutes 0-59) into minutes after midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 || !digits(hh) || !digits(mm) {
		return 0, fmt.Errorf("%q is not in HH:MM format", s)
	}
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 {
		return 0, fmt.Errorf("hour %d out of range 0-23", h)
	}
	if m > 59 {
		return 0, fmt.Errorf("minute %d out of range 0-59", m)
	}
	return h*60 + m, nil
}

func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DayStart returns local midnight of t.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayBounds returns [midnight, next midnight) of t's local date.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := DayStart(t)
	return start, start.AddDate(0, 0, 1)
}

func atMinute(date time.Time, minute int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, minute, 0, 0, date.Location())
}
