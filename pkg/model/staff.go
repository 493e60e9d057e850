package model

import "time"

// DayHours is one working day in "HH:MM" wall-clock time.
type DayHours struct {
	Start string `json:"start" bson:"start" validate:"required,hhmm"`
	End   string `json:"end" bson:"end" validate:"required,hhmm"`
}

// WorkSchedule is a recurring weekly schedule. A nil day is a day off.
type WorkSchedule struct {
	Monday    *DayHours `json:"monday,omitempty" bson:"monday,omitempty"`
	Tuesday   *DayHours `json:"tuesday,omitempty" bson:"tuesday,omitempty"`
	Wednesday *DayHours `json:"wednesday,omitempty" bson:"wednesday,omitempty"`
	Thursday  *DayHours `json:"thursday,omitempty" bson:"thursday,omitempty"`
	Friday    *DayHours `json:"friday,omitempty" bson:"friday,omitempty"`
	Saturday  *DayHours `json:"saturday,omitempty" bson:"saturday,omitempty"`
	Sunday    *DayHours `json:"sunday,omitempty" bson:"sunday,omitempty"`
}

// Days returns the schedule indexed Monday=0 through Sunday=6.
func (w WorkSchedule) Days() [7]*DayHours {
	return [7]*DayHours{w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday, w.Sunday}
}

var WeekdayNames = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type Staff struct {
	ID              string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	TenantID        string        `json:"tenant_id" bson:"tenant_id" validate:"required,min=1,max=64"`
	Name            string        `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email           string        `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone           string        `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Position        string        `json:"position,omitempty" bson:"position,omitempty" validate:"omitempty,max=100"`
	Specialties     []string      `json:"specialties,omitempty" bson:"specialties,omitempty" validate:"omitempty,max=20,dive,required,max=50"`
	ExperienceYears int           `json:"experience_years" bson:"experience_years" validate:"min=0,max=80"`
	IsActive        bool          `json:"is_active" bson:"is_active"`
	WorkSchedule    *WorkSchedule `json:"work_schedule,omitempty" bson:"work_schedule,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
}

type StaffUpdate struct {
	Name            string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email           string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone           string    `json:"phone,omitempty" validate:"omitempty,e164"`
	Position        *string   `json:"position,omitempty" validate:"omitempty,max=100"`
	Specialties     *[]string `json:"specialties,omitempty" validate:"omitempty,max=20,dive,required,max=50"`
	ExperienceYears *int      `json:"experience_years,omitempty" validate:"omitempty,min=0,max=80"`
	IsActive        *bool     `json:"is_active,omitempty"`
}
