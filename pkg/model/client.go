package model

import "time"

type Client struct {
	ID                string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	TenantID          string     `json:"tenant_id" bson:"tenant_id" validate:"required,min=1,max=64"`
	Name              string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email             string     `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone             string     `json:"phone" bson:"phone" validate:"required,e164"`
	BirthDate         string     `json:"birth_date,omitempty" bson:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes             string     `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
	IsActive          bool       `json:"is_active" bson:"is_active"`
	TotalAppointments int        `json:"total_appointments" bson:"total_appointments"`
	TotalSpent        float64    `json:"total_spent" bson:"total_spent"`
	LastVisit         *time.Time `json:"last_visit,omitempty" bson:"last_visit,omitempty"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" bson:"updated_at"`
}

type ClientUpdate struct {
	Name      string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email     string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string  `json:"phone,omitempty" validate:"omitempty,e164"`
	BirthDate *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// VisitRecord is applied to a client's statistics when a booking is made.
type VisitRecord struct {
	Spent float64
	At    time.Time
}
