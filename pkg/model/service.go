package model

import "time"

// Service is an entry of a tenant's catalog, e.g. a haircut.
type Service struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	TenantID        string    `json:"tenant_id" bson:"tenant_id" validate:"required,min=1,max=64"`
	Name            string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=1000"`
	Price           float64   `json:"price" bson:"price" validate:"min=0"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes" validate:"required,min=1,max=1440"`
	Category        string    `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,max=50"`
	IsActive        bool      `json:"is_active" bson:"is_active"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

type ServiceUpdate struct {
	Name            string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=1440"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,max=50"`
	IsActive        *bool    `json:"is_active,omitempty"`
}
