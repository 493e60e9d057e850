package validator

import (
	"barberbook/pkg/model"
	"barberbook/pkg/validation"
)

type BookingValidator struct {
	v *validation.Validator
}

func NewBookingValidator(v *validation.Validator) *BookingValidator {
	return &BookingValidator{v: v}
}

func (b *BookingValidator) Validate(booking *model.Booking) error {
	return b.v.Struct(booking)
}

func (b *BookingValidator) ValidateUpdate(updates *model.BookingUpdate) error {
	return b.v.Struct(updates)
}

func (b *BookingValidator) ValidateStatus(update *model.StatusUpdate) error {
	return b.v.Struct(update)
}
