package validator

import (
	"barberbook/pkg/model"
	"barberbook/pkg/validation"
)

type StaffValidator struct {
	v *validation.Validator
}

func NewStaffValidator(v *validation.Validator) *StaffValidator {
	return &StaffValidator{v: v}
}

func (s *StaffValidator) Validate(staff *model.Staff) error {
	return s.v.Struct(staff)
}

func (s *StaffValidator) ValidateUpdate(updates *model.StaffUpdate) error {
	return s.v.Struct(updates)
}
