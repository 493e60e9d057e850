package validator

import (
	"barberbook/pkg/model"
	"barberbook/pkg/validation"
)

type ServiceValidator struct {
	v *validation.Validator
}

func NewServiceValidator(v *validation.Validator) *ServiceValidator {
	return &ServiceValidator{v: v}
}

func (s *ServiceValidator) Validate(service *model.Service) error {
	return s.v.Struct(service)
}

func (s *ServiceValidator) ValidateUpdate(updates *model.ServiceUpdate) error {
	return s.v.Struct(updates)
}
