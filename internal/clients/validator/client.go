package validator

import (
	"barberbook/pkg/model"
	"barberbook/pkg/validation"
)

type ClientValidator struct {
	v *validation.Validator
}

func NewClientValidator(v *validation.Validator) *ClientValidator {
	return &ClientValidator{v: v}
}

func (c *ClientValidator) Validate(client *model.Client) error {
	return c.v.Struct(client)
}

func (c *ClientValidator) ValidateUpdate(updates *model.ClientUpdate) error {
	return c.v.Struct(updates)
}
