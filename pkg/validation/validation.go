// Package validation wraps go-playground/validator with the project's custom
// tags and field-level error translation.
package validation

import (
	apperrors "barberbook/pkg/errors"
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Fields renders the errors as the details map of an API error.
func (v ValidationErrors) Fields() map[string]any {
	out := make(map[string]any, len(v))
	for _, e := range v {
		out[e.Field] = e.Message
	}
	return out
}

type Validator struct {
	validate *validator.Validate
}

func New(log *logger.Logger) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	custom := map[string]validator.Func{
		"hhmm":           validateHHMM,
		"booking_status": validateBookingStatus,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register validator", "tag", tag, "error", err)
		}
	}

	return &Validator{validate: v}
}

// Struct validates s and returns ValidationErrors for field failures.
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func validateHHMM(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(mm)
	return err == nil && m >= 0 && m <= 59
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	return model.BookingStatus(fl.Field().String()).IsValid()
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid id", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be a phone number in E.164 format", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param())
		case "ltefield":
			message = fmt.Sprintf("%s must not exceed %s", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("%s must be a date in %s format", err.Field(), err.Param())
		case "hhmm":
			message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
		case "booking_status":
			message = fmt.Sprintf("%s must be one of scheduled, confirmed, in_progress, completed, cancelled, no_show", err.Field())
		}

		out = append(out, ValidationError{
			Field:   fieldPath(err),
			Message: message,
		})
	}

	return out
}

// fieldPath drops the root struct name, e.g. "Booking.start_time" -> "start_time".
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return err.Field()
}

// ToAppError converts a validation failure into a 422 API error carrying the
// per-field messages.
func ToAppError(message string, err error) *apperrors.AppError {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Fields())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
