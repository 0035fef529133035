package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "rentwheels/pkg/errors"
	"rentwheels/pkg/model"
)

type BookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator() *BookingValidator {
	return &BookingValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *BookingValidator) ValidateBooking(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		return apperrors.Validation("Booking validation failed", translateValidationErrors(err))
	}
	return nil
}

func (v *BookingValidator) ValidateStatusUpdate(update *model.StatusUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		return apperrors.Validation("Status update validation failed", translateValidationErrors(err))
	}
	return nil
}

func translateValidationErrors(err error) map[string]any {
	details := make(map[string]any)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		details["error"] = err.Error()
		return details
	}

	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required":
			details[fieldErr.Field()] = "is required"
		case "email":
			details[fieldErr.Field()] = "must be a valid email address"
		case "max":
			details[fieldErr.Field()] = fmt.Sprintf("must be at most %s characters", fieldErr.Param())
		case "gte":
			details[fieldErr.Field()] = fmt.Sprintf("must be at least %s", fieldErr.Param())
		case "mongodb":
			details[fieldErr.Field()] = "must be a valid object id"
		default:
			details[fieldErr.Field()] = fmt.Sprintf("failed validation: %s", fieldErr.Tag())
		}
	}

	return details
}
