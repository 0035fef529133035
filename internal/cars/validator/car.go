package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "rentwheels/pkg/errors"
	"rentwheels/pkg/model"
)

type CarValidator struct {
	validate *validator.Validate
}

func NewCarValidator() *CarValidator {
	return &CarValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *CarValidator) ValidateCar(car *model.Car) error {
	if err := v.validate.Struct(car); err != nil {
		return apperrors.Validation("Car listing validation failed", translateValidationErrors(err))
	}
	return nil
}

// translateValidationErrors converts validator errors into a field keyed map
// suitable for the error response body.
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
		case "min":
			details[fieldErr.Field()] = fmt.Sprintf("must be at least %s characters", fieldErr.Param())
		case "max":
			details[fieldErr.Field()] = fmt.Sprintf("must be at most %s characters", fieldErr.Param())
		case "gt":
			details[fieldErr.Field()] = fmt.Sprintf("must be greater than %s", fieldErr.Param())
		case "gte":
			details[fieldErr.Field()] = fmt.Sprintf("must be at least %s", fieldErr.Param())
		case "url":
			details[fieldErr.Field()] = "must be a valid URL"
		case "mongodb":
			details[fieldErr.Field()] = "must be a valid object id"
		default:
			details[fieldErr.Field()] = fmt.Sprintf("failed validation: %s", fieldErr.Tag())
		}
	}

	return details
}
