package validator

import (
	"futsal/pkg/logger"
	"futsal/pkg/model"
	"futsal/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validation.New(),
		logger:   log,
	}
}

// ValidateRequest checks what the struct rules cannot see once the permissive
// numbers have been coerced: that price and time were sent at all, and that
// time is a whole number.
func (v *BookingValidator) ValidateRequest(req *model.CreateBookingRequest) error {
	var errs validation.FieldErrors

	if !req.Price.Set {
		errs = append(errs, validation.FieldError{Field: "price", Message: "price is required"})
	}

	if !req.TimeSlot.Set {
		errs = append(errs, validation.FieldError{Field: "time", Message: "time is required"})
	} else if _, ok := req.TimeSlot.Int(); !ok {
		errs = append(errs, validation.FieldError{Field: "time", Message: "time must be a whole number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	return validation.Struct(v.validate, booking)
}
