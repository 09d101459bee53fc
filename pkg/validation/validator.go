package validation

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance with domain validators
// registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("iso_date", validateISODate)
		_ = validate.RegisterValidation("trip_days", validateTripDays)
	})
	return validate
}

// ValidateStruct validates a struct against its validation tags
func ValidateStruct(s interface{}) error {
	if err := Validator().Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return NewValidationError(errs)
		}
		return err
	}
	return nil
}

// validateISODate accepts dates in YYYY-MM-DD form. Empty values pass so the
// tag composes with omitempty on optional fields.
func validateISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// validateTripDays bounds a trip length to something a human would book.
func validateTripDays(fl validator.FieldLevel) bool {
	days := fl.Field().Int()
	return days >= 1 && days <= 90
}
