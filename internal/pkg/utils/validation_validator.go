package utils

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("appointment_status", validateAppointmentStatus)
	validate.RegisterValidation("clock_time", validateClockTime)
	validate.RegisterValidation("date_only", validateDateOnly)
	validate.RegisterValidation("object_id", validateObjectID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Only terminal statuses can be requested by clients.
func validateAppointmentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "COMPLETED" || value == "CANCELED"
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func validateObjectID(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[a-fA-F0-9]{24}$`)
	return re.MatchString(fl.Field().String())
}
