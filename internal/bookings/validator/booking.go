package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	availabilityvalidator "stagetime/internal/availability/validator"
	"stagetime/pkg/logger"
	"stagetime/pkg/model"
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

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("calendar_date", availabilityvalidator.ValidateCalendarDate); err != nil {
		log.Fatal("Failed to register 'calendar_date' validator", "error", err)
	}
	if err := v.RegisterValidation("clock_time", availabilityvalidator.ValidateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// Validate checks a submitted booking. Beyond the struct tags it rejects
// self-bookings and windows where start is not before end.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if booking.OwnerID == booking.CounterpartyID {
		return ValidationErrors{
			ValidationError{
				Field:   "CounterpartyID",
				Message: "counterparty must differ from the owner",
			},
		}
	}

	if booking.StartTime != "" || booking.EndTime != "" {
		if _, err := model.ParseTimeRange(booking.StartTime, booking.EndTime); err != nil {
			return ValidationErrors{
				ValidationError{
					Field:   "StartTime",
					Message: "start_time must be before end_time, both HH:MM within one day",
				},
			}
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "required_with":
			message = fmt.Sprintf("%s is required when the other bound is set", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "calendar_date":
			message = fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", err.Field())
		case "clock_time":
			message = fmt.Sprintf("%s must be a clock time in HH:MM 24-hour format", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
