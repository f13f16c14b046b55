package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

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

type AvailabilityValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAvailabilityValidator(log *logger.Logger) *AvailabilityValidator {
	v := validator.New()

	if err := v.RegisterValidation("calendar_date", ValidateCalendarDate); err != nil {
		log.Fatal("Failed to register 'calendar_date' validator", "error", err)
	}
	if err := v.RegisterValidation("clock_time", ValidateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}

	log.Info("Availability validator initialized successfully")

	return &AvailabilityValidator{
		validate: v,
		logger:   log,
	}
}

func ValidateCalendarDate(fl validator.FieldLevel) bool {
	_, err := model.ParseDate(fl.Field().String())
	return err == nil
}

func ValidateClockTime(fl validator.FieldLevel) bool {
	_, err := model.ParseClock(fl.Field().String())
	return err == nil
}

// ValidateSpec checks a replace-for-date write: every range must carry
// parsable HH:MM bounds with start strictly before end. All-day specs
// must not carry ranges.
func (v *AvailabilityValidator) ValidateSpec(spec *model.UnavailabilitySpec) error {
	if err := v.validate.Struct(spec); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if spec.AllDay && len(spec.Ranges) > 0 {
		return ValidationErrors{
			ValidationError{
				Field:   "Ranges",
				Message: "ranges must be empty when all_day is true",
			},
		}
	}

	for i, cr := range spec.Ranges {
		if _, err := model.ParseTimeRange(cr.StartTime, cr.EndTime); err != nil {
			return ValidationErrors{
				ValidationError{
					Field:   fmt.Sprintf("Ranges[%d]", i),
					Message: "start_time must be before end_time, both HH:MM within one day",
				},
			}
		}
	}

	return nil
}

func (v *AvailabilityValidator) ValidateEntry(entry *model.UnavailabilityEntry) error {
	if err := v.validate.Struct(entry); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *AvailabilityValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "required_if":
			message = fmt.Sprintf("%s is required for partial-day entries", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
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
