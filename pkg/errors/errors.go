package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInvalidInput = "INVALID_INPUT"

	// Scheduling verdicts and guards.
	CodeOwnerUnavailableAllDay    = "OWNER_UNAVAILABLE_ALL_DAY"
	CodeOwnerUnavailableTimeRange = "OWNER_UNAVAILABLE_TIME_RANGE"
	CodeDoubleBooking             = "DOUBLE_BOOKING"
	CodeInvalidTransition         = "INVALID_TRANSITION"
	CodePrematureCompletion       = "PREMATURE_COMPLETION"
	CodeConcurrentModification    = "CONCURRENT_MODIFICATION"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) ToJSON() []byte {
	response := ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
	data, _ := json.Marshal(response)
	return data
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// OwnerUnavailableAllDay rejects a booking against an all-day block.
func OwnerUnavailableAllDay(ownerID, date string) *AppError {
	return &AppError{
		Code:       CodeOwnerUnavailableAllDay,
		Message:    "Owner is unavailable for the whole day",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"owner_id": ownerID,
			"date":     date,
		},
	}
}

// OwnerUnavailableTimeRange rejects a booking overlapping a partial-day
// block; the conflicting range is named so the caller can explain it.
func OwnerUnavailableTimeRange(ownerID, date, conflictingRange string) *AppError {
	return &AppError{
		Code:       CodeOwnerUnavailableTimeRange,
		Message:    "Owner is unavailable during the requested time",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"owner_id":          ownerID,
			"date":              date,
			"conflicting_range": conflictingRange,
		},
	}
}

// DoubleBooking rejects a booking overlapping an already-confirmed one.
func DoubleBooking(ownerID, date, existingBookingID string) *AppError {
	return &AppError{
		Code:       CodeDoubleBooking,
		Message:    "Another confirmed booking overlaps the requested time",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"owner_id":            ownerID,
			"date":                date,
			"existing_booking_id": existingBookingID,
		},
	}
}

func InvalidTransition(bookingID, from, to string) *AppError {
	return &AppError{
		Code:       CodeInvalidTransition,
		Message:    fmt.Sprintf("Cannot transition booking from %s to %s", from, to),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"booking_id":       bookingID,
			"current_status":   from,
			"requested_status": to,
		},
	}
}

func PrematureCompletion(bookingID, eventDate string) *AppError {
	return &AppError{
		Code:       CodePrematureCompletion,
		Message:    "Booking cannot be completed before its event date has passed",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"booking_id": bookingID,
			"event_date": eventDate,
		},
	}
}

// ConcurrentModification marks a transient transaction conflict; callers
// retry the whole operation with fresh reads.
func ConcurrentModification(ownerID, date string) *AppError {
	return &AppError{
		Code:       CodeConcurrentModification,
		Message:    "Operation conflicted with a concurrent update, please retry",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"owner_id": ownerID,
			"date":     date,
		},
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
