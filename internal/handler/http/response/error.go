package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/correction"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, user.ErrEmployeeIDRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrCollaboratorUnavailable):
		ServiceUnavailable(w, "Verification service unavailable, please try again")
	case errors.Is(err, attendance.ErrIdentityNotRecognized):
		UnprocessableEntity(w, "Face not recognized")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		UnprocessableEntity(w, "Check-out cannot be earlier than check-in")
	case errors.Is(err, attendance.ErrFutureSweepDate):
		UnprocessableEntity(w, "Cannot run absence sweep for a future date")
	case errors.Is(err, attendance.ErrSweepInProgress):
		Conflict(w, "An absence sweep for this date is already running")

	// Calendar domain errors
	case errors.Is(err, calendar.ErrHolidayExists):
		Conflict(w, "A holiday is already registered for this date")
	case errors.Is(err, calendar.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")

	// Correction domain errors
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, "Correction request not found")
	case errors.Is(err, correction.ErrCorrectionAlreadyReviewed):
		Conflict(w, "Correction request already reviewed")
	case errors.Is(err, correction.ErrCorrectionAlreadyApproved):
		Conflict(w, "An approved correction already exists for this date")
	case errors.Is(err, correction.ErrSelfReview):
		Forbidden(w, "You cannot review your own correction request")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
