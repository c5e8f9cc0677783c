package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/attendance"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/auth"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/leave"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/lop"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingPrincipal):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrTeamLeaderNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrInvalidPIN):
		Unauthorized(w, err.Error())
	case errors.Is(err, employee.ErrNotTeamLeader),
		errors.Is(err, employee.ErrClassificationLocked):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrAlreadyReviewed),
		errors.Is(err, leave.ErrTeamLeaderApprovalRequired),
		errors.Is(err, leave.ErrStatusConflict):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, leave.ErrInvalidAction),
		errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// LOP domain errors
	case errors.Is(err, lop.ErrLOPAlreadyMarked):
		Conflict(w, err.Error())
	case errors.Is(err, lop.ErrInvalidMarkingDate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, lop.ErrLOPRecordNotFound):
		NotFound(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrOfficeNotConfigured),
		errors.Is(err, attendance.ErrLocationRequired),
		errors.Is(err, attendance.ErrNoEmailOnFile):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAbsentAlreadyMarked),
		errors.Is(err, attendance.ErrAttendanceAlreadyMarked),
		errors.Is(err, attendance.ErrNotLoggedIn),
		errors.Is(err, attendance.ErrAlreadyLoggedIn),
		errors.Is(err, attendance.ErrAlreadyLoggedOut),
		errors.Is(err, attendance.ErrLoginAfterLogout):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidOTP),
		errors.Is(err, attendance.ErrOTPExpired):
		Unauthorized(w, err.Error())
	case errors.Is(err, attendance.ErrOTPDeliveryFailed):
		BadGateway(w, err.Error())

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
