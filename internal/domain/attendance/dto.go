package attendance

import (
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/pkg/utils"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/validator"
)

type VerifyPINRequest struct {
	EmployeeCode string `json:"emp_id"`
	PIN          string `json:"pin"`
}

func (r *VerifyPINRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "emp_id", Message: "emp_id is required"})
	}
	if validator.IsEmpty(r.PIN) {
		errs = append(errs, validator.ValidationError{Field: "pin", Message: "pin is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestOTPRequest struct {
	EmployeeCode string `json:"emp_id"`
}

func (r *RequestOTPRequest) Validate() error {
	if validator.IsEmpty(r.EmployeeCode) {
		return validator.ValidationErrors{{Field: "emp_id", Message: "emp_id is required"}}
	}
	return nil
}

type VerifyOTPRequest struct {
	EmployeeCode string `json:"emp_id"`
	OTP          string `json:"otp"`
}

func (r *VerifyOTPRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "emp_id", Message: "emp_id is required"})
	}
	if !validator.IsValidOTP(r.OTP) {
		errs = append(errs, validator.ValidationError{Field: "otp", Message: "otp must be 6 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkAttendanceRequest struct {
	EmployeeCode string   `json:"emp_id"`
	Status       string   `json:"status"`
	Action       string   `json:"action"`
	Timestamp    string   `json:"timestamp"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// Normalize validates the request. An empty action means login, an empty
// timestamp means now.
func (r *MarkAttendanceRequest) Normalize(now time.Time) (Status, Action, time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "emp_id", Message: "emp_id is required"})
	}

	status, ok := ParseStatus(r.Status)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of 'Present', 'Work From Home', 'Absent'"})
	}

	action := Action(r.Action)
	switch action {
	case "":
		action = ActionLogin
	case ActionLogin, ActionLogout:
	default:
		errs = append(errs, validator.ValidationError{Field: "action", Message: "action must be 'login' or 'logout'"})
	}

	at := now
	if r.Timestamp != "" {
		parsed, valid := validator.IsValidDateTime(r.Timestamp)
		if !valid {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be RFC3339"})
		}
		at = parsed
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be provided together"})
	} else if r.Latitude != nil && !validator.IsValidCoordinate(*r.Latitude, *r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "coordinates are out of range"})
	}

	if len(errs) > 0 {
		return "", "", time.Time{}, errs
	}
	return status, action, at, nil
}

type VerificationResponse struct {
	Verified     bool   `json:"verified"`
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"emp_id"`
	Name         string `json:"name"`
}

type OTPResponse struct {
	EmployeeCode string    `json:"emp_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type AttendanceResponse struct {
	Message      string          `json:"message"`
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeCode string          `json:"emp_id"`
	Status       Status          `json:"status"`
	Date         string          `json:"date"`
	LoginTime    *time.Time      `json:"login_time,omitempty"`
	LogoutTime   *time.Time      `json:"logout_time,omitempty"`
	Distance     *utils.Distance `json:"distance,omitempty"`
}

func NewAttendanceResponse(a Attendance, loc *time.Location) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Status:     a.Status,
		Date:       a.Timestamp.In(loc).Format("2006-01-02"),
		LoginTime:  a.LoginTime,
		LogoutTime: a.LogoutTime,
	}
}
