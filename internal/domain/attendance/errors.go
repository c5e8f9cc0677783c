package attendance

import "errors"

var (
	// Marking errors
	ErrOutsideAllowedRadius    = errors.New("you are outside the allowed radius")
	ErrOfficeNotConfigured     = errors.New("office location is not configured for this employee")
	ErrLocationRequired        = errors.New("latitude and longitude are required to mark presence")
	ErrAbsentAlreadyMarked     = errors.New("absence already marked for today")
	ErrAttendanceAlreadyMarked = errors.New("attendance already marked for today")
	ErrNotLoggedIn             = errors.New("you have not logged in today")
	ErrAlreadyLoggedIn         = errors.New("you have already logged in today")
	ErrAlreadyLoggedOut        = errors.New("you have already logged out today")
	ErrLoginAfterLogout        = errors.New("cannot log in again after logging out today")

	// Verification errors
	ErrInvalidOTP        = errors.New("invalid OTP")
	ErrOTPExpired        = errors.New("OTP has expired")
	ErrNoEmailOnFile     = errors.New("employee has no email address on file")
	ErrOTPDeliveryFailed = errors.New("failed to send OTP email")
)
