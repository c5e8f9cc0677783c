package attendance

import (
	"context"
)

// AttendanceService is the kiosk flow: verify the employee, then mark the day.
type AttendanceService interface {
	VerifyPIN(ctx context.Context, req VerifyPINRequest) (VerificationResponse, error)
	RequestOTP(ctx context.Context, req RequestOTPRequest) (OTPResponse, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (VerificationResponse, error)
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
}
