package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/config"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/attendance"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/notification"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/otp"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// OTPStore issues and checks single-use codes keyed by employee.
type OTPStore interface {
	Issue(key string) (code string, expiresAt time.Time, err error)
	Verify(key, code string) error
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	otps             OTPStore
	notifications    notification.Service
	radiusMeters     float64
	correctionWindow time.Duration
	loc              *time.Location
	now              func() time.Time
}

// VerifyPIN implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) VerifyPIN(ctx context.Context, req attendance.VerifyPINRequest) (attendance.VerificationResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.VerificationResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.VerificationResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PINHash), []byte(req.PIN)); err != nil {
		return attendance.VerificationResponse{}, employee.ErrInvalidPIN
	}

	return verified(emp), nil
}

// RequestOTP implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RequestOTP(ctx context.Context, req attendance.RequestOTPRequest) (attendance.OTPResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.OTPResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.OTPResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.Email == "" {
		return attendance.OTPResponse{}, attendance.ErrNoEmailOnFile
	}

	code, expiresAt, err := s.otps.Issue(emp.ID)
	if err != nil {
		return attendance.OTPResponse{}, fmt.Errorf("failed to issue OTP: %w", err)
	}

	sent := s.notifications.OTPIssued(ctx, notification.OTPMessage{
		EmployeeName:  emp.Name,
		EmployeeEmail: emp.Email,
		Code:          code,
		ExpiresAt:     expiresAt,
	})
	if !sent {
		return attendance.OTPResponse{}, attendance.ErrOTPDeliveryFailed
	}

	return attendance.OTPResponse{EmployeeCode: emp.EmployeeCode, ExpiresAt: expiresAt}, nil
}

// VerifyOTP implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) VerifyOTP(ctx context.Context, req attendance.VerifyOTPRequest) (attendance.VerificationResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.VerificationResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.VerificationResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.otps.Verify(emp.ID, req.OTP); err != nil {
		if errors.Is(err, otp.ErrExpired) {
			return attendance.VerificationResponse{}, attendance.ErrOTPExpired
		}
		return attendance.VerificationResponse{}, attendance.ErrInvalidOTP
	}

	return verified(emp), nil
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	status, action, at, err := req.Normalize(s.now())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var distance *utils.Distance
	if status == attendance.StatusPresent {
		d, err := s.checkGeofence(emp, req.Latitude, req.Longitude)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		distance = &d
	}

	dayStart := dayStart(at, s.loc)
	today, err := s.AttendanceRepository.GetLatestForDay(ctx, emp.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	var (
		record  attendance.Attendance
		message string
	)
	if today != nil {
		record, message, err = s.markExisting(ctx, *today, status, action, at)
	} else {
		record, message, err = s.markFirst(ctx, emp, status, action, at, req.Latitude, req.Longitude)
	}
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance marked", "employee_id", emp.ID, "status", record.Status, "action", action)

	resp := attendance.NewAttendanceResponse(record, s.loc)
	resp.Message = message
	resp.EmployeeCode = emp.EmployeeCode
	resp.Distance = distance
	return resp, nil
}

// markExisting applies a second or later event of the day to today's record.
func (s *AttendanceServiceImpl) markExisting(ctx context.Context, today attendance.Attendance, status attendance.Status, action attendance.Action, at time.Time) (attendance.Attendance, string, error) {
	if today.Status == attendance.StatusAbsent {
		return attendance.Attendance{}, "", attendance.ErrAbsentAlreadyMarked
	}
	if status == attendance.StatusAbsent {
		return attendance.Attendance{}, "", attendance.ErrAttendanceAlreadyMarked
	}

	switch action {
	case attendance.ActionLogout:
		if today.LoginTime == nil {
			return attendance.Attendance{}, "", attendance.ErrNotLoggedIn
		}
		if today.LogoutTime != nil {
			return attendance.Attendance{}, "", attendance.ErrAlreadyLoggedOut
		}
		updated, err := s.AttendanceRepository.UpdateLogoutTime(ctx, today.ID, at)
		if err != nil {
			return attendance.Attendance{}, "", fmt.Errorf("failed to record logout: %w", err)
		}
		return updated, "Logout recorded", nil

	default:
		if today.LogoutTime != nil {
			return attendance.Attendance{}, "", attendance.ErrLoginAfterLogout
		}
		if today.LoginTime != nil && at.Sub(*today.LoginTime) > s.correctionWindow {
			return attendance.Attendance{}, "", attendance.ErrAlreadyLoggedIn
		}
		updated, err := s.AttendanceRepository.UpdateLoginTime(ctx, today.ID, at)
		if err != nil {
			return attendance.Attendance{}, "", fmt.Errorf("failed to correct login time: %w", err)
		}
		return updated, "Login time updated", nil
	}
}

func (s *AttendanceServiceImpl) markFirst(ctx context.Context, emp employee.Employee, status attendance.Status, action attendance.Action, at time.Time, lat, lng *float64) (attendance.Attendance, string, error) {
	if status != attendance.StatusAbsent && action == attendance.ActionLogout {
		return attendance.Attendance{}, "", attendance.ErrNotLoggedIn
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, "", fmt.Errorf("failed to generate attendance id: %w", err)
	}

	record := attendance.Attendance{
		ID:         id.String(),
		EmployeeID: emp.ID,
		Status:     status,
		Timestamp:  at,
		Latitude:   lat,
		Longitude:  lng,
	}
	message := "Absence recorded"
	if status != attendance.StatusAbsent {
		record.LoginTime = &at
		message = "Login recorded"
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.Attendance{}, "", fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, message, nil
}

func (s *AttendanceServiceImpl) checkGeofence(emp employee.Employee, lat, lng *float64) (utils.Distance, error) {
	if lat == nil || lng == nil {
		return utils.Distance{}, attendance.ErrLocationRequired
	}
	if !emp.HasOffice() {
		return utils.Distance{}, attendance.ErrOfficeNotConfigured
	}

	meters := utils.CalculateHaversineDistance(*lat, *lng, *emp.OfficeLatitude, *emp.OfficeLongitude)
	if meters >= s.radiusMeters {
		slog.Warn("Attendance outside office radius", "employee_id", emp.ID, "distance_m", int64(meters))
		return utils.Distance{}, attendance.ErrOutsideAllowedRadius
	}
	return utils.NewDistance(meters), nil
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func verified(emp employee.Employee) attendance.VerificationResponse {
	return attendance.VerificationResponse{
		Verified:     true,
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
	}
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	otps OTPStore,
	notifications notification.Service,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		otps:                 otps,
		notifications:        notifications,
		radiusMeters:         cfg.OfficeRadiusMeters,
		correctionWindow:     cfg.LoginCorrectionWindow,
		loc:                  loc,
		now:                  time.Now,
	}
}
