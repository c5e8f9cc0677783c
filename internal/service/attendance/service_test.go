package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/config"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/attendance"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/notification"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Office at Bengaluru MG Road; the offsets below are roughly 110 m and 1.1 km north.
const (
	officeLat = 12.9756
	officeLng = 77.6050
)

type memAttendanceRepo struct {
	records []attendance.Attendance
}

func (r *memAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.records = append(r.records, a)
	return a, nil
}

func (r *memAttendanceRepo) GetLatestForDay(_ context.Context, employeeID string, dayStart, dayEnd time.Time) (*attendance.Attendance, error) {
	var found []attendance.Attendance
	for _, a := range r.records {
		if a.EmployeeID == employeeID && !a.Timestamp.Before(dayStart) && a.Timestamp.Before(dayEnd) {
			found = append(found, a)
		}
	}
	if len(found) == 0 {
		return nil, nil
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Timestamp.After(found[j].Timestamp) })
	return &found[0], nil
}

func (r *memAttendanceRepo) update(id string, fn func(*attendance.Attendance)) attendance.Attendance {
	for i := range r.records {
		if r.records[i].ID == id {
			fn(&r.records[i])
			return r.records[i]
		}
	}
	return attendance.Attendance{}
}

func (r *memAttendanceRepo) UpdateLoginTime(_ context.Context, id string, at time.Time) (attendance.Attendance, error) {
	return r.update(id, func(a *attendance.Attendance) { a.LoginTime = &at }), nil
}

func (r *memAttendanceRepo) UpdateLogoutTime(_ context.Context, id string, at time.Time) (attendance.Attendance, error) {
	return r.update(id, func(a *attendance.Attendance) { a.LogoutTime = &at }), nil
}

func (r *memAttendanceRepo) ListByRange(_ context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	return r.records, nil
}

type memEmployeeRepo struct {
	employee.EmployeeRepository
	emp employee.Employee
}

func (r *memEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	if code != r.emp.EmployeeCode {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.emp, nil
}

type recordingNotifications struct {
	otps []notification.OTPMessage
	fail bool
}

func (n *recordingNotifications) LeaveDecided(context.Context, notification.LeaveDecision) bool {
	return true
}

func (n *recordingNotifications) OTPIssued(_ context.Context, m notification.OTPMessage) bool {
	n.otps = append(n.otps, m)
	return !n.fail
}

type fixture struct {
	svc   *AttendanceServiceImpl
	repo  *memAttendanceRepo
	notes *recordingNotifications
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pin, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	require.NoError(t, err)

	lat, lng := officeLat, officeLng
	emp := employee.Employee{
		ID:              "emp-1",
		EmployeeCode:    "INNO1001",
		Name:            "Asha",
		Email:           "asha@test.dev",
		PINHash:         string(pin),
		OfficeLatitude:  &lat,
		OfficeLongitude: &lng,
	}

	f := &fixture{
		repo:  &memAttendanceRepo{},
		notes: &recordingNotifications{},
		clock: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
	}
	store := otp.NewStore(3 * time.Minute).WithClock(func() time.Time { return f.clock })
	f.svc = NewAttendanceService(f.repo, &memEmployeeRepo{emp: emp}, store, f.notes, config.AttendanceConfig{
		OfficeRadiusMeters:    350,
		LoginCorrectionWindow: 5 * time.Minute,
	}).(*AttendanceServiceImpl)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) mark(status attendance.Status, action attendance.Action, lat float64) (attendance.AttendanceResponse, error) {
	lng := officeLng
	return f.svc.Mark(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeCode: "INNO1001",
		Status:       string(status),
		Action:       string(action),
		Latitude:     &lat,
		Longitude:    &lng,
	})
}

func TestVerifyPIN(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.VerifyPIN(ctx, attendance.VerifyPINRequest{EmployeeCode: "INNO1001", PIN: "4321"})
	require.NoError(t, err)
	assert.True(t, resp.Verified)
	assert.Equal(t, "Asha", resp.Name)

	_, err = f.svc.VerifyPIN(ctx, attendance.VerifyPINRequest{EmployeeCode: "INNO1001", PIN: "0000"})
	assert.ErrorIs(t, err, employee.ErrInvalidPIN)

	_, err = f.svc.VerifyPIN(ctx, attendance.VerifyPINRequest{EmployeeCode: "NOPE", PIN: "4321"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestOTPFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	issued, err := f.svc.RequestOTP(ctx, attendance.RequestOTPRequest{EmployeeCode: "INNO1001"})
	require.NoError(t, err)
	assert.Equal(t, f.clock.Add(3*time.Minute), issued.ExpiresAt)
	require.Len(t, f.notes.otps, 1)
	code := f.notes.otps[0].Code

	resp, err := f.svc.VerifyOTP(ctx, attendance.VerifyOTPRequest{EmployeeCode: "INNO1001", OTP: code})
	require.NoError(t, err)
	assert.True(t, resp.Verified)

	_, err = f.svc.VerifyOTP(ctx, attendance.VerifyOTPRequest{EmployeeCode: "INNO1001", OTP: code})
	assert.ErrorIs(t, err, attendance.ErrInvalidOTP)
}

func TestOTPExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RequestOTP(ctx, attendance.RequestOTPRequest{EmployeeCode: "INNO1001"})
	require.NoError(t, err)
	f.clock = f.clock.Add(4 * time.Minute)

	_, err = f.svc.VerifyOTP(ctx, attendance.VerifyOTPRequest{EmployeeCode: "INNO1001", OTP: f.notes.otps[0].Code})
	assert.ErrorIs(t, err, attendance.ErrOTPExpired)
}

func TestRequestOTP_DeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.notes.fail = true

	_, err := f.svc.RequestOTP(context.Background(), attendance.RequestOTPRequest{EmployeeCode: "INNO1001"})
	assert.ErrorIs(t, err, attendance.ErrOTPDeliveryFailed)
}

func TestMark_LoginThenLogout(t *testing.T) {
	f := newFixture(t)

	login, err := f.mark(attendance.StatusPresent, attendance.ActionLogin, officeLat+0.001)
	require.NoError(t, err)
	assert.Equal(t, "Login recorded", login.Message)
	require.NotNil(t, login.Distance)
	assert.InDelta(t, 111, login.Distance.Meters, 2)
	assert.Equal(t, "2024-06-03", login.Date)

	f.clock = f.clock.Add(9 * time.Hour)
	logout, err := f.mark(attendance.StatusPresent, attendance.ActionLogout, officeLat)
	require.NoError(t, err)
	assert.Equal(t, "Logout recorded", logout.Message)
	require.NotNil(t, logout.LogoutTime)

	_, err = f.mark(attendance.StatusPresent, attendance.ActionLogout, officeLat)
	assert.ErrorIs(t, err, attendance.ErrAlreadyLoggedOut)
	_, err = f.mark(attendance.StatusPresent, attendance.ActionLogin, officeLat)
	assert.ErrorIs(t, err, attendance.ErrLoginAfterLogout)
}

func TestMark_OutsideRadius(t *testing.T) {
	f := newFixture(t)

	_, err := f.mark(attendance.StatusPresent, attendance.ActionLogin, officeLat+0.01)
	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)
	assert.Empty(t, f.repo.records)
}

func TestMark_WorkFromHomeSkipsGeofence(t *testing.T) {
	f := newFixture(t)

	resp, err := f.mark(attendance.StatusWorkFromHome, "", officeLat+1)
	require.NoError(t, err)
	assert.Nil(t, resp.Distance)
	assert.Equal(t, attendance.StatusWorkFromHome, resp.Status)
}

func TestMark_LoginCorrectionWindow(t *testing.T) {
	f := newFixture(t)

	_, err := f.mark(attendance.StatusPresent, attendance.ActionLogin, officeLat)
	require.NoError(t, err)

	f.clock = f.clock.Add(3 * time.Minute)
	resp, err := f.mark(attendance.StatusPresent, attendance.ActionLogin, officeLat)
	require.NoError(t, err)
	assert.Equal(t, "Login time updated", resp.Message)
	assert.Equal(t, f.clock, *resp.LoginTime)

	f.clock = f.clock.Add(10 * time.Minute)
	_, err = f.mark(attendance.StatusPresent, attendance.ActionLogin, officeLat)
	assert.ErrorIs(t, err, attendance.ErrAlreadyLoggedIn)
}

func TestMark_LogoutWithoutLogin(t *testing.T) {
	f := newFixture(t)

	_, err := f.mark(attendance.StatusPresent, attendance.ActionLogout, officeLat)
	assert.ErrorIs(t, err, attendance.ErrNotLoggedIn)
}

func TestMark_Absent(t *testing.T) {
	f := newFixture(t)

	resp, err := f.mark(attendance.StatusAbsent, "", officeLat+1)
	require.NoError(t, err)
	assert.Equal(t, "Absence recorded", resp.Message)
	assert.Nil(t, resp.LoginTime)
	require.Len(t, f.repo.records, 1)

	_, err = f.mark(attendance.StatusPresent, attendance.ActionLogin, officeLat)
	assert.ErrorIs(t, err, attendance.ErrAbsentAlreadyMarked)
}

func TestMark_AbsentAfterLogin(t *testing.T) {
	f := newFixture(t)

	_, err := f.mark(attendance.StatusPresent, attendance.ActionLogin, officeLat)
	require.NoError(t, err)
	_, err = f.mark(attendance.StatusAbsent, "", officeLat)
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyMarked)
}

func TestMark_NextDayStartsFresh(t *testing.T) {
	f := newFixture(t)

	_, err := f.mark(attendance.StatusAbsent, "", officeLat)
	require.NoError(t, err)

	f.clock = f.clock.AddDate(0, 0, 1)
	_, err = f.mark(attendance.StatusPresent, attendance.ActionLogin, officeLat)
	require.NoError(t, err)
	assert.Len(t, f.repo.records, 2)
}
