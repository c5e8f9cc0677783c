package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/attendance"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/leave"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/lop"
	"github.com/attendance-marker/attendance-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newID(t *testing.T) string {
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

func createEmployee(t *testing.T, repo employee.EmployeeRepository, code string, tl *string) employee.Employee {
	t.Helper()
	emp, err := repo.Create(context.Background(), employee.Employee{
		ID:             newID(t),
		EmployeeCode:   code,
		Name:           "Employee " + code,
		Department:     "Engineering",
		Email:          code + "@test.dev",
		Classification: employee.ClassificationFullTime,
		TeamLeaderID:   tl,
		PINHash:        "hash",
	})
	require.NoError(t, err)
	return emp
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	tl := createEmployee(t, repo, "TL001", nil)
	emp := createEmployee(t, repo, "EMP001", &tl.ID)

	got, err := repo.GetByCode(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, emp.ID, got.ID)
	require.NotNil(t, got.TeamLeaderID)
	assert.Equal(t, tl.ID, *got.TeamLeaderID)
	assert.Equal(t, employee.ClassificationFullTime, got.Classification)

	_, err = repo.Create(ctx, employee.Employee{ID: newID(t), EmployeeCode: "EMP001", Classification: employee.ClassificationIntern})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	_, err = repo.GetByID(ctx, newID(t))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	require.NoError(t, repo.UpdateTLPassword(ctx, tl.ID, "tl-hash"))
	tl, err = repo.GetByID(ctx, tl.ID)
	require.NoError(t, err)
	assert.True(t, tl.IsTeamLeader())

	ordered, err := repo.ListOrdered(ctx)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, "EMP001", ordered[0].EmployeeCode)
}

func TestLeaveApplicationRepository_StatusCAS(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(setup.DB)
	repo := postgresql.NewLeaveApplicationRepository(setup.DB)

	tl := createEmployee(t, employees, "TL001", nil)
	emp := createEmployee(t, employees, "EMP001", &tl.ID)

	created, err := repo.Create(ctx, leave.LeaveApplication{
		ID: newID(t), EmployeeID: emp.ID, TeamLeaderID: tl.ID, Reason: "trip",
		Category: leave.CategoryCasualLeave, StartDate: date("2024-03-04"), EndDate: date("2024-03-06"),
		TLStatus: leave.StatusPending, HRStatus: leave.StatusPending,
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	tlChange, err := leave.TeamLeaderDecision(created, tl.ID, leave.ActionApprove, now)
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, created.ID, tlChange)
	require.NoError(t, err)

	// A second write from the same stale read must not apply.
	_, err = repo.UpdateStatus(ctx, created.ID, tlChange)
	assert.ErrorIs(t, err, leave.ErrStatusConflict)

	pending, err := repo.ListPendingForHR(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "EMP001", pending[0].EmployeeCode)

	current, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	hrChange, err := leave.HRDecision(current, leave.ActionApprove, now)
	require.NoError(t, err)
	approved, err := repo.UpdateStatus(ctx, created.ID, hrChange)
	require.NoError(t, err)
	assert.True(t, approved.DualApproved())
	assert.True(t, approved.IsVerified)

	overlapping, err := repo.ListApprovedOverlapping(ctx, emp.ID, "", date("2024-03-01"), date("2024-03-31"))
	require.NoError(t, err)
	assert.Len(t, overlapping, 1)

	overlapping, err = repo.ListApprovedOverlapping(ctx, emp.ID, created.ID, date("2024-03-01"), date("2024-03-31"))
	require.NoError(t, err)
	assert.Empty(t, overlapping)

	err = postgresql.NewTransactor(setup.DB).WithinTransaction(ctx, func(ctx context.Context) error {
		return repo.LockEmployee(ctx, emp.ID)
	})
	assert.NoError(t, err)
}

func TestLOPRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, postgresql.NewEmployeeRepository(setup.DB), "EMP001", nil)
	repo := postgresql.NewLOPRepository(setup.DB)

	require.NoError(t, repo.CreateBatch(ctx, nil))
	require.NoError(t, repo.CreateBatch(ctx, []lop.LOPRecord{
		{ID: newID(t), EmployeeID: emp.ID, MarkingDate: date("2024-03-05"), Reason: "a"},
		{ID: newID(t), EmployeeID: emp.ID, MarkingDate: date("2024-03-06"), Reason: "b"},
	}))

	exists, err := repo.ExistsForDate(ctx, emp.ID, date("2024-03-06"))
	require.NoError(t, err)
	assert.True(t, exists)

	records, err := repo.ListByEmployeeAndRange(ctx, emp.ID, date("2024-03-01"), date("2024-03-05"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].Reason)
}

func TestAttendanceRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, postgresql.NewEmployeeRepository(setup.DB), "EMP001", nil)
	repo := postgresql.NewAttendanceRepository(setup.DB)

	dayStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	login := dayStart.Add(9 * time.Hour)

	none, err := repo.GetLatestForDay(ctx, emp.ID, dayStart, dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, none)

	created, err := repo.Create(ctx, attendance.Attendance{
		ID: newID(t), EmployeeID: emp.ID, Status: attendance.StatusPresent, Timestamp: login, LoginTime: &login,
	})
	require.NoError(t, err)

	updated, err := repo.UpdateLogoutTime(ctx, created.ID, login.Add(9*time.Hour))
	require.NoError(t, err)
	worked, ok := updated.Worked()
	require.True(t, ok)
	assert.Equal(t, 9*time.Hour, worked)

	records, err := repo.ListByRange(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "EMP001", records[0].EmployeeCode)
}
