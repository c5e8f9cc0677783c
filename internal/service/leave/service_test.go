package leave

import (
	"context"
	"testing"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/auth"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/leave"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/notification"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow  = time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	tlCaller  = auth.Principal{Role: auth.RoleTeamLeader, ID: tlID}
	hrCaller  = auth.Principal{Role: auth.RoleHR, ID: "HR001"}
	adminUser = auth.Principal{Role: auth.RoleAdmin, ID: "ADMIN"}
)

type harness struct {
	svc    *LeaveServiceImpl
	leaves *fakeLeaveRepo
	lops   *fakeLOPRepo
	notes  *fakeNotifications
}

func newHarness(c employee.Classification, leaves ...leave.LeaveApplication) harness {
	h := harness{
		leaves: newFakeLeaveRepo(leaves...),
		lops:   &fakeLOPRepo{},
		notes:  &fakeNotifications{},
	}
	emps := newFakeEmployeeRepo(worker(c), teamLeader())
	h.svc = newLeaveService(h.leaves, emps, h.lops, &fakeTransactor{}, h.notes, func() time.Time { return fixedNow })
	return h
}

func pending(start, end string) leave.LeaveApplication {
	l := approvedLeave(leaveID, start, end, leave.CategorySickLeave)
	l.TLStatus = leave.StatusPending
	l.HRStatus = leave.StatusPending
	return l
}

func act(id string, action leave.Action) leave.LeaveActionRequest {
	return leave.LeaveActionRequest{LeaveID: id, Action: string(action)}
}

func TestApply(t *testing.T) {
	h := newHarness(employee.ClassificationFullTime)

	resp, err := h.svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeCode: "INNO1001",
		Reason:       "fever",
		LeaveType:    "sick leave",
		StartDate:    "2024-03-25",
		EndDate:      "2024-03-26",
	})
	require.NoError(t, err)

	assert.Equal(t, empID, resp.EmployeeID)
	assert.Equal(t, tlID, resp.TeamLeaderID)
	assert.Equal(t, "INNO1001", resp.EmployeeCode)
	assert.Equal(t, leave.CategorySickLeave, resp.LeaveType)
	assert.Equal(t, leave.StatusPending, resp.TLStatus)
	assert.Equal(t, leave.StatusPending, resp.HRStatus)
	assert.False(t, resp.IsVerified)
	assert.Equal(t, 2, resp.TotalDays)
	assert.True(t, validator.IsValidUUID(resp.ID))
}

func TestApply_InvalidInput(t *testing.T) {
	h := newHarness(employee.ClassificationFullTime)

	_, err := h.svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeCode: "INNO1001",
		Reason:       "trip",
		LeaveType:    "Vacation",
		StartDate:    "2024-03-26",
		EndDate:      "2024-03-25",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "leave_type")
	assert.Contains(t, fields, "end_date")
}

func TestApply_UnknownEmployee(t *testing.T) {
	h := newHarness(employee.ClassificationFullTime)

	_, err := h.svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeCode: "NOPE",
		Reason:       "fever",
		LeaveType:    "Sick Leave",
		StartDate:    "2024-03-25",
		EndDate:      "2024-03-25",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDualApproval_ReconcilesOnceOnHRApprove(t *testing.T) {
	h := newHarness(employee.ClassificationFullTime, pending("2024-07-08", "2024-07-12"))
	ctx := context.Background()

	tlResp, err := h.svc.TeamLeaderAction(ctx, tlCaller, act(leaveID, leave.ActionApprove))
	require.NoError(t, err)
	assert.False(t, tlResp.Reconciled)
	assert.Empty(t, h.lops.records)
	assert.Empty(t, h.notes.decisions)

	hrResp, err := h.svc.HRAction(ctx, hrCaller, act(leaveID, leave.ActionApprove))
	require.NoError(t, err)
	assert.True(t, hrResp.Reconciled)
	assert.Equal(t, 3, hrResp.LOPDays)
	assert.True(t, hrResp.NotificationSent)
	assert.Equal(t, []string{"2024-07-10", "2024-07-11", "2024-07-12"}, h.lops.dates())

	stored := h.leaves.get(leaveID)
	assert.Equal(t, leave.StatusApproved, stored.TLStatus)
	assert.Equal(t, leave.StatusApproved, stored.HRStatus)
	require.NotNil(t, stored.ApprovedAt)
	assert.Equal(t, fixedNow, *stored.ApprovedAt)

	require.Len(t, h.notes.decisions, 1)
	assert.Equal(t, notification.DecisionApproved, h.notes.decisions[0].Decision)
	assert.Equal(t, 3, h.notes.decisions[0].LOPDays)

	_, err = h.svc.HRAction(ctx, hrCaller, act(leaveID, leave.ActionApprove))
	assert.ErrorIs(t, err, leave.ErrAlreadyReviewed)
	assert.Len(t, h.lops.records, 3)
}

func TestHRApprove_BeforeTeamLeaderFails(t *testing.T) {
	h := newHarness(employee.ClassificationFullTime, pending("2024-07-08", "2024-07-12"))

	_, err := h.svc.HRAction(context.Background(), hrCaller, act(leaveID, leave.ActionApprove))
	assert.ErrorIs(t, err, leave.ErrTeamLeaderApprovalRequired)

	stored := h.leaves.get(leaveID)
	assert.Equal(t, leave.StatusPending, stored.TLStatus)
	assert.Equal(t, leave.StatusPending, stored.HRStatus)
	assert.Nil(t, stored.ApprovedAt)
	assert.Empty(t, h.lops.records)
}

func TestTeamLeaderReject_ShortCircuits(t *testing.T) {
	h := newHarness(employee.ClassificationFullTime, pending("2024-07-08", "2024-07-12"))
	ctx := context.Background()

	resp, err := h.svc.TeamLeaderAction(ctx, tlCaller, act(leaveID, leave.ActionReject))
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.TLStatus)
	assert.Equal(t, leave.StatusRejected, resp.HRStatus)
	assert.True(t, resp.NotificationSent)
	require.Len(t, h.notes.decisions, 1)
	assert.Equal(t, notification.DecisionRejected, h.notes.decisions[0].Decision)

	for _, action := range []leave.Action{leave.ActionApprove, leave.ActionReject} {
		_, err = h.svc.HRAction(ctx, hrCaller, act(leaveID, action))
		assert.ErrorIs(t, err, leave.ErrAlreadyReviewed)
	}
	assert.Empty(t, h.lops.records)
}

func TestTeamLeaderApprove_Twice(t *testing.T) {
	h := newHarness(employee.ClassificationFullTime, pending("2024-07-08", "2024-07-12"))
	ctx := context.Background()

	_, err := h.svc.TeamLeaderAction(ctx, tlCaller, act(leaveID, leave.ActionApprove))
	require.NoError(t, err)
	first := h.leaves.get(leaveID)

	_, err = h.svc.TeamLeaderAction(ctx, tlCaller, act(leaveID, leave.ActionApprove))
	assert.ErrorIs(t, err, leave.ErrAlreadyReviewed)
	assert.Equal(t, first, h.leaves.get(leaveID))
}

func TestTeamLeaderApprove_AfterHRApprovalReconciles(t *testing.T) {
	l := pending("2024-03-30", "2024-04-02")
	l.HRStatus = leave.StatusApproved
	h := newHarness(employee.ClassificationFullTime, l)

	resp, err := h.svc.TeamLeaderAction(context.Background(), tlCaller, act(leaveID, leave.ActionApprove))
	require.NoError(t, err)
	assert.True(t, resp.Reconciled)
	assert.Zero(t, resp.LOPDays)
	assert.Empty(t, h.lops.records)
	require.Len(t, h.notes.decisions, 1)
	assert.Equal(t, notification.DecisionApproved, h.notes.decisions[0].Decision)
}

func TestHRReject_NoLOP(t *testing.T) {
	l := pending("2024-07-08", "2024-07-12")
	l.TLStatus = leave.StatusApproved
	h := newHarness(employee.ClassificationIntern, l)

	resp, err := h.svc.HRAction(context.Background(), hrCaller, act(leaveID, leave.ActionReject))
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.TLStatus)
	assert.Equal(t, leave.StatusRejected, resp.HRStatus)
	assert.Empty(t, h.lops.records)
	require.Len(t, h.notes.decisions, 1)
	assert.Equal(t, notification.DecisionRejected, h.notes.decisions[0].Decision)
}

func TestTeamLeaderAction_WrongTeamLeader(t *testing.T) {
	h := newHarness(employee.ClassificationFullTime, pending("2024-07-08", "2024-07-12"))
	other := auth.Principal{Role: auth.RoleTeamLeader, ID: "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4aff"}

	_, err := h.svc.TeamLeaderAction(context.Background(), other, act(leaveID, leave.ActionApprove))
	assert.ErrorIs(t, err, leave.ErrUnauthorized)
	assert.Equal(t, leave.StatusPending, h.leaves.get(leaveID).TLStatus)
}

func TestActions_RoleGate(t *testing.T) {
	h := newHarness(employee.ClassificationFullTime, pending("2024-07-08", "2024-07-12"))
	ctx := context.Background()

	_, err := h.svc.TeamLeaderAction(ctx, hrCaller, act(leaveID, leave.ActionApprove))
	assert.ErrorIs(t, err, auth.ErrForbidden)
	_, err = h.svc.HRAction(ctx, adminUser, act(leaveID, leave.ActionApprove))
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestActions_InvalidActionBeforeStoreAccess(t *testing.T) {
	h := newHarness(employee.ClassificationFullTime)

	_, err := h.svc.HRAction(context.Background(), hrCaller, act(leaveID, "Maybe"))
	assert.ErrorIs(t, err, leave.ErrInvalidAction)
}

func TestActions_LeaveNotFound(t *testing.T) {
	h := newHarness(employee.ClassificationFullTime)

	_, err := h.svc.TeamLeaderAction(context.Background(), tlCaller, act(leaveID, leave.ActionApprove))
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}

func TestHRAction_ConcurrentWriterWins(t *testing.T) {
	l := pending("2024-07-08", "2024-07-12")
	l.TLStatus = leave.StatusApproved
	h := newHarness(employee.ClassificationFullTime, l)
	h.leaves.beforeUpdate = func(m map[string]leave.LeaveApplication) {
		stored := m[leaveID]
		stored.HRStatus = leave.StatusApproved
		m[leaveID] = stored
	}

	_, err := h.svc.HRAction(context.Background(), hrCaller, act(leaveID, leave.ActionApprove))
	assert.ErrorIs(t, err, leave.ErrAlreadyReviewed)
	assert.Empty(t, h.lops.records)
	assert.Empty(t, h.notes.decisions)
}

func TestHRApprove_InsertFailureKeepsApproval(t *testing.T) {
	l := pending("2024-07-08", "2024-07-12")
	l.TLStatus = leave.StatusApproved
	h := newHarness(employee.ClassificationFullTime, l)
	h.lops.insertErr = assert.AnError

	resp, err := h.svc.HRAction(context.Background(), hrCaller, act(leaveID, leave.ActionApprove))
	require.NoError(t, err)
	assert.False(t, resp.Reconciled)
	assert.Equal(t, leave.StatusApproved, h.leaves.get(leaveID).HRStatus)
}

func TestListForTeamLeaderAndHR(t *testing.T) {
	waiting := pending("2024-07-08", "2024-07-12")
	waiting.TLStatus = leave.StatusApproved
	h := newHarness(employee.ClassificationFullTime, waiting)
	ctx := context.Background()

	tlList, err := h.svc.ListForTeamLeader(ctx, tlCaller)
	require.NoError(t, err)
	assert.Len(t, tlList, 1)

	hrList, err := h.svc.ListPendingForHR(ctx, hrCaller)
	require.NoError(t, err)
	require.Len(t, hrList, 1)
	assert.Equal(t, leaveID, hrList[0].ID)

	_, err = h.svc.ListPendingForHR(ctx, tlCaller)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}
