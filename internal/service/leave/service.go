package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/auth"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/leave"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/lop"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/notification"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/database"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	employee.EmployeeRepository
	reconciler    *Reconciler
	summaries     *SummaryBuilder
	notifications notification.Service
	now           func() time.Time
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	category, start, end, err := req.Normalize()
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	teamLeaderID := emp.TeamLeaderID
	if req.TeamLeaderID != nil {
		teamLeaderID = req.TeamLeaderID
	}
	if teamLeaderID == nil {
		return leave.LeaveResponse{}, validator.ValidationErrors{
			{Field: "team_leader_id", Message: "team_leader_id is required when the employee has no team leader"},
		}
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, *teamLeaderID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveResponse{}, employee.ErrTeamLeaderNotFound
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get team leader: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to generate leave id: %w", err)
	}

	created, err := s.LeaveRepository.Create(ctx, leave.LeaveApplication{
		ID:           id.String(),
		EmployeeID:   emp.ID,
		TeamLeaderID: *teamLeaderID,
		Reason:       req.Reason,
		Category:     category,
		StartDate:    start,
		EndDate:      end,
		TLStatus:     leave.StatusPending,
		HRStatus:     leave.StatusPending,
		IsVerified:   false,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return leave.NewLeaveWithEmployeeResponse(leave.LeaveWithEmployee{
		LeaveApplication: created,
		EmployeeCode:     emp.EmployeeCode,
		EmployeeName:     emp.Name,
		Department:       emp.Department,
	}), nil
}

// ListForTeamLeader implements leave.LeaveService.
func (s *LeaveServiceImpl) ListForTeamLeader(ctx context.Context, principal auth.Principal) ([]leave.LeaveResponse, error) {
	if principal.Role != auth.RoleTeamLeader {
		return nil, auth.ErrForbidden
	}

	leaves, err := s.LeaveRepository.ListByTeamLeader(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team leader leaves: %w", err)
	}
	return toResponses(leaves), nil
}

// ListPendingForHR implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPendingForHR(ctx context.Context, principal auth.Principal) ([]leave.LeaveResponse, error) {
	if principal.Role != auth.RoleHR {
		return nil, auth.ErrForbidden
	}

	leaves, err := s.LeaveRepository.ListPendingForHR(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves pending HR review: %w", err)
	}
	return toResponses(leaves), nil
}

// TeamLeaderAction implements leave.LeaveService.
func (s *LeaveServiceImpl) TeamLeaderAction(ctx context.Context, principal auth.Principal, req leave.LeaveActionRequest) (leave.LeaveActionResponse, error) {
	if principal.Role != auth.RoleTeamLeader {
		return leave.LeaveActionResponse{}, auth.ErrForbidden
	}

	decide := func(l leave.LeaveApplication, action leave.Action, at time.Time) (leave.StatusChange, error) {
		return leave.TeamLeaderDecision(l, principal.ID, action, at)
	}
	updated, change, rec, err := s.transition(ctx, req, decide)
	if err != nil {
		return leave.LeaveActionResponse{}, err
	}

	resp := actionResponse(updated, rec)
	if change.Rejects() {
		resp.Message = "Leave rejected by team leader"
		resp.NotificationSent = s.notify(ctx, updated, notification.DecisionRejected, "Team Leader", rec)
	} else {
		resp.Message = "Leave approved by team leader"
		if change.CompletesApproval() {
			resp.NotificationSent = s.notify(ctx, updated, notification.DecisionApproved, "Team Leader", rec)
		}
	}
	return resp, nil
}

// HRAction implements leave.LeaveService.
func (s *LeaveServiceImpl) HRAction(ctx context.Context, principal auth.Principal, req leave.LeaveActionRequest) (leave.LeaveActionResponse, error) {
	if principal.Role != auth.RoleHR {
		return leave.LeaveActionResponse{}, auth.ErrForbidden
	}

	updated, change, rec, err := s.transition(ctx, req, leave.HRDecision)
	if err != nil {
		return leave.LeaveActionResponse{}, err
	}

	resp := actionResponse(updated, rec)
	decision := notification.DecisionApproved
	resp.Message = "Leave approved by HR"
	if change.Rejects() {
		decision = notification.DecisionRejected
		resp.Message = "Leave rejected by HR"
	}
	resp.NotificationSent = s.notify(ctx, updated, decision, "HR", rec)
	return resp, nil
}

// TeamLeaderSummary implements leave.LeaveService.
func (s *LeaveServiceImpl) TeamLeaderSummary(ctx context.Context, principal auth.Principal, leaveID string) (leave.LeaveSummaryResponse, error) {
	if principal.Role != auth.RoleTeamLeader {
		return leave.LeaveSummaryResponse{}, auth.ErrForbidden
	}

	l, err := s.getLeave(ctx, leaveID)
	if err != nil {
		return leave.LeaveSummaryResponse{}, err
	}
	if l.TeamLeaderID != principal.ID {
		return leave.LeaveSummaryResponse{}, leave.ErrUnauthorized
	}
	return s.summary(ctx, l)
}

// HRSummary implements leave.LeaveService.
func (s *LeaveServiceImpl) HRSummary(ctx context.Context, principal auth.Principal, leaveID string) (leave.LeaveSummaryResponse, error) {
	if principal.Role != auth.RoleHR {
		return leave.LeaveSummaryResponse{}, auth.ErrForbidden
	}

	l, err := s.getLeave(ctx, leaveID)
	if err != nil {
		return leave.LeaveSummaryResponse{}, err
	}
	return s.summary(ctx, l)
}

type decisionFunc func(l leave.LeaveApplication, action leave.Action, at time.Time) (leave.StatusChange, error)

// transition validates the request, applies the guarded status write and
// reconciles when the write is the one that completes dual approval.
func (s *LeaveServiceImpl) transition(ctx context.Context, req leave.LeaveActionRequest, decide decisionFunc) (leave.LeaveApplication, leave.StatusChange, *Reconciliation, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveApplication{}, leave.StatusChange{}, nil, err
	}
	action, err := leave.ParseAction(req.Action)
	if err != nil {
		return leave.LeaveApplication{}, leave.StatusChange{}, nil, err
	}

	current, err := s.getLeave(ctx, req.LeaveID)
	if err != nil {
		return leave.LeaveApplication{}, leave.StatusChange{}, nil, err
	}

	change, err := decide(current, action, s.now())
	if err != nil {
		return leave.LeaveApplication{}, leave.StatusChange{}, nil, err
	}

	updated, err := s.LeaveRepository.UpdateStatus(ctx, current.ID, change)
	if errors.Is(err, leave.ErrStatusConflict) {
		// Someone else moved the leave between our read and write. Report
		// what the fresh state says about this action.
		latest, getErr := s.getLeave(ctx, current.ID)
		if getErr != nil {
			return leave.LeaveApplication{}, leave.StatusChange{}, nil, getErr
		}
		if _, decideErr := decide(latest, action, s.now()); decideErr != nil {
			return leave.LeaveApplication{}, leave.StatusChange{}, nil, decideErr
		}
		return leave.LeaveApplication{}, leave.StatusChange{}, nil, leave.ErrStatusConflict
	}
	if err != nil {
		return leave.LeaveApplication{}, leave.StatusChange{}, nil, fmt.Errorf("failed to update leave status: %w", err)
	}

	return updated, change, s.maybeReconcile(ctx, change, updated), nil
}

// maybeReconcile is the single reconciliation call site for both approvers.
// Failures are logged; the status write has already taken effect.
func (s *LeaveServiceImpl) maybeReconcile(ctx context.Context, change leave.StatusChange, l leave.LeaveApplication) *Reconciliation {
	if !change.CompletesApproval() {
		return nil
	}

	rec, err := s.reconciler.Reconcile(ctx, l)
	if err != nil {
		slog.Error("Leave reconciliation failed", "leave_id", l.ID, "employee_id", l.EmployeeID, "error", err)
		return nil
	}
	return &rec
}

func (s *LeaveServiceImpl) notify(ctx context.Context, l leave.LeaveApplication, decision notification.Decision, decidedBy string, rec *Reconciliation) bool {
	emp, err := s.EmployeeRepository.GetByID(ctx, l.EmployeeID)
	if err != nil {
		slog.Error("Leave notification skipped, employee lookup failed", "leave_id", l.ID, "error", err)
		return false
	}

	msg := notification.LeaveDecision{
		EmployeeName:  emp.Name,
		EmployeeEmail: emp.Email,
		Reason:        l.Reason,
		Category:      string(l.Category),
		StartDate:     l.StartDate,
		EndDate:       l.EndDate,
		Decision:      decision,
		DecidedBy:     decidedBy,
	}
	if rec != nil {
		msg.LOPDays = len(rec.LOPDays)
	}
	return s.notifications.LeaveDecided(ctx, msg)
}

func (s *LeaveServiceImpl) getLeave(ctx context.Context, id string) (leave.LeaveApplication, error) {
	if !validator.IsValidUUID(id) {
		return leave.LeaveApplication{}, validator.ValidationErrors{
			{Field: "leave_id", Message: "leave_id must be a valid UUID"},
		}
	}

	l, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return leave.LeaveApplication{}, err
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to get leave application: %w", err)
	}
	return l, nil
}

func (s *LeaveServiceImpl) summary(ctx context.Context, l leave.LeaveApplication) (leave.LeaveSummaryResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, l.EmployeeID)
	if err != nil {
		return leave.LeaveSummaryResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	summary, err := s.summaries.Build(ctx, emp, l)
	if err != nil {
		return leave.LeaveSummaryResponse{}, fmt.Errorf("failed to build leave summary: %w", err)
	}
	return summary, nil
}

func actionResponse(l leave.LeaveApplication, rec *Reconciliation) leave.LeaveActionResponse {
	resp := leave.LeaveActionResponse{
		LeaveID:  l.ID,
		TLStatus: l.TLStatus,
		HRStatus: l.HRStatus,
	}
	if rec != nil {
		resp.Reconciled = rec.Persisted
		resp.LOPDays = len(rec.LOPDays)
	}
	return resp
}

func toResponses(leaves []leave.LeaveWithEmployee) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, leave.NewLeaveWithEmployeeResponse(l))
	}
	return responses
}

func NewLeaveService(
	leaveRepository leave.LeaveRepository,
	employeeRepository employee.EmployeeRepository,
	lopRepository lop.LOPRepository,
	transactor database.Transactor,
	notifications notification.Service,
) leave.LeaveService {
	return newLeaveService(leaveRepository, employeeRepository, lopRepository, transactor, notifications, time.Now)
}

func newLeaveService(
	leaveRepository leave.LeaveRepository,
	employeeRepository employee.EmployeeRepository,
	lopRepository lop.LOPRepository,
	transactor database.Transactor,
	notifications notification.Service,
	now func() time.Time,
) *LeaveServiceImpl {
	reconciler := NewReconciler(employeeRepository, leaveRepository, lopRepository, transactor)
	reconciler.now = now
	return &LeaveServiceImpl{
		LeaveRepository:    leaveRepository,
		EmployeeRepository: employeeRepository,
		reconciler:         reconciler,
		summaries:          NewSummaryBuilder(leaveRepository, now),
		notifications:      notifications,
		now:                now,
	}
}
