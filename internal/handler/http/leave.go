package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/auth"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/leave"
	"github.com/attendance-marker/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)

	ListForTeamLeader(w http.ResponseWriter, r *http.Request)
	TeamLeaderAction(w http.ResponseWriter, r *http.Request)
	TeamLeaderSummary(w http.ResponseWriter, r *http.Request)

	ListPendingForHR(w http.ResponseWriter, r *http.Request)
	HRAction(w http.ResponseWriter, r *http.Request)
	HRSummary(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

type leaveActionFunc func(ctx context.Context, principal auth.Principal, req leave.LeaveActionRequest) (leave.LeaveActionResponse, error)

type leaveSummaryFunc func(ctx context.Context, principal auth.Principal, leaveID string) (leave.LeaveSummaryResponse, error)

type leaveListFunc func(ctx context.Context, principal auth.Principal) ([]leave.LeaveResponse, error)

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted successfully", created)
}

// ListForTeamLeader implements LeaveHandler.
func (l *LeaveHandlerImpl) ListForTeamLeader(w http.ResponseWriter, r *http.Request) {
	l.list(w, r, l.leaveService.ListForTeamLeader)
}

// ListPendingForHR implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPendingForHR(w http.ResponseWriter, r *http.Request) {
	l.list(w, r, l.leaveService.ListPendingForHR)
}

// TeamLeaderAction implements LeaveHandler.
func (l *LeaveHandlerImpl) TeamLeaderAction(w http.ResponseWriter, r *http.Request) {
	l.act(w, r, l.leaveService.TeamLeaderAction)
}

// HRAction implements LeaveHandler.
func (l *LeaveHandlerImpl) HRAction(w http.ResponseWriter, r *http.Request) {
	l.act(w, r, l.leaveService.HRAction)
}

// TeamLeaderSummary implements LeaveHandler.
func (l *LeaveHandlerImpl) TeamLeaderSummary(w http.ResponseWriter, r *http.Request) {
	l.summary(w, r, l.leaveService.TeamLeaderSummary)
}

// HRSummary implements LeaveHandler.
func (l *LeaveHandlerImpl) HRSummary(w http.ResponseWriter, r *http.Request) {
	l.summary(w, r, l.leaveService.HRSummary)
}

func (l *LeaveHandlerImpl) list(w http.ResponseWriter, r *http.Request, fn leaveListFunc) {
	principal, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	leaves, err := fn(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leaves, &response.Meta{TotalItems: len(leaves)})
}

func (l *LeaveHandlerImpl) act(w http.ResponseWriter, r *http.Request, fn leaveActionFunc) {
	principal, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.LeaveActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Leave action decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := fn(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

func (l *LeaveHandlerImpl) summary(w http.ResponseWriter, r *http.Request, fn leaveSummaryFunc) {
	principal, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := fn(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}
