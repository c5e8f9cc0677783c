package leave

import (
	"context"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/auth"
)

type LeaveService interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	ListForTeamLeader(ctx context.Context, principal auth.Principal) ([]LeaveResponse, error)
	ListPendingForHR(ctx context.Context, principal auth.Principal) ([]LeaveResponse, error)
	TeamLeaderAction(ctx context.Context, principal auth.Principal, req LeaveActionRequest) (LeaveActionResponse, error)
	HRAction(ctx context.Context, principal auth.Principal, req LeaveActionRequest) (LeaveActionResponse, error)
	TeamLeaderSummary(ctx context.Context, principal auth.Principal, leaveID string) (LeaveSummaryResponse, error)
	HRSummary(ctx context.Context, principal auth.Principal, leaveID string) (LeaveSummaryResponse, error)
}
