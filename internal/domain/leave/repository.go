package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, leave LeaveApplication) (LeaveApplication, error)
	GetByID(ctx context.Context, id string) (LeaveApplication, error)
	// ListApprovedOverlapping returns the employee's dual-approved leaves, other
	// than excludeID, whose range intersects [from, to].
	ListApprovedOverlapping(ctx context.Context, employeeID, excludeID string, from, to time.Time) ([]LeaveApplication, error)
	ListByTeamLeader(ctx context.Context, teamLeaderID string) ([]LeaveWithEmployee, error)
	ListPendingForHR(ctx context.Context) ([]LeaveWithEmployee, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveApplication, error)
	// UpdateStatus applies change only if the stored statuses still match its
	// expectations. It returns ErrStatusConflict when no row matched.
	UpdateStatus(ctx context.Context, id string, change StatusChange) (LeaveApplication, error)
	// LockEmployee serialises quota consumption for one employee until the
	// surrounding transaction ends.
	LockEmployee(ctx context.Context, employeeID string) error
}
