package leave

import (
	"context"
	"fmt"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/leave"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/calendar"
)

// QuotaAccountant works out how much of a month's paid quota an employee has
// left once their other approved leaves are counted.
type QuotaAccountant struct {
	leaves leave.LeaveRepository
}

func NewQuotaAccountant(leaves leave.LeaveRepository) *QuotaAccountant {
	return &QuotaAccountant{leaves: leaves}
}

// Window computes the month window for employeeID, ignoring the evaluated
// leave. Every approved day counts toward the quota whatever its category.
func (a *QuotaAccountant) Window(ctx context.Context, employeeID string, month calendar.Month, evaluated leave.LeaveApplication, quota int) (leave.MonthWindow, error) {
	start, end := month.Bounds()

	others, err := a.leaves.ListApprovedOverlapping(ctx, employeeID, evaluated.ID, start, end)
	if err != nil {
		return leave.MonthWindow{}, fmt.Errorf("failed to list approved leaves for %s: %w", month.Key(), err)
	}

	used := 0
	for _, other := range others {
		if other.ID == evaluated.ID {
			continue
		}
		used += other.OverlapWith(start, end)
	}

	return leave.MonthWindow{
		MonthStart:    start,
		MonthEnd:      end,
		UsedPaid:      used,
		RemainingPaid: remainingPaid(quota, used),
	}, nil
}
