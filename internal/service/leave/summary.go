package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/leave"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/calendar"
)

const suggestionExhausted = "Paid leaves exhausted. New leave will be LOP."

// SummaryBuilder assembles the read-only monthly view shown to approvers.
// Unlike the reconciler it splits approved days by category.
type SummaryBuilder struct {
	leaves leave.LeaveRepository
	now    func() time.Time
}

func NewSummaryBuilder(leaves leave.LeaveRepository, now func() time.Time) *SummaryBuilder {
	if now == nil {
		now = time.Now
	}
	return &SummaryBuilder{leaves: leaves, now: now}
}

// Build summarises the month of the request, the current month and the
// request itself for l.
func (b *SummaryBuilder) Build(ctx context.Context, emp employee.Employee, l leave.LeaveApplication) (leave.LeaveSummaryResponse, error) {
	quota := PaidQuota(emp.Classification)

	requestMonth := calendar.MonthOf(l.StartDate)
	requestSummary, err := b.month(ctx, emp.ID, requestMonth, quota)
	if err != nil {
		return leave.LeaveSummaryResponse{}, err
	}
	requestSummary.Suggestion = suggestion(requestSummary.RemainingPaidLeaves)

	currentSummary, err := b.month(ctx, emp.ID, calendar.MonthOf(b.now()), quota)
	if err != nil {
		return leave.LeaveSummaryResponse{}, err
	}

	reqStart, reqEnd := requestMonth.Bounds()
	totalDays := l.Days()
	paidIfApproved := min(requestSummary.RemainingPaidLeaves, totalDays)

	return leave.LeaveSummaryResponse{
		Employee: leave.SummaryEmployee{
			EmployeeCode: emp.EmployeeCode,
			Name:         emp.Name,
			Type:         string(emp.Classification),
		},
		RequestMonth: requestSummary,
		CurrentMonth: currentSummary,
		CurrentRequest: leave.CurrentRequestSummary{
			StartDate:          calendar.FormatDate(l.StartDate),
			EndDate:            calendar.FormatDate(l.EndDate),
			Reason:             l.Reason,
			LeaveType:          string(l.Category),
			TotalDays:          totalDays,
			DaysInThisMonth:    l.OverlapWith(reqStart, reqEnd),
			PaidDaysIfApproved: paidIfApproved,
			LOPDaysIfApproved:  totalDays - paidIfApproved,
		},
	}, nil
}

// month counts every dual-approved leave overlapping the month. Sick and
// casual days are paid usage, "other" days are explicit LOP, and anything
// beyond the quota is LOP as well.
func (b *SummaryBuilder) month(ctx context.Context, employeeID string, m calendar.Month, quota int) (leave.MonthSummary, error) {
	start, end := m.Bounds()

	approved, err := b.leaves.ListApprovedOverlapping(ctx, employeeID, "", start, end)
	if err != nil {
		return leave.MonthSummary{}, fmt.Errorf("failed to list approved leaves for %s: %w", m.Key(), err)
	}

	var total, paidUsed, explicitLOP int
	for _, l := range approved {
		days := l.OverlapWith(start, end)
		total += days
		if l.Category.IsPaidCategory() {
			paidUsed += days
		} else {
			explicitLOP += days
		}
	}

	lopFromOver := max(0, total-quota)

	return leave.MonthSummary{
		PaidLimit:           quota,
		PaidUsed:            paidUsed,
		TotalLeaves:         total,
		TotalLOPs:           explicitLOP + lopFromOver,
		RemainingPaidLeaves: remainingPaid(quota, paidUsed),
	}, nil
}

func suggestion(remaining int) string {
	if remaining == 0 {
		return suggestionExhausted
	}
	return fmt.Sprintf("Remaining paid leave balance: %d", remaining)
}
