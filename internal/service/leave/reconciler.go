package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/leave"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/lop"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/calendar"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

var errNotDualApproved = errors.New("leave is not approved by both team leader and HR")

// Reconciliation is the outcome of converting one approved leave into paid
// days and LOP days.
type Reconciliation struct {
	LeaveID    string
	EmployeeID string
	PaidDays   []time.Time
	LOPDays    []time.Time
	// Persisted is false when the LOP insert failed. The approval still stands.
	Persisted bool
}

// Reconciler turns a dual-approved leave into LOP records.
type Reconciler struct {
	employees  employee.EmployeeRepository
	leaves     leave.LeaveRepository
	lops       lop.LOPRepository
	accountant *QuotaAccountant
	transactor database.Transactor
	now        func() time.Time
}

func NewReconciler(employees employee.EmployeeRepository, leaves leave.LeaveRepository, lops lop.LOPRepository, transactor database.Transactor) *Reconciler {
	return &Reconciler{
		employees:  employees,
		leaves:     leaves,
		lops:       lops,
		accountant: NewQuotaAccountant(leaves),
		transactor: transactor,
		now:        time.Now,
	}
}

// Reconcile runs under a per-employee lock so two leaves of the same employee
// approved at the same time consume the quota one after the other.
// An error is returned only when the plan could not be computed. A failed
// insert is logged and reported through Reconciliation.Persisted.
func (r *Reconciler) Reconcile(ctx context.Context, l leave.LeaveApplication) (Reconciliation, error) {
	if !l.DualApproved() {
		return Reconciliation{}, errNotDualApproved
	}

	var result Reconciliation
	var insertErr error
	err := r.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.leaves.LockEmployee(ctx, l.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee quota: %w", err)
		}

		emp, err := r.employees.GetByID(ctx, l.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		result, err = r.plan(ctx, emp, l)
		if err != nil {
			return err
		}

		result.Persisted = true
		if len(result.LOPDays) == 0 {
			return nil
		}
		if insertErr = r.lops.CreateBatch(ctx, r.records(l, result.LOPDays)); insertErr != nil {
			return insertErr
		}
		return nil
	})

	if insertErr != nil {
		slog.Error("LOP insert failed after leave approval",
			"leave_id", l.ID,
			"employee_id", l.EmployeeID,
			"lop_days", len(result.LOPDays),
			"error", insertErr,
		)
		result.Persisted = false
		return result, nil
	}
	if err != nil {
		return Reconciliation{}, err
	}

	slog.Info("Leave reconciled",
		"leave_id", l.ID,
		"employee_id", l.EmployeeID,
		"paid_days", len(result.PaidDays),
		"lop_days", len(result.LOPDays),
	)
	return result, nil
}

// plan walks the leave day by day in ascending order. Interns get LOP for
// every day. Everyone else consumes the remaining paid quota of each month
// first, seeded once per month before the walk.
func (r *Reconciler) plan(ctx context.Context, emp employee.Employee, l leave.LeaveApplication) (Reconciliation, error) {
	result := Reconciliation{LeaveID: l.ID, EmployeeID: l.EmployeeID}

	if emp.Classification == employee.ClassificationIntern {
		calendar.EachDay(l.StartDate, l.EndDate, func(day time.Time) {
			result.LOPDays = append(result.LOPDays, day)
		})
		return result, nil
	}

	quota := PaidQuota(emp.Classification)
	remaining := make(map[calendar.Month]int)
	for _, month := range calendar.MonthsTouched(l.StartDate, l.EndDate) {
		window, err := r.accountant.Window(ctx, l.EmployeeID, month, l, quota)
		if err != nil {
			return Reconciliation{}, err
		}
		remaining[month] = window.RemainingPaid
	}

	result.PaidDays, result.LOPDays = allocate(l.StartDate, l.EndDate, remaining)
	return result, nil
}

// allocate spends remaining per month on the earliest days of [start, end].
// remaining is consumed in place.
func allocate(start, end time.Time, remaining map[calendar.Month]int) (paid, unpaid []time.Time) {
	calendar.EachDay(start, end, func(day time.Time) {
		month := calendar.MonthOf(day)
		if remaining[month] > 0 {
			remaining[month]--
			paid = append(paid, day)
			return
		}
		unpaid = append(unpaid, day)
	})
	return paid, unpaid
}

func (r *Reconciler) records(l leave.LeaveApplication, days []time.Time) []lop.LOPRecord {
	if len(days) == 0 {
		return nil
	}

	reason := fmt.Sprintf("LOP from approved leave: %s", l.Reason)
	createdAt := r.now()
	records := make([]lop.LOPRecord, 0, len(days))
	for _, day := range days {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		records = append(records, lop.LOPRecord{
			ID:          id.String(),
			EmployeeID:  l.EmployeeID,
			MarkingDate: day,
			Reason:      reason,
			CreatedAt:   createdAt,
		})
	}
	return records
}
