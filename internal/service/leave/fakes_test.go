package leave

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/leave"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/lop"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/notification"
)

type fakeLeaveRepo struct {
	mu     sync.Mutex
	leaves map[string]leave.LeaveApplication
	// beforeUpdate runs once before the next UpdateStatus, to simulate a
	// concurrent writer.
	beforeUpdate func(map[string]leave.LeaveApplication)
	locks        []string
}

func newFakeLeaveRepo(leaves ...leave.LeaveApplication) *fakeLeaveRepo {
	r := &fakeLeaveRepo{leaves: make(map[string]leave.LeaveApplication)}
	for _, l := range leaves {
		r.leaves[l.ID] = l
	}
	return r
}

func (r *fakeLeaveRepo) Create(_ context.Context, l leave.LeaveApplication) (leave.LeaveApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaves[l.ID] = l
	return l, nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leaves[id]
	if !ok {
		return leave.LeaveApplication{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

func (r *fakeLeaveRepo) ListApprovedOverlapping(_ context.Context, employeeID, excludeID string, from, to time.Time) ([]leave.LeaveApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveApplication
	for _, l := range r.leaves {
		if l.EmployeeID != employeeID || l.ID == excludeID || !l.DualApproved() {
			continue
		}
		if l.OverlapWith(from, to) > 0 {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *fakeLeaveRepo) ListByTeamLeader(_ context.Context, teamLeaderID string) ([]leave.LeaveWithEmployee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveWithEmployee
	for _, l := range r.leaves {
		if l.TeamLeaderID == teamLeaderID {
			out = append(out, leave.LeaveWithEmployee{LeaveApplication: l})
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListPendingForHR(_ context.Context) ([]leave.LeaveWithEmployee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveWithEmployee
	for _, l := range r.leaves {
		if l.TLStatus == leave.StatusApproved && l.HRStatus == leave.StatusPending {
			out = append(out, leave.LeaveWithEmployee{LeaveApplication: l})
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.LeaveApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveApplication
	for _, l := range r.leaves {
		if l.EmployeeID == employeeID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) UpdateStatus(_ context.Context, id string, change leave.StatusChange) (leave.LeaveApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.beforeUpdate != nil {
		r.beforeUpdate(r.leaves)
		r.beforeUpdate = nil
	}
	l, ok := r.leaves[id]
	if !ok || l.TLStatus != change.ExpectTL || l.HRStatus != change.ExpectHR {
		return leave.LeaveApplication{}, leave.ErrStatusConflict
	}
	l = change.ApplyTo(l)
	r.leaves[id] = l
	return l, nil
}

func (r *fakeLeaveRepo) LockEmployee(_ context.Context, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks = append(r.locks, employeeID)
	return nil
}

func (r *fakeLeaveRepo) get(id string) leave.LeaveApplication {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaves[id]
}

type fakeEmployeeRepo struct {
	byID map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{byID: make(map[string]employee.Employee)}
	for _, e := range emps {
		r.byID[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.byID[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	for _, e := range r.byID {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	return err == nil, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.byID {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) ListOrdered(ctx context.Context) ([]employee.Employee, error) {
	return r.List(ctx)
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.byID[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) UpdateTLPassword(_ context.Context, id string, hash string) error {
	e := r.byID[id]
	e.TLPasswordHash = &hash
	r.byID[id] = e
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeLOPRepo struct {
	mu        sync.Mutex
	records   []lop.LOPRecord
	batches   int
	insertErr error
}

func (r *fakeLOPRepo) Create(_ context.Context, rec lop.LOPRecord) (lop.LOPRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *fakeLOPRepo) CreateBatch(_ context.Context, records []lop.LOPRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.batches++
	r.records = append(r.records, records...)
	return nil
}

func (r *fakeLOPRepo) ExistsForDate(_ context.Context, employeeID string, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.MarkingDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLOPRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]lop.LOPRecord, error) {
	return nil, nil
}

func (r *fakeLOPRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time) ([]lop.LOPRecord, error) {
	return nil, nil
}

func (r *fakeLOPRepo) dates() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec.MarkingDate.Format("2006-01-02"))
	}
	return out
}

type fakeTransactor struct {
	calls int
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeNotifications struct {
	decisions []notification.LeaveDecision
}

func (n *fakeNotifications) LeaveDecided(_ context.Context, d notification.LeaveDecision) bool {
	n.decisions = append(n.decisions, d)
	return true
}

func (n *fakeNotifications) OTPIssued(context.Context, notification.OTPMessage) bool {
	return true
}
