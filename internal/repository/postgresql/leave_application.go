package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/leave"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveColumns = `la.id, la.employee_id, la.team_leader_id, la.reason, la.leave_type, la.start_date, la.end_date,
	la.tl_status, la.hr_status, la.is_verified, la.created_at, la.approved_at`

type leaveApplicationRepositoryImpl struct {
	db *database.DB
}

func leaveScanTargets(l *leave.LeaveApplication) []any {
	return []any{
		&l.ID, &l.EmployeeID, &l.TeamLeaderID, &l.Reason, &l.Category, &l.StartDate, &l.EndDate,
		&l.TLStatus, &l.HRStatus, &l.IsVerified, &l.CreatedAt, &l.ApprovedAt,
	}
}

func scanLeave(row pgx.Row) (leave.LeaveApplication, error) {
	var l leave.LeaveApplication
	err := row.Scan(leaveScanTargets(&l)...)
	return l, err
}

func collectLeaves(rows pgx.Rows) ([]leave.LeaveApplication, error) {
	defer rows.Close()

	var leaves []leave.LeaveApplication
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leaves, nil
}

func collectLeavesWithEmployee(rows pgx.Rows) ([]leave.LeaveWithEmployee, error) {
	defer rows.Close()

	var leaves []leave.LeaveWithEmployee
	for rows.Next() {
		var l leave.LeaveWithEmployee
		targets := append(leaveScanTargets(&l.LeaveApplication), &l.EmployeeCode, &l.EmployeeName, &l.Department)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leaves, nil
}

// Create implements leave.LeaveRepository.
func (r *leaveApplicationRepositoryImpl) Create(ctx context.Context, l leave.LeaveApplication) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications AS la (
			id, employee_id, team_leader_id, reason, leave_type, start_date, end_date, tl_status, hr_status, is_verified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + leaveColumns

	created, err := scanLeave(q.QueryRow(ctx, query,
		l.ID, l.EmployeeID, l.TeamLeaderID, l.Reason, string(l.Category), l.StartDate, l.EndDate,
		string(l.TLStatus), string(l.HRStatus), l.IsVerified,
	))
	if err != nil {
		return leave.LeaveApplication{}, fmt.Errorf("failed to create leave application: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveApplicationRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_applications la WHERE la.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveApplication{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to get leave application %s: %w", id, err)
	}
	return l, nil
}

// ListApprovedOverlapping implements leave.LeaveRepository.
func (r *leaveApplicationRepositoryImpl) ListApprovedOverlapping(ctx context.Context, employeeID, excludeID string, from, to time.Time) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	var exclude *string
	if excludeID != "" {
		exclude = &excludeID
	}

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_applications la
		WHERE la.employee_id = $1
		  AND ($2::uuid IS NULL OR la.id <> $2::uuid)
		  AND la.tl_status = 'Approved' AND la.hr_status = 'Approved'
		  AND la.start_date <= $4 AND la.end_date >= $3
		ORDER BY la.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, exclude, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leaves: %w", err)
	}
	return collectLeaves(rows)
}

// ListByTeamLeader implements leave.LeaveRepository.
func (r *leaveApplicationRepositoryImpl) ListByTeamLeader(ctx context.Context, teamLeaderID string) ([]leave.LeaveWithEmployee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, e.employee_code, e.name, e.department
		FROM leave_applications la
		INNER JOIN employees e ON la.employee_id = e.id
		WHERE la.team_leader_id = $1
		ORDER BY la.created_at DESC
	`

	rows, err := q.Query(ctx, query, teamLeaderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves for team leader: %w", err)
	}
	return collectLeavesWithEmployee(rows)
}

// ListPendingForHR implements leave.LeaveRepository.
func (r *leaveApplicationRepositoryImpl) ListPendingForHR(ctx context.Context) ([]leave.LeaveWithEmployee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, e.employee_code, e.name, e.department
		FROM leave_applications la
		INNER JOIN employees e ON la.employee_id = e.id
		WHERE la.tl_status = 'Approved' AND la.hr_status = 'Pending'
		ORDER BY la.created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves pending HR review: %w", err)
	}
	return collectLeavesWithEmployee(rows)
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveApplicationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+leaveColumns+` FROM leave_applications la WHERE la.employee_id = $1 ORDER BY la.start_date DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves for employee: %w", err)
	}
	return collectLeaves(rows)
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, change leave.StatusChange) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications AS la
		SET tl_status = $4, hr_status = $5, approved_at = $6,
		    is_verified = ($4 = 'Approved' AND $5 = 'Approved')
		WHERE la.id = $1 AND la.tl_status = $2 AND la.hr_status = $3
		RETURNING ` + leaveColumns

	updated, err := scanLeave(q.QueryRow(ctx, query,
		id, string(change.ExpectTL), string(change.ExpectHR),
		string(change.TLStatus), string(change.HRStatus), change.DecidedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveApplication{}, leave.ErrStatusConflict
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to update leave status: %w", err)
	}
	return updated, nil
}

// LockEmployee implements leave.LeaveRepository.
func (r *leaveApplicationRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID); err != nil {
		return fmt.Errorf("failed to lock employee %s: %w", employeeID, err)
	}
	return nil
}

func NewLeaveApplicationRepository(db *database.DB) leave.LeaveRepository {
	return &leaveApplicationRepositoryImpl{db: db}
}
