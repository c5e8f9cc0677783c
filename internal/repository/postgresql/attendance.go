package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/attendance"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `a.id, a.employee_id, a.status, a.timestamp, a.login_time, a.logout_time, a.latitude, a.longitude`

type attendanceRepository struct {
	db *database.DB
}

func scanAttendance(row pgx.Row, extra ...any) (attendance.Attendance, error) {
	var att attendance.Attendance
	targets := append([]any{
		&att.ID, &att.EmployeeID, &att.Status, &att.Timestamp, &att.LoginTime, &att.LogoutTime, &att.Latitude, &att.Longitude,
	}, extra...)
	err := row.Scan(targets...)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances AS a (id, employee_id, status, timestamp, login_time, logout_time, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.ID, newAttendance.EmployeeID, string(newAttendance.Status), newAttendance.Timestamp,
		newAttendance.LoginTime, newAttendance.LogoutTime, newAttendance.Latitude, newAttendance.Longitude,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetLatestForDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetLatestForDay(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.timestamp >= $2 AND a.timestamp < $3
		ORDER BY a.timestamp DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dayStart, dayEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance for day: %w", err)
	}
	return &att, nil
}

// UpdateLoginTime implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateLoginTime(ctx context.Context, id string, at time.Time) (attendance.Attendance, error) {
	return a.updateTime(ctx, "login_time", id, at)
}

// UpdateLogoutTime implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateLogoutTime(ctx context.Context, id string, at time.Time) (attendance.Attendance, error) {
	return a.updateTime(ctx, "logout_time", id, at)
}

// updateTime sets one of the fixed time columns. column is never user input.
func (a *attendanceRepository) updateTime(ctx context.Context, column, id string, at time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`UPDATE attendances AS a SET %s = $2 WHERE a.id = $1 RETURNING %s`, column, attendanceColumns)
	updated, err := scanAttendance(q.QueryRow(ctx, query, id, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, fmt.Errorf("attendance %s not found: %w", id, err)
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update %s: %w", column, err)
	}
	return updated, nil
}

// ListByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `, e.employee_code, e.name
		FROM attendances a
		INNER JOIN employees e ON a.employee_id = e.id
		WHERE a.timestamp >= $1 AND a.timestamp < $2
		ORDER BY a.timestamp
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var code, name string
		att, err := scanAttendance(rows, &code, &name)
		if err != nil {
			return nil, err
		}
		att.EmployeeCode, att.EmployeeName = code, name
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
