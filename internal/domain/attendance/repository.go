package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
	// GetLatestForDay returns the newest record of the employee with a
	// timestamp in [dayStart, dayEnd), or nil when there is none.
	GetLatestForDay(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) (*Attendance, error)
	UpdateLoginTime(ctx context.Context, id string, at time.Time) (Attendance, error)
	UpdateLogoutTime(ctx context.Context, id string, at time.Time) (Attendance, error)
	// ListByRange returns all records with a timestamp in [from, to), oldest first.
	ListByRange(ctx context.Context, from, to time.Time) ([]Attendance, error)
}
