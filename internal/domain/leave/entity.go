package leave

import (
	"strings"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/pkg/calendar"
)

// Status is one side of the two-stage approval.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Category is the leave type chosen by the employee.
type Category string

const (
	CategorySickLeave   Category = "Sick Leave"
	CategoryCasualLeave Category = "Casual Leave"
	CategoryOther       Category = "other"
)

// ParseCategory accepts the stored spellings, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sick leave":
		return CategorySickLeave, true
	case "casual leave":
		return CategoryCasualLeave, true
	case "other":
		return CategoryOther, true
	}
	return "", false
}

// IsPaidCategory reports whether the summary view counts the category as paid leave.
func (c Category) IsPaidCategory() bool {
	return c == CategorySickLeave || c == CategoryCasualLeave
}

type LeaveApplication struct {
	ID           string
	EmployeeID   string
	TeamLeaderID string
	Reason       string
	Category     Category
	StartDate    time.Time
	EndDate      time.Time
	TLStatus     Status
	HRStatus     Status
	IsVerified   bool
	CreatedAt    time.Time
	ApprovedAt   *time.Time
}

// DualApproved reports whether both the team leader and HR have approved.
func (l LeaveApplication) DualApproved() bool {
	return l.TLStatus == StatusApproved && l.HRStatus == StatusApproved
}

// Days is the inclusive length of the leave in calendar days.
func (l LeaveApplication) Days() int {
	return calendar.DaysInclusive(l.StartDate, l.EndDate)
}

// OverlapWith counts the leave days falling inside [start, end].
func (l LeaveApplication) OverlapWith(start, end time.Time) int {
	return calendar.OverlapDays(l.StartDate, l.EndDate, start, end)
}

// LeaveWithEmployee is a leave joined with the applicant's directory fields.
type LeaveWithEmployee struct {
	LeaveApplication
	EmployeeCode string
	EmployeeName string
	Department   string
}

// MonthWindow is the paid quota position of one employee in one month.
// It is derived per call and never stored.
type MonthWindow struct {
	MonthStart    time.Time
	MonthEnd      time.Time
	UsedPaid      int
	RemainingPaid int
}
