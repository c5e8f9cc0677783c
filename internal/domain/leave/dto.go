package leave

import (
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/pkg/calendar"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/validator"
)

// maxLeaveDays bounds a single application.
const maxLeaveDays = 366

type ApplyLeaveRequest struct {
	EmployeeCode string  `json:"employee_id"`
	TeamLeaderID *string `json:"team_leader_id,omitempty"`
	Reason       string  `json:"reason"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
}

// Normalize validates the request and returns its parsed category and dates.
func (r *ApplyLeaveRequest) Normalize() (Category, time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.TeamLeaderID != nil && !validator.IsValidUUID(*r.TeamLeaderID) {
		errs = append(errs, validator.ValidationError{Field: "team_leader_id", Message: "team_leader_id must be a valid UUID"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	category, ok := ParseCategory(r.LeaveType)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type must be one of 'Sick Leave', 'Casual Leave', 'other'"})
	}

	start, startErr := calendar.ParseDate(r.StartDate)
	if startErr != nil {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endErr := calendar.ParseDate(r.EndDate)
	if endErr != nil {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if startErr == nil && endErr == nil {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
		} else if calendar.DaysInclusive(start, end) > maxLeaveDays {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "leave must not exceed 366 days"})
		}
	}

	if len(errs) > 0 {
		return "", time.Time{}, time.Time{}, errs
	}
	return category, start, end, nil
}

func (r *ApplyLeaveRequest) Validate() error {
	_, _, _, err := r.Normalize()
	return err
}

type LeaveActionRequest struct {
	LeaveID string `json:"leave_id"`
	Action  string `json:"action"`
}

func (r *LeaveActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveID) {
		errs = append(errs, validator.ValidationError{Field: "leave_id", Message: "leave_id is required"})
	} else if !validator.IsValidUUID(r.LeaveID) {
		errs = append(errs, validator.ValidationError{Field: "leave_id", Message: "leave_id must be a valid UUID"})
	}
	if validator.IsEmpty(r.Action) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "action is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeCode string     `json:"employee_code,omitempty"`
	EmployeeName string     `json:"employee_name,omitempty"`
	Department   string     `json:"department,omitempty"`
	TeamLeaderID string     `json:"team_leader_id"`
	Reason       string     `json:"reason"`
	LeaveType    Category   `json:"leave_type"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	TotalDays    int        `json:"total_days"`
	TLStatus     Status     `json:"tl_status"`
	HRStatus     Status     `json:"hr_status"`
	IsVerified   bool       `json:"is_verified"`
	CreatedAt    time.Time  `json:"created_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
}

func NewLeaveResponse(l LeaveApplication) LeaveResponse {
	return LeaveResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		TeamLeaderID: l.TeamLeaderID,
		Reason:       l.Reason,
		LeaveType:    l.Category,
		StartDate:    calendar.FormatDate(l.StartDate),
		EndDate:      calendar.FormatDate(l.EndDate),
		TotalDays:    l.Days(),
		TLStatus:     l.TLStatus,
		HRStatus:     l.HRStatus,
		IsVerified:   l.IsVerified,
		CreatedAt:    l.CreatedAt,
		ApprovedAt:   l.ApprovedAt,
	}
}

func NewLeaveWithEmployeeResponse(l LeaveWithEmployee) LeaveResponse {
	resp := NewLeaveResponse(l.LeaveApplication)
	resp.EmployeeCode = l.EmployeeCode
	resp.EmployeeName = l.EmployeeName
	resp.Department = l.Department
	return resp
}

type LeaveActionResponse struct {
	Message          string `json:"message"`
	LeaveID          string `json:"leave_id"`
	TLStatus         Status `json:"tl_status"`
	HRStatus         Status `json:"hr_status"`
	Reconciled       bool   `json:"reconciled"`
	LOPDays          int    `json:"lop_days"`
	NotificationSent bool   `json:"notification_sent"`
}

type SummaryEmployee struct {
	EmployeeCode string `json:"emp_id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
}

// MonthSummary is the category-aware view of one month of approved leave.
type MonthSummary struct {
	PaidLimit           int    `json:"paid_limit"`
	PaidUsed            int    `json:"paid_used"`
	TotalLeaves         int    `json:"total_leaves"`
	TotalLOPs           int    `json:"total_lops"`
	RemainingPaidLeaves int    `json:"remaining_paid_leaves"`
	Suggestion          string `json:"suggestion,omitempty"`
}

type CurrentRequestSummary struct {
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	Reason             string `json:"reason"`
	LeaveType          string `json:"leave_type"`
	TotalDays          int    `json:"total_days"`
	DaysInThisMonth    int    `json:"days_in_this_month"`
	PaidDaysIfApproved int    `json:"paid_days_if_approved"`
	LOPDaysIfApproved  int    `json:"lop_days_if_approved"`
}

type LeaveSummaryResponse struct {
	Employee       SummaryEmployee       `json:"employee"`
	RequestMonth   MonthSummary          `json:"request_month"`
	CurrentMonth   MonthSummary          `json:"current_month"`
	CurrentRequest CurrentRequestSummary `json:"current_request"`
}
