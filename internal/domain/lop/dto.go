package lop

import (
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/pkg/calendar"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/validator"
)

type MarkLOPRequest struct {
	EmployeeCode string `json:"emp_id"`
	Reason       string `json:"reason"`
	Date         string `json:"date"`
}

func (r *MarkLOPRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "emp_id", Message: "emp_id is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{Field: "date", Message: ErrInvalidMarkingDate.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListLOPRequest struct {
	EmployeeCode string
	Year         int
	Month        time.Month
}

func (r *ListLOPRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "emp_id", Message: "emp_id is required"})
	}
	if r.Year < 2000 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a four digit year"})
	}
	if r.Month < time.January || r.Month > time.December {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LOPRecordResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"emp_id,omitempty"`
	MarkingDate  string    `json:"marking_date"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewLOPRecordResponse(r LOPRecord) LOPRecordResponse {
	return LOPRecordResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		MarkingDate: calendar.FormatDate(r.MarkingDate),
		Reason:      r.Reason,
		CreatedAt:   r.CreatedAt,
	}
}

type EmployeeLOPResponse struct {
	EmployeeCode string              `json:"emp_id"`
	Name         string              `json:"name"`
	Year         int                 `json:"year"`
	Month        int                 `json:"month"`
	TotalDays    int                 `json:"total_days"`
	Records      []LOPRecordResponse `json:"records"`
}
