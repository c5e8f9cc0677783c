package employee

import (
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/pkg/validator"
)

type RegisterEmployeeRequest struct {
	EmployeeCode    string   `json:"employee_id"`
	Name            string   `json:"name"`
	Department      string   `json:"department"`
	Email           string   `json:"email"`
	EmployeeType    string   `json:"employee_type"`
	TeamLeaderID    *string  `json:"team_leader_id,omitempty"`
	PIN             string   `json:"pin"`
	OfficeLatitude  *float64 `json:"office_latitude,omitempty"`
	OfficeLongitude *float64 `json:"office_longitude,omitempty"`
}

func (r *RegisterEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	} else if len(r.EmployeeCode) > 50 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must not exceed 50 characters"})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}

	if !validator.IsInSlice(r.EmployeeType, []string{string(ClassificationFullTime), string(ClassificationIntern)}) {
		errs = append(errs, validator.ValidationError{Field: "employee_type", Message: "employee_type must be 'Full Time' or 'Intern'"})
	}

	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{Field: "pin", Message: "pin must be 4 to 6 digits"})
	}

	if r.TeamLeaderID != nil && !validator.IsValidUUID(*r.TeamLeaderID) {
		errs = append(errs, validator.ValidationError{Field: "team_leader_id", Message: "team_leader_id must be a valid UUID"})
	}

	if (r.OfficeLatitude == nil) != (r.OfficeLongitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "office_latitude", Message: "office_latitude and office_longitude must be provided together"})
	} else if r.OfficeLatitude != nil && !validator.IsValidCoordinate(*r.OfficeLatitude, *r.OfficeLongitude) {
		errs = append(errs, validator.ValidationError{Field: "office_latitude", Message: "office coordinates are out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID         string `json:"-"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetTeamLeaderPasswordRequest struct {
	EmployeeID string `json:"-"`
	Password   string `json:"password"`
}

func (r *SetTeamLeaderPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if len(r.Password) > 72 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must not exceed 72 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string    `json:"id"`
	EmployeeCode string    `json:"employee_id"`
	Name         string    `json:"name"`
	Department   string    `json:"department"`
	Email        string    `json:"email"`
	EmployeeType string    `json:"employee_type"`
	TeamLeaderID *string   `json:"team_leader_id,omitempty"`
	IsTeamLeader bool      `json:"is_team_leader"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Department:   e.Department,
		Email:        e.Email,
		EmployeeType: string(e.Classification),
		TeamLeaderID: e.TeamLeaderID,
		IsTeamLeader: e.IsTeamLeader(),
		CreatedAt:    e.CreatedAt,
	}
}

// AttendanceEmployeeResponse is the public projection used by the attendance kiosk.
type AttendanceEmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_id"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	EmployeeType string `json:"employee_type"`
}
