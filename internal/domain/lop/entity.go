package lop

import "time"

// LOPRecord marks one calendar day as unpaid for an employee.
type LOPRecord struct {
	ID          string
	EmployeeID  string
	MarkingDate time.Time
	Reason      string
	CreatedAt   time.Time
}

// LOPRecordWithEmployee is a record joined with the employee's directory fields.
type LOPRecordWithEmployee struct {
	LOPRecord
	EmployeeCode string
	EmployeeName string
	Department   string
}
