package notification

import "time"

// Decision is the terminal outcome of a leave application.
type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
)

// LeaveDecision carries what the employee is told after a terminal transition.
type LeaveDecision struct {
	EmployeeName  string
	EmployeeEmail string
	Reason        string
	Category      string
	StartDate     time.Time
	EndDate       time.Time
	Decision      Decision
	DecidedBy     string
	LOPDays       int
}

// OTPMessage is an attendance verification code sent by email.
type OTPMessage struct {
	EmployeeName  string
	EmployeeEmail string
	Code          string
	ExpiresAt     time.Time
}
