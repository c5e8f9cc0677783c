package attendance

import (
	"time"
)

// Status is what the employee declared for the day.
type Status string

const (
	StatusPresent      Status = "Present"
	StatusWorkFromHome Status = "Work From Home"
	StatusAbsent       Status = "Absent"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPresent, StatusWorkFromHome, StatusAbsent:
		return Status(s), true
	}
	return "", false
}

// Action distinguishes the start and end of a working day.
type Action string

const (
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"
)

type Attendance struct {
	ID         string
	EmployeeID string
	Status     Status
	Timestamp  time.Time
	LoginTime  *time.Time
	LogoutTime *time.Time
	Latitude   *float64
	Longitude  *float64

	// Joined from employees for reporting.
	EmployeeCode string
	EmployeeName string
}

// Worked returns the time between login and logout. ok is false until both are set.
func (a Attendance) Worked() (d time.Duration, ok bool) {
	if a.LoginTime == nil || a.LogoutTime == nil || a.LogoutTime.Before(*a.LoginTime) {
		return 0, false
	}
	return a.LogoutTime.Sub(*a.LoginTime), true
}

// IsPresence reports whether the record counts as a worked day.
func (a Attendance) IsPresence() bool {
	return a.Status == StatusPresent || a.Status == StatusWorkFromHome
}
