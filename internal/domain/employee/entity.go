package employee

import (
	"time"
)

type Employee struct {
	ID              string
	EmployeeCode    string
	Name            string
	Department      string
	Email           string
	Classification  Classification
	TeamLeaderID    *string
	PINHash         string
	TLPasswordHash  *string
	OfficeLatitude  *float64
	OfficeLongitude *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsTeamLeader reports whether the employee can sign in as a team leader.
func (e Employee) IsTeamLeader() bool {
	return e.TLPasswordHash != nil && *e.TLPasswordHash != ""
}

// HasOffice reports whether office coordinates are configured for geofencing.
func (e Employee) HasOffice() bool {
	return e.OfficeLatitude != nil && e.OfficeLongitude != nil
}

// Classification is the employment type that drives the paid leave quota.
type Classification string

const (
	ClassificationFullTime Classification = "Full Time"
	ClassificationIntern   Classification = "Intern"
	ClassificationOther    Classification = "Other"
)

// ParseClassification maps a stored value onto a known classification.
// Unknown values become ClassificationOther.
func ParseClassification(s string) Classification {
	switch Classification(s) {
	case ClassificationFullTime:
		return ClassificationFullTime
	case ClassificationIntern:
		return ClassificationIntern
	default:
		return ClassificationOther
	}
}
