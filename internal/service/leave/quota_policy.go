package leave

import "github.com/attendance-marker/attendance-backend-go/internal/domain/employee"

// FullTimeMonthlyPaidLeave is the number of paid leave days a full time
// employee gets in each calendar month.
const FullTimeMonthlyPaidLeave = 2

// PaidQuota returns the monthly paid leave allowance for a classification.
// Unknown classifications get no paid days.
func PaidQuota(c employee.Classification) int {
	switch c {
	case employee.ClassificationFullTime:
		return FullTimeMonthlyPaidLeave
	case employee.ClassificationIntern:
		return 0
	default:
		return 0
	}
}

func remainingPaid(quota, used int) int {
	if used >= quota {
		return 0
	}
	return quota - used
}
