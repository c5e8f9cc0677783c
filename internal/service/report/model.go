package report

import (
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/attendance"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/lop"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// fullDay is the shortest login-to-logout span counted as a complete day.
const fullDay = 9 * time.Hour

type dayMark string

const (
	markPresent dayMark = "Present"
	markAbsent  dayMark = "Absent"
	markLOP     dayMark = "LOP"
)

type monthlyRow struct {
	EmployeeCode string
	Name         string
	PresentDays  int
	ShortDays    int
	WorkedHours  decimal.Decimal
	Days         []dayMark
}

// buildMonthly folds a month of attendance and LOP records into one row per
// employee. A LOP day overrides whatever attendance says about that day.
func buildMonthly(employees []employee.Employee, records []attendance.Attendance, lops []lop.LOPRecord, month calendar.Month, loc *time.Location) []monthlyRow {
	days := calendar.DaysInMonth(month.Year, month.Month)

	type dayKey struct {
		employeeID string
		day        int
	}
	present := make(map[dayKey]bool)
	worked := make(map[string]time.Duration)
	short := make(map[string]int)
	for _, r := range records {
		local := r.Timestamp.In(loc)
		if local.Year() != month.Year || local.Month() != month.Month || !r.IsPresence() {
			continue
		}
		present[dayKey{r.EmployeeID, local.Day()}] = true
		if d, ok := r.Worked(); ok {
			worked[r.EmployeeID] += d
			if d < fullDay {
				short[r.EmployeeID]++
			}
		}
	}

	lopDays := make(map[dayKey]bool)
	for _, l := range lops {
		if calendar.MonthOf(l.MarkingDate) == month {
			lopDays[dayKey{l.EmployeeID, l.MarkingDate.Day()}] = true
		}
	}

	rows := make([]monthlyRow, 0, len(employees))
	for _, e := range employees {
		row := monthlyRow{
			EmployeeCode: e.EmployeeCode,
			Name:         e.Name,
			ShortDays:    short[e.ID],
			WorkedHours:  decimal.NewFromFloat(worked[e.ID].Hours()).Round(2),
			Days:         make([]dayMark, days),
		}
		for d := 1; d <= days; d++ {
			key := dayKey{e.ID, d}
			switch {
			case lopDays[key]:
				row.Days[d-1] = markLOP
			case present[key]:
				row.Days[d-1] = markPresent
				row.PresentDays++
			default:
				row.Days[d-1] = markAbsent
			}
		}
		rows = append(rows, row)
	}
	return rows
}

type dailyStatus string

const (
	statusLoggedIn    dailyStatus = "Logged In"
	statusAbsent      dailyStatus = "Absent"
	statusNotLoggedIn dailyStatus = "Not Logged In"
	statusWFH         dailyStatus = "Work From Home"
)

type dailyRow struct {
	EmployeeCode string
	Name         string
	Department   string
	Status       dailyStatus
}

// buildDaily reports each employee's latest record of the day.
func buildDaily(employees []employee.Employee, records []attendance.Attendance) []dailyRow {
	latest := make(map[string]attendance.Attendance)
	for _, r := range records {
		if prev, ok := latest[r.EmployeeID]; !ok || r.Timestamp.After(prev.Timestamp) {
			latest[r.EmployeeID] = r
		}
	}

	rows := make([]dailyRow, 0, len(employees))
	for _, e := range employees {
		status := statusNotLoggedIn
		if r, ok := latest[e.ID]; ok {
			switch r.Status {
			case attendance.StatusPresent:
				status = statusLoggedIn
			case attendance.StatusWorkFromHome:
				status = statusWFH
			case attendance.StatusAbsent:
				status = statusAbsent
			}
		}
		rows = append(rows, dailyRow{
			EmployeeCode: e.EmployeeCode,
			Name:         e.Name,
			Department:   e.Department,
			Status:       status,
		})
	}
	return rows
}
