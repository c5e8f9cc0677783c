package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/pkg/validator"
)

// MonthlyReportRequest accepts the month as a number ("4") or an English
// name ("April", "apr").
type MonthlyReportRequest struct {
	Year  string `json:"year"`
	Month string `json:"month"`
}

// Period validates the request and returns the year and month it names.
func (r *MonthlyReportRequest) Period() (int, time.Month, error) {
	var errs validator.ValidationErrors

	year, err := strconv.Atoi(r.Year)
	if err != nil || year < 2000 || year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a four digit year"})
	}

	month, ok := validator.ParseMonth(r.Month)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be 1-12 or a month name"})
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return year, month, nil
}

type DailyReportRequest struct {
	Date string `json:"date"`
}

func (r *DailyReportRequest) Validate() error {
	if _, valid := validator.IsValidDate(r.Date); !valid {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return nil
}

type LOPStatementRequest struct {
	EmployeeCode string `json:"emp_id"`
	MonthlyReportRequest
}

// File is a generated report ready to be streamed to the client.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

func MonthlyFilename(year int, month time.Month) string {
	return fmt.Sprintf("attendance_%d_%02d.xlsx", year, int(month))
}

func DailyFilename(date time.Time) string {
	return fmt.Sprintf("daily_attendance_%s.xlsx", date.Format("2006-01-02"))
}

func LOPStatementFilename(employeeCode string, year int, month time.Month) string {
	return fmt.Sprintf("lop_%s_%d_%02d.pdf", employeeCode, year, int(month))
}
