package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/config"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/attendance"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/lop"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/report"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/calendar"
)

type ReportServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	lopRepo        lop.LOPRepository
	loc            *time.Location
	now            func() time.Time
}

// Monthly implements report.ReportService.
func (s *ReportServiceImpl) Monthly(ctx context.Context, req report.MonthlyReportRequest) (report.File, error) {
	year, month, err := req.Period()
	if err != nil {
		return report.File{}, err
	}
	period := calendar.Month{Year: year, Month: month}

	employees, err := s.employeeRepo.ListOrdered(ctx)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list employees: %w", err)
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	records, err := s.attendanceRepo.ListByRange(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	first, last := period.Bounds()
	lops, err := s.lopRepo.ListByDateRange(ctx, first, last)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list LOP records: %w", err)
	}

	rows := buildMonthly(employees, records, lops, period, s.loc)
	content, err := writeMonthlyWorkbook(rows, calendar.DaysInMonth(year, month))
	if err != nil {
		slog.Error("Monthly report generation failed", "year", year, "month", month, "error", err)
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGeneration, err)
	}

	return report.File{
		Filename:    report.MonthlyFilename(year, month),
		ContentType: report.ContentTypeXLSX,
		Content:     content,
	}, nil
}

// Daily implements report.ReportService.
func (s *ReportServiceImpl) Daily(ctx context.Context, req report.DailyReportRequest) (report.File, error) {
	if err := req.Validate(); err != nil {
		return report.File{}, err
	}
	date, _ := calendar.ParseDate(req.Date)

	employees, err := s.employeeRepo.ListOrdered(ctx)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list employees: %w", err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	records, err := s.attendanceRepo.ListByRange(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	content, err := writeDailyWorkbook(buildDaily(employees, records))
	if err != nil {
		slog.Error("Daily report generation failed", "date", req.Date, "error", err)
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGeneration, err)
	}

	return report.File{
		Filename:    report.DailyFilename(date),
		ContentType: report.ContentTypeXLSX,
		Content:     content,
	}, nil
}

// LOPStatement implements report.ReportService.
func (s *ReportServiceImpl) LOPStatement(ctx context.Context, req report.LOPStatementRequest) (report.File, error) {
	year, month, err := req.Period()
	if err != nil {
		return report.File{}, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return report.File{}, err
	}

	first, last := calendar.Month{Year: year, Month: month}.Bounds()
	records, err := s.lopRepo.ListByEmployeeAndRange(ctx, emp.ID, first, last)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list LOP records: %w", err)
	}

	content, err := writeLOPStatement(emp, year, month, records, s.now().In(s.loc))
	if err != nil {
		slog.Error("LOP statement generation failed", "employee", emp.EmployeeCode, "error", err)
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGeneration, err)
	}

	return report.File{
		Filename:    report.LOPStatementFilename(emp.EmployeeCode, year, month),
		ContentType: report.ContentTypePDF,
		Content:     content,
	}, nil
}

func NewReportService(employeeRepo employee.EmployeeRepository, attendanceRepo attendance.AttendanceRepository, lopRepo lop.LOPRepository, cfg config.AttendanceConfig) report.ReportService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		lopRepo:        lopRepo,
		loc:            loc,
		now:            time.Now,
	}
}
