package lop

import (
	"context"
	"fmt"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/lop"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/calendar"
	"github.com/google/uuid"
)

type LOPServiceImpl struct {
	lop.LOPRepository
	employee.EmployeeRepository
	now func() time.Time
}

// Mark implements lop.LOPService.
func (s *LOPServiceImpl) Mark(ctx context.Context, req lop.MarkLOPRequest) (lop.LOPRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return lop.LOPRecordResponse{}, err
	}

	markingDate, err := calendar.ParseDate(req.Date)
	if err != nil {
		return lop.LOPRecordResponse{}, lop.ErrInvalidMarkingDate
	}

	emp, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return lop.LOPRecordResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	exists, err := s.LOPRepository.ExistsForDate(ctx, emp.ID, markingDate)
	if err != nil {
		return lop.LOPRecordResponse{}, fmt.Errorf("failed to check existing LOP: %w", err)
	}
	if exists {
		return lop.LOPRecordResponse{}, lop.ErrLOPAlreadyMarked
	}

	id, err := uuid.NewV7()
	if err != nil {
		return lop.LOPRecordResponse{}, fmt.Errorf("failed to generate LOP id: %w", err)
	}

	record, err := s.LOPRepository.Create(ctx, lop.LOPRecord{
		ID:          id.String(),
		EmployeeID:  emp.ID,
		MarkingDate: markingDate,
		Reason:      req.Reason,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return lop.LOPRecordResponse{}, fmt.Errorf("failed to create LOP record: %w", err)
	}

	resp := lop.NewLOPRecordResponse(record)
	resp.EmployeeCode = emp.EmployeeCode
	return resp, nil
}

// ListForEmployee implements lop.LOPService.
func (s *LOPServiceImpl) ListForEmployee(ctx context.Context, req lop.ListLOPRequest) (lop.EmployeeLOPResponse, error) {
	if err := req.Validate(); err != nil {
		return lop.EmployeeLOPResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return lop.EmployeeLOPResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	from, to := calendar.Month{Year: req.Year, Month: req.Month}.Bounds()
	records, err := s.LOPRepository.ListByEmployeeAndRange(ctx, emp.ID, from, to)
	if err != nil {
		return lop.EmployeeLOPResponse{}, fmt.Errorf("failed to list LOP records: %w", err)
	}

	resp := lop.EmployeeLOPResponse{
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
		Year:         req.Year,
		Month:        int(req.Month),
		TotalDays:    len(records),
		Records:      make([]lop.LOPRecordResponse, 0, len(records)),
	}
	for _, r := range records {
		item := lop.NewLOPRecordResponse(r)
		item.EmployeeCode = emp.EmployeeCode
		resp.Records = append(resp.Records, item)
	}
	return resp, nil
}

func NewLOPService(lopRepository lop.LOPRepository, employeeRepository employee.EmployeeRepository) lop.LOPService {
	return &LOPServiceImpl{
		LOPRepository:      lopRepository,
		EmployeeRepository: employeeRepository,
		now:                time.Now,
	}
}
