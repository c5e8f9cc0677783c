package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// Register implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Register(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	code := strings.TrimSpace(req.EmployeeCode)
	exists, err := s.employeeRepo.ExistsByCode(ctx, code)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code existence: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	if req.TeamLeaderID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.TeamLeaderID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrTeamLeaderNotFound
			}
			return employee.EmployeeResponse{}, fmt.Errorf("failed to get team leader: %w", err)
		}
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash PIN: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	now := s.now()
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		ID:              id.String(),
		EmployeeCode:    code,
		Name:            strings.TrimSpace(req.Name),
		Department:      strings.TrimSpace(req.Department),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Classification:  employee.Classification(req.EmployeeType),
		TeamLeaderID:    req.TeamLeaderID,
		PINHash:         string(pinHash),
		OfficeLatitude:  req.OfficeLatitude,
		OfficeLongitude: req.OfficeLongitude,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee registered", "employee_id", created.ID, "employee_code", created.EmployeeCode)
	return employee.NewEmployeeResponse(created), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// ListForAttendance implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListForAttendance(ctx context.Context) ([]employee.AttendanceEmployeeResponse, error) {
	employees, err := s.employeeRepo.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.AttendanceEmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.AttendanceEmployeeResponse{
			ID:           e.ID,
			EmployeeCode: e.EmployeeCode,
			Name:         e.Name,
			Department:   e.Department,
			EmployeeType: string(e.Classification),
		})
	}
	return responses, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.Department = strings.TrimSpace(req.Department)
	existing.UpdatedAt = s.now()

	updated, err := s.employeeRepo.Update(ctx, existing)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee.NewEmployeeResponse(updated), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// SetTeamLeaderPassword implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SetTeamLeaderPassword(ctx context.Context, req employee.SetTeamLeaderPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.employeeRepo.UpdateTLPassword(ctx, req.EmployeeID, string(hash)); err != nil {
		return fmt.Errorf("failed to update team leader password: %w", err)
	}
	return nil
}
