package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const employeeColumns = `id, employee_code, name, department, email, employee_type, team_leader_id,
	pin_hash, tl_password_hash, office_latitude, office_longitude, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var classification string
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.Name, &emp.Department, &emp.Email, &classification, &emp.TeamLeaderID,
		&emp.PINHash, &emp.TLPasswordHash, &emp.OfficeLatitude, &emp.OfficeLongitude, &emp.CreatedAt, &emp.UpdatedAt,
	)
	emp.Classification = employee.ParseClassification(classification)
	return emp, err
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, employee_code, name, department, email, employee_type, team_leader_id,
			pin_hash, tl_password_hash, office_latitude, office_longitude
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.EmployeeCode, newEmployee.Name, newEmployee.Department, newEmployee.Email,
		string(newEmployee.Classification), newEmployee.TeamLeaderID, newEmployee.PINHash, newEmployee.TLPasswordHash,
		newEmployee.OfficeLatitude, newEmployee.OfficeLongitude,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`
	emp, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code %s: %w", code, err)
	}
	return emp, nil
}

// ExistsByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE employee_code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee code: %w", err)
	}
	return exists, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return collectEmployees(rows)
}

// ListOrdered implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListOrdered(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY department, employee_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return collectEmployees(rows)
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $2, department = $3, email = $4, office_latitude = $5, office_longitude = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		emp.ID, emp.Name, emp.Department, emp.Email, emp.OfficeLatitude, emp.OfficeLongitude,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee %s: %w", emp.ID, err)
	}
	return updated, nil
}

// UpdateTLPassword implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateTLPassword(ctx context.Context, id string, hash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET tl_password_hash = $2, updated_at = NOW() WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("failed to update team leader password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}
