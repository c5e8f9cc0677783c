package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]Employee, error)
	// ListOrdered returns every employee ordered by department, then employee code.
	ListOrdered(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, employee Employee) (Employee, error)
	UpdateTLPassword(ctx context.Context, id string, hash string) error
	Delete(ctx context.Context, id string) error
}
