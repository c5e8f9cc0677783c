package employee

import "context"

type EmployeeService interface {
	Register(ctx context.Context, req RegisterEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)
	ListForAttendance(ctx context.Context) ([]AttendanceEmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	SetTeamLeaderPassword(ctx context.Context, req SetTeamLeaderPasswordRequest) error
}
