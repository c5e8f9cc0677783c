package lop

import "context"

type LOPService interface {
	Mark(ctx context.Context, req MarkLOPRequest) (LOPRecordResponse, error)
	ListForEmployee(ctx context.Context, req ListLOPRequest) (EmployeeLOPResponse, error)
}
