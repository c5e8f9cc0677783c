package lop

import (
	"context"
	"time"
)

type LOPRepository interface {
	Create(ctx context.Context, record LOPRecord) (LOPRecord, error)
	// CreateBatch inserts all records in one statement. An empty slice is a no-op.
	CreateBatch(ctx context.Context, records []LOPRecord) error
	ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]LOPRecord, error)
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]LOPRecord, error)
}
